package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "todoapp/internal/errors"
)

// userContextKey is where the verified user id is stored on the request context.
const userContextKey = "auth_user_id"

// Middleware returns a bearer-token gate usable in front of any route group.
// Token parsing delegates to the TokenService so the gate and the issuer can
// never disagree on token format.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: userContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			userID, err := tokens.Verify(auth)
			if err != nil {
				return nil, err
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			code := "INVALID_TOKEN"
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				code = "NO_TOKEN"
			case errors.Is(err, ErrTokenExpired):
				code = "TOKEN_EXPIRED"
			}
			c.Logger().Debugf("rejected request: %v", err)
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "authorization denied",
				Code:  code,
			})
		},
	})
}

// UserID returns the authenticated user id attached by Middleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userContextKey).(uuid.UUID)
	return id, ok
}
