package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the token lifetime used when none is configured. The
// upstream service passed 3,600,000 ms to its signer, i.e. one hour.
const DefaultTokenTTL = time.Hour

var (
	// ErrTokenMalformed is returned when the token cannot be parsed at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenSignature is returned when the token was signed with a different key.
	ErrTokenSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned when the token is past its expiration.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for any other verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents JWT claims carrying the authenticated user identity.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given secret and lifetime.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue generates a signed token embedding the user id.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiration and returns the embedded user id.
// Failures are classified so the caller can log the rejection reason.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
			return uuid.Nil, ErrTokenSignature
		default:
			return uuid.Nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return claims.UserID, nil
}
