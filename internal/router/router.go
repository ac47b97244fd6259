package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todoapp/internal/auth"
	"todoapp/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	todoHandler *handler.TodoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/users", authHandler.Register)
	api.POST("/auth", authHandler.Login)

	// Secured routes (require a bearer token)
	gate := auth.Middleware(tokens)
	api.GET("/auth", authHandler.Me, gate)

	todos := api.Group("/todos", gate)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
