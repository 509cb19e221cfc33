package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"groupchat/internal/auth"
	"groupchat/internal/config"
	"groupchat/internal/errors"
	"groupchat/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	groupHandler *handler.GroupHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)

	// The token is the raw Authorization header value, no "Bearer " prefix.
	requireToken := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthorized"})
		},
	})

	e.POST("/logout", authHandler.Logout, requireToken)

	// Admin routes
	admin := e.Group("/admin", requireToken, auth.RequireRoles(auth.RoleAdmin))
	admin.POST("/createUser", userHandler.CreateUser)
	admin.PUT("/editUser/:userId", userHandler.EditUser)

	// Group routes (any valid token, except createGroup's explicit roles)
	groups := e.Group("/groups", requireToken)
	groups.POST("/createGroup", groupHandler.CreateGroup, auth.RequireRoles(auth.RoleAdmin, auth.RoleUser))
	groups.DELETE("/deleteGroup/:groupId", groupHandler.DeleteGroup)
	groups.GET("/searchGroup/:groupName", groupHandler.SearchGroup)
	groups.POST("/addMembers/:groupId", groupHandler.AddMembers)
	groups.POST("/sendMessage/:groupId", groupHandler.SendMessage)
	groups.POST("/likeMessage/:groupId/:messageId", groupHandler.LikeMessage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
