package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"microlend/internal/config"
	"microlend/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	borrowerHandler *handler.BorrowerHandler,
	profileHandler *handler.ProfileHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded profile pictures are served straight from the upload dir.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Profile routes
	secured.GET("/me", profileHandler.Me)
	secured.POST("/me/profile-pic", profileHandler.UploadProfilePic)

	// Borrower routes
	secured.GET("/dashboard", borrowerHandler.Dashboard)
	secured.GET("/borrowers", borrowerHandler.ListBorrowers)
	secured.POST("/borrowers", borrowerHandler.CreateBorrower)
	secured.GET("/borrowers/:id", borrowerHandler.GetBorrower)
	secured.PUT("/borrowers/:id", borrowerHandler.UpdateBorrower)
	secured.DELETE("/borrowers/:id", borrowerHandler.DeleteBorrower)

	// Seed route
	secured.POST("/seed/borrowers", seedHandler.SeedBorrowers)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
