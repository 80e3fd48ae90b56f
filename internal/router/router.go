package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/deeecoderrr/recipe-app-api/internal/auth"
	"github.com/deeecoderrr/recipe-app-api/internal/config"
	"github.com/deeecoderrr/recipe-app-api/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded recipe images
	e.Static("/media", cfg.MediaRoot)

	api := e.Group("/api")

	// Public routes
	api.POST("/user/create", userHandler.Create)
	api.POST("/user/token", authHandler.Token)
	api.POST("/user/token/refresh", authHandler.Refresh)
	api.POST("/user/token/logout", authHandler.Logout)

	// Secured routes (require a bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/user/me", userHandler.Me)
	secured.PUT("/user/me", userHandler.UpdateMe)
	secured.PATCH("/user/me", userHandler.UpdateMe)

	recipes := secured.Group("/recipe")

	recipes.GET("/recipes", recipeHandler.List)
	recipes.POST("/recipes", recipeHandler.Create)
	recipes.GET("/recipes/:id", recipeHandler.Get)
	recipes.PUT("/recipes/:id", recipeHandler.Update)
	recipes.PATCH("/recipes/:id", recipeHandler.Update)
	recipes.DELETE("/recipes/:id", recipeHandler.Delete)
	recipes.POST("/recipes/:id/upload-image", recipeHandler.UploadImage)

	recipes.GET("/tags", tagHandler.List)
	recipes.POST("/tags", tagHandler.Create)
	recipes.GET("/tags/:id", tagHandler.Get)
	recipes.PUT("/tags/:id", tagHandler.Update)
	recipes.PATCH("/tags/:id", tagHandler.Update)
	recipes.DELETE("/tags/:id", tagHandler.Delete)

	recipes.GET("/ingredients", ingredientHandler.List)
	recipes.POST("/ingredients", ingredientHandler.Create)
	recipes.GET("/ingredients/:id", ingredientHandler.Get)
	recipes.PUT("/ingredients/:id", ingredientHandler.Update)
	recipes.PATCH("/ingredients/:id", ingredientHandler.Update)
	recipes.DELETE("/ingredients/:id", ingredientHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
