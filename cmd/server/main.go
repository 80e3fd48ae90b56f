package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/deeecoderrr/recipe-app-api/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/deeecoderrr/recipe-app-api/internal/auth"
	"github.com/deeecoderrr/recipe-app-api/internal/cache"
	"github.com/deeecoderrr/recipe-app-api/internal/config"
	"github.com/deeecoderrr/recipe-app-api/internal/db"
	"github.com/deeecoderrr/recipe-app-api/internal/handler"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
	"github.com/deeecoderrr/recipe-app-api/internal/router"
	"github.com/deeecoderrr/recipe-app-api/internal/service"
	"github.com/deeecoderrr/recipe-app-api/internal/storage"
)

// @title Recipe API
// @version 1.0
// @description Recipe management API with user accounts, tags, ingredients, and image upload.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			"recipe_tags",
			"recipe_ingredients",
			&model.Recipe{},
			&model.Tag{},
			&model.Ingredient{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	mediaStore, err := storage.NewMediaStore(cfg.MediaRoot)
	if err != nil {
		log.Fatalf("media store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, mediaStore, cacheClient)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		authHandler,
		recipeHandler,
		tagHandler,
		ingredientHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
