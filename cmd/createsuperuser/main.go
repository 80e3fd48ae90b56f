package main

import (
	"context"
	"flag"
	"log"

	"github.com/deeecoderrr/recipe-app-api/internal/config"
	"github.com/deeecoderrr/recipe-app-api/internal/db"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
	"github.com/deeecoderrr/recipe-app-api/internal/service"
)

func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	name := flag.String("name", "", "display name for the superuser")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo)

	user, err := userService.CreateSuperuser(context.Background(), *email, *password, *name)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	log.Printf("Superuser created: id=%d email=%s", user.ID, user.Email)
}
