package main

import (
	"fmt"
	"log"

	"github.com/L-1ngg/movie-system/config"
	"github.com/L-1ngg/movie-system/models"
	"github.com/L-1ngg/movie-system/routes"
	"github.com/L-1ngg/movie-system/utils"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Println("WARN: JWT_SECRET is not set, issued tokens will not be secure")
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := utils.EnsureAdminUser(db); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	r := routes.SetupRouter(db, cfg)
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("server running on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Movie{}, &models.Actor{}, &models.Director{},
		&models.Comment{}, &models.Rating{})
}
