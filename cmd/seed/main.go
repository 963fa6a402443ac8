package main

import (
	"context"
	"log"
	"os"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/config"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/database"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
)

// seed creates the first admin account from ADMIN_NAME, ADMIN_EMAIL and
// ADMIN_PASSWORD. Running it again with the same email is a no-op.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	authService := service.NewAuthService(repository.NewUserRepository(database.DB), cfg.JWTSecret, cfg.JWTExpiry)

	admin, created, err := authService.EnsureAdmin(context.Background(), adminName, adminEmail, adminPassword)
	if err != nil {
		log.Fatal("Failed to create admin: ", err)
	}

	if !created {
		log.Println("Admin user already exists:", admin.Name)
		log.Println("   Email:", admin.Email)
		if !admin.IsAdmin() {
			log.Println("   Warning: this account does not have the admin role")
		}
		return
	}

	log.Println("Admin user created successfully!")
	log.Println("   Name:", admin.Name)
	log.Println("   Email:", admin.Email)
}
