package main

import (
	"context"
	"fmt"
	"os"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/config"
	"hinglaj-store/internal/database"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"
)

const (
	adminPhone = "9999999999"
	adminEmail = "admin@hinglaj.local"
)

// Ensures a bootstrap admin account exists. The password comes from
// ADMIN_PASSWORD; an existing account with the admin phone is promoted
// rather than recreated.
func main() {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD environment variable is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.CreateSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(pool, logger)

	existing, err := users.GetByPhone(ctx, adminPhone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		if existing.Role != model.RoleAdmin {
			if err := users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to update role: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Promoted existing account %s to admin\n", adminPhone)
			return
		}
		fmt.Printf("Admin account %s already exists\n", adminPhone)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	user := &model.User{
		Name:         "Admin",
		Phone:        adminPhone,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created admin account %s (id %d)\n", adminPhone, user.ID)
}
