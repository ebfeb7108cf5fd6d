package main

import (
	"context"
	"fmt"
	"os"

	"hinglaj-store/internal/config"
	"hinglaj-store/internal/database"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"
)

// Promotes an existing account to admin by email.
//
// Usage: makeadmin <email>
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: makeadmin <email>")
		os.Exit(1)
	}
	email := os.Args[1]

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

	users := repository.NewUserRepository(pool, logger)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Fprintf(os.Stderr, "No account found for %s\n", email)
		os.Exit(1)
	}
	if user.Role == model.RoleAdmin {
		fmt.Printf("%s is already an admin\n", email)
		return
	}

	if err := users.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to update role: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Promoted %s (id %d) to admin\n", email, user.ID)
}
