package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/repository"
)

// Creates the initial admin identity so the account management
// endpoints have someone to sign in as. Safe to re-run: an existing
// admin with the same email is left untouched.
func main() {
	email := flag.String("email", "admin@unisync.local", "Email for the admin identity")
	password := flag.String("password", "", "Password for the admin identity (or ADMIN_PASSWORD env)")
	timeout := flag.Duration("timeout", 10*time.Second, "Overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	pass := *password
	if pass == "" {
		pass = os.Getenv("ADMIN_PASSWORD")
	}
	if pass == "" {
		fmt.Fprintln(os.Stderr, "Error: password required (use -password or ADMIN_PASSWORD)")
		os.Exit(1)
	}
	if len(pass) < 8 {
		fmt.Fprintln(os.Stderr, "Error: password must be at least 8 characters")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
		OpTimeout: cfg.Database.OpTimeout,
	})
	if err := db.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Error bootstrapping schema: %v\n", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	normalized := strings.ToLower(strings.TrimSpace(*email))

	existing, err := userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking for existing identity: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		if existing.Role != model.RoleAdmin {
			fmt.Fprintf(os.Stderr, "Error: %s already exists with role %s\n", normalized, existing.Role)
			os.Exit(1)
		}
		fmt.Printf("Admin %s already exists (%s), nothing to do\n", normalized, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), 12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	admin := &model.User{
		Email: normalized,
		Hash:  string(hash),
		Role:  model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating admin identity: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Admin Identity Created")
	fmt.Println("======================")
	fmt.Printf("ID:     %s\n", admin.ID)
	fmt.Printf("Email:  %s\n", normalized)
	fmt.Println()
	fmt.Println("Sign in:")
	fmt.Printf("  curl -X POST http://localhost:%s/api/login -d '{\"email\":\"%s\",\"password\":\"...\"}'\n", cfg.Server.Port, normalized)
}
