// Command createadmin creates an administrator account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/singletea-api/internal/config"
	"github.com/localnerve/singletea-api/internal/database"
	"github.com/localnerve/singletea-api/internal/logger"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/types"
)

func main() {
	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password, defaults to $ADMIN_PASSWORD")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLog := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg, zapLog)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	user, err := services.NewUserStore(db).Create(context.Background(), *name, *email, *password, true)
	if err != nil {
		if types.IsType(err, types.DuplicateEmail) {
			log.Fatalf("A user with email %s already exists", *email)
		}
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
}
