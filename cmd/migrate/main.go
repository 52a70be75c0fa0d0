package main

import (
	"os"
	"strconv"

	"clinic-agenda/config"
	"clinic-agenda/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

// Usage: migrate [up|down|force <version>]
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()

	command := "up"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version")
		}
		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatalf("Invalid version: %v", convErr)
		}
		err = migrator.Force(version)
	default:
		log.Fatalf("Unknown command %q", command)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Info("Migrations complete")
}
