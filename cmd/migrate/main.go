package main

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"showlog/internal/config"
	"showlog/internal/logger"
)

func main() {
	logger.Init()
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	host, port, user, password, name := config.DatabaseConfig()
	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name)

	migrationsPath := config.GetEnv("MIGRATIONS_PATH", "file://migrations")

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to create migrate instance")
	}

	log.Info("Running database migrations...")
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	log.Info("Database migration completed")
}
