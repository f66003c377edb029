package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"showlog/internal/config"
	"showlog/internal/container"
	"showlog/internal/handlers"
	"showlog/internal/logger"
)

func main() {
	logger.Init()
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer c.Close()

	server := handlers.New(
		c.UserService,
		c.ListService,
		c.EpisodeService,
		c.MediaService,
		c.ProfileService,
		handlers.NewSessionStore(c.Redis),
		c.Logger,
	)

	port := config.ServerPort()
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Server starting on port %s", port)
	log.Fatal(srv.ListenAndServe())
}
