package main

import (
	"context"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"showlog/internal/config"
	"showlog/internal/container"
	"showlog/internal/logger"
)

// The refresher periodically re-fetches metadata for catalog entries
// that have not been updated recently, so episode counts and ratings do
// not drift too far from TMDb.
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

	schedule := config.GetEnv("REFRESH_SCHEDULE", "0 4 * * *")
	maxAgeDays, err := strconv.Atoi(config.GetEnv("REFRESH_MAX_AGE_DAYS", "7"))
	if err != nil {
		log.WithError(err).Fatal("Invalid REFRESH_MAX_AGE_DAYS")
	}
	batchSize, err := strconv.Atoi(config.GetEnv("REFRESH_BATCH_SIZE", "100"))
	if err != nil {
		log.WithError(err).Fatal("Invalid REFRESH_BATCH_SIZE")
	}

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
		defer cancel()

		cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
		refreshed, err := c.MediaService.RefreshStale(runCtx, cutoff, batchSize)
		if err != nil {
			log.WithError(err).Error("Metadata refresh failed")
			return
		}
		log.WithField("refreshed", refreshed).Info("Metadata refresh finished")
	}

	log.WithField("schedule", schedule).Info("Starting metadata refresher")
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, run); err != nil {
		log.WithError(err).Fatal("Could not add cron job")
	}

	run()
	scheduler.Run()
}
