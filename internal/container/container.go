package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"showlog/internal/cache"
	"showlog/internal/config"
	"showlog/internal/database"
	"showlog/internal/logger"
	"showlog/internal/repository"
	"showlog/internal/services"
)

type Container struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Logger *logrus.Logger

	UserService    *services.UserService
	ListService    *services.ListService
	EpisodeService *services.EpisodeService
	MediaService   *services.MediaService
	ProfileService *services.ProfileService
	TMDBClient     *services.TMDBClient
}

func New(ctx context.Context) (*Container, error) {
	log := logger.Get()

	db, err := database.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("Database connection successful")

	redisClient, err := cache.New(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	log.Info("Redis connection successful")

	apiKey, baseURL := config.TMDBConfig()
	tmdbClient := services.NewTMDBClient(&services.TMDBClientConfig{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Logger:     log,
		Redis:      redisClient,
	})

	users := repository.NewUserRepository(db)
	media := repository.NewMediaRepository(db)
	lists := repository.NewListRepository(db)
	episodes := repository.NewEpisodeRepository(db)
	profiles := repository.NewProfileRepository(db)

	return &Container{
		DB:             db,
		Redis:          redisClient,
		Logger:         log,
		UserService:    services.NewUserService(users, log),
		ListService:    services.NewListService(lists, log),
		EpisodeService: services.NewEpisodeService(episodes, media, log),
		MediaService:   services.NewMediaService(media, tmdbClient, log),
		ProfileService: services.NewProfileService(profiles, users, lists, episodes, log),
		TMDBClient:     tmdbClient,
	}, nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}
