package config

import "os"

// DatabaseConfig returns host, port, user, password, database name
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "showlog")
	password := GetEnv("DB_PASS", "")
	name := GetEnv("DB_NAME", "showlog")
	return host, port, user, password, name
}

// RedisConfig returns host, port, password
func RedisConfig() (string, string, string) {
	host := GetEnv("REDIS_HOST", "localhost")
	port := GetEnv("REDIS_PORT", "6379")
	password := GetEnv("REDIS_PASS", "")
	return host, port, password
}

// TMDBConfig returns the API key and base URL for The Movie Database.
func TMDBConfig() (string, string) {
	apiKey := GetEnv("TMDB_API_KEY", "")
	baseURL := GetEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	return apiKey, baseURL
}

// ServerPort returns the HTTP listen port.
func ServerPort() string {
	return GetEnv("PORT", "8080")
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
