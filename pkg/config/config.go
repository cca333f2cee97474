package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	StorageBucket   string
	Environment     string
	DebounceWindow  time.Duration
	DeckSampleLimit int
	ReconcileEvery  time.Duration
	TaggingEndpoint string
	TaggingAPIKey   string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DebounceWindow:  time.Duration(getEnvAsInt64("DEBOUNCE_WINDOW_MS", 800)) * time.Millisecond,
		DeckSampleLimit: int(getEnvAsInt64("DECK_SAMPLE_LIMIT", 20)),
		ReconcileEvery:  time.Duration(getEnvAsInt64("RECONCILE_INTERVAL_MIN", 15)) * time.Minute,
		TaggingEndpoint: getEnv("TAGGING_ENDPOINT", ""),
		TaggingAPIKey:   getEnv("TAGGING_API_KEY", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
