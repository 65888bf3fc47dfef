package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	ServerPort      string
	Environment     string

	RateLimitPerSecond int
	RateLimitBurst     int
	MaxBodyBytes       int64

	LogFilePath   string
	LogHMACKey    string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "musicDB"),
		MongoCollection: getEnv("MONGO_COLLECTION", "items"),
		ServerPort:      getEnv("SERVER_PORT", "3000"),
		Environment:     getEnv("ENVIRONMENT", "development"),

		RateLimitPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 100),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 100),
		MaxBodyBytes:       int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),

		LogFilePath:   getEnv("LOG_FILE_PATH", "/var/log/catalog-service/app.log"),
		LogHMACKey:    getEnv("LOG_HMAC_KEY", "default-hmac-key-change-in-production"),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
