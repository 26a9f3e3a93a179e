package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // запросов в секунду, 0 - без ограничения
	RateBurst int
}

type StorageConfig struct {
	Driver    string // sqlite, postgres, redis, memory
	Path      string
	DSN       string
	Namespace string
	Redis     RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// Load - загрузка конфигурации из переменных окружения
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "15s"))
	if err != nil {
		timeout = 15 * time.Second
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		API: APIConfig{
			BaseURL:   getEnv("API_BASE_URL", "http://localhost:8000/api"),
			Timeout:   timeout,
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 0),
			RateBurst: getEnvAsInt("API_RATE_BURST", 5),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "sqlite"),
			Path:      getEnv("STORAGE_PATH", defaultStoragePath()),
			DSN:       getEnv("STORAGE_DSN", ""),
			Namespace: getEnv("STORAGE_NAMESPACE", "storefront"),
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),
			},
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".storefront", "storage.db")
	}
	return filepath.Join(home, ".storefront", "storage.db")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return defaultValue
}
