package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendFile     = "file"
)

type Config struct {
	ServerPort   int
	StoreBackend string
	StoreDir     string
	JWTSecret    string
	Database     DatabaseConfig
	Client       ClientConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// ClientConfig holds settings for the client half of the binary:
// where the API lives and how the local session marker is kept.
type ClientConfig struct {
	APIBaseURL    string
	SessionFile   string
	SessionSecret string
	SessionTTL    time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "jobdeck"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "jobdeck_db"),
		UseSSL:   getEnv("DB_SSL", "") == "true",
	}

	clientConfig := ClientConfig{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		SessionFile:   getEnv("SESSION_FILE", defaultSessionFile()),
		SessionSecret: getEnv("SESSION_SECRET", "jobdeck-local-session"),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
	}

	return Config{
		ServerPort:   getEnvInt("SERVER_PORT", 8080),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendPostgres),
		StoreDir:     getEnv("STORE_DIR", "."),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		Database:     dbConfig,
		Client:       clientConfig,
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jobdeck-session"
	}
	return home + string(os.PathSeparator) + ".jobdeck-session"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
