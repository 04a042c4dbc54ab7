package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every environment knob the process needs. It is built once
// in main and handed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Port           string
	Env            string // dev or prod, selects the log profile
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	MongoURI       string
	MongoDBName    string
	JWTSecret      string
	FrontendOrigin string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		Env:            getenv("APP_ENV", "dev"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getenv("DB_NAME", "cyberlab"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getenv("MONGO_DB_NAME", "cyberlab_files"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		FrontendOrigin: getenv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER must be set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
