package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string

	// Startup behaviour
	SeedDB bool

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// Load configuration from the environment; .env is optional
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		AppPort:     os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HOST:        os.Getenv("HOST"),

		// JWT_SECRET and JWT_EXPIRES_IN are read where the tokens are
		// built, in utils/jwt.go
		SeedDB: os.Getenv("SEED_DB") == "true",

		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	if config.AppPort == "" {
		config.AppPort = "3000"
	}

	return config
}
