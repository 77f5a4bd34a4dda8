package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath    string
	OrdersKey       string
	CatalogFilePath string
	LogLevel        string
}

func LoadConfig() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables only")
		// Continue without .env file, use environment variables
	}

	config := &Config{
		DatabasePath:    os.Getenv("ORDERDESK_DB_PATH"),
		OrdersKey:       os.Getenv("ORDERDESK_ORDERS_KEY"),
		CatalogFilePath: os.Getenv("ORDERDESK_CATALOG_PATH"),
		LogLevel:        os.Getenv("ORDERDESK_LOG_LEVEL"),
	}

	// Set default values if environment variables are not set
	if config.DatabasePath == "" {
		config.DatabasePath = "orderdesk.db"
	}
	if config.OrdersKey == "" {
		config.OrdersKey = "orders"
	}
	if config.CatalogFilePath == "" {
		config.CatalogFilePath = "catalog.json"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}
