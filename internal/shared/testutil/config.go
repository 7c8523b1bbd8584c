package testutil

import (
	"time"

	"github.com/enslabs/clubs-admin-api/internal/config"
)

// TestAdminAddress is the allowlisted admin wallet used across tests.
const TestAdminAddress = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "clubs-admin-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "test",
			User:            "test",
			Password:        "test",
			SSLMode:         "disable",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret: "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry: 24 * time.Hour,
		},
		Grails: config.GrailsConfig{
			BaseURL:  "http://grails.test",
			Timeout:  5 * time.Second,
			CacheTTL: time.Minute,
		},
		Admin: config.AdminConfig{
			Addresses: []string{TestAdminAddress},
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			GracefulTimeout:   30 * time.Second,
			RequestsPerMinute: 120,
		},
	}
}
