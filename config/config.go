package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	Port               string
	ProjectID          string
	StorageBucket      string
	LogName            string
	MaxUploadBytes     int64
	TableTTL           time.Duration
	CORSAllowedOrigins []string
}

// Load loads the configuration from environment variables, reading a .env
// file first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	config := &Config{
		Port:          getenv("PORT"),
		ProjectID:     getenv("GOOGLE_CLOUD_PROJECT"),
		StorageBucket: getenv("FIREBASE_STORAGE_BUCKET"),
		LogName:       getenv("LOG_NAME"),
	}

	if config.Port == "" {
		config.Port = "8080" // Default port if not specified
	}

	if config.LogName == "" {
		config.LogName = "image-table-api"
	}

	if raw := getenv("MAX_UPLOAD_BYTES"); raw != "" {
		maxBytes, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || maxBytes <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		config.MaxUploadBytes = maxBytes
	} else {
		config.MaxUploadBytes = 5 * 1024 * 1024
	}

	if raw := getenv("TABLE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("TABLE_TTL_SECONDS must be a positive integer, got %q", raw)
		}
		config.TableTTL = time.Duration(seconds) * time.Second
	} else {
		config.TableTTL = 30 * time.Minute
	}

	origins := getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.CORSAllowedOrigins = append(config.CORSAllowedOrigins, origin)
		}
	}

	// Validate required fields
	if config.ProjectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT is required")
	}
	if config.StorageBucket == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET is required")
	}

	return config, nil
}
