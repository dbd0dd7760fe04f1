package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	AWSRegion         string        `env:"AWS_REGION" envDefault:""`
	DestinationTagKey string        `env:"DESTINATION_TAG_KEY" envDefault:"JobStatusEventBusArn"`
	EventSource       string        `env:"EVENT_SOURCE" envDefault:"macie.job.status"`
	EventDetailType   string        `env:"EVENT_DETAIL_TYPE" envDefault:"Macie Job Status Change"`
	MacieAPIRPS       float64       `env:"MACIE_API_RPS" envDefault:"10"`
	DeadlineSlack     time.Duration `env:"DEADLINE_SLACK" envDefault:"3s"`
	ServerAddr        string        `env:"SERVER_ADDR" envDefault:":8080"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
