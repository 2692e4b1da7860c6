package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	// WhatsApp Cloud API
	WhatsAppToken         string `envconfig:"WHATSAPP_TOKEN"`
	WhatsAppPhoneNumberID string `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppVerifyToken   string `envconfig:"WHATSAPP_VERIFY_TOKEN"`

	// Country code prepended to ten-digit local numbers (Colombia by default)
	DefaultCountryCode string `envconfig:"DEFAULT_COUNTRY_CODE" default:"57"`

	// OpenAI
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// Unit directory spreadsheet
	SpreadsheetID string `envconfig:"SPREADSHEET_ID"`
	SheetRange    string `envconfig:"SHEET_RANGE" default:"Sheet1!A:H"`

	// Google credentials: inline JSON wins over the file path; when neither is set
	// the sheets adapter falls back to the conventional secret-mount path.
	GoogleCredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`

	// Redis (optional). When set, conversation state lives in Redis instead of the
	// in-process map.
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

var instance *Config

// Load initializes and returns the singleton Config instance
func Load() (*Config, error) {
	if instance != nil {
		return instance, nil
	}

	// Load .env file if it exists (for local development)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment variables: %w", err)
	}

	instance = cfg
	return instance, nil
}

// Get returns the singleton Config instance (must call Load first)
func Get() *Config {
	if instance == nil {
		panic("config not loaded: call config.Load() first")
	}
	return instance
}
