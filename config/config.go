// Package config wires environment variables into the assistant service.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Config carries all runtime knobs for the assistant. The three API
// credentials are mandatory; everything else has a sensible default.
type Config struct {
	AirtableAPIKey string `json:"airtable_api_key"`
	AirtableBaseID string `json:"airtable_base_id"`
	OpenAIAPIKey   string `json:"openai_api_key"`

	Port         string `json:"port"`
	RedisAddr    string `json:"redis_addr"`
	DatabasePath string `json:"database_path"`
	DataDir      string `json:"data_dir"`
	Debug        bool   `json:"debug"`

	JWTSecret     string `json:"jwt_secret"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`

	// FirebaseCredentials points at a service-account json file. Push
	// notifications stay disabled when empty.
	FirebaseCredentials string `json:"firebase_credentials"`

	// ServicePhone and ServiceEmail are surfaced to users who decline the
	// GDPR consent or want to book outside the assistant.
	ServicePhone string `json:"service_phone"`
	ServiceEmail string `json:"service_email"`
}

// requiredVars are the credentials the assistant cannot run without.
var requiredVars = []string{"AIRTABLE_API_KEY", "AIRTABLE_BASE_ID", "OPENAI_API_KEY"}

// FromEnv loads the configuration from the process environment, after
// best-effort loading of a local .env file. Real environment variables win
// over .env entries.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info(".env file loaded")
	}

	var missing []string
	for _, v := range requiredVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	c := Config{
		AirtableAPIKey:      os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:      os.Getenv("AIRTABLE_BASE_ID"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		Port:                os.Getenv("PORT"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		DatabasePath:        os.Getenv("DATABASE_PATH"),
		DataDir:             os.Getenv("DATA_DIR"),
		Debug:               strings.EqualFold(os.Getenv("DEBUG"), "true"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		ServicePhone:        os.Getenv("SERVICE_PHONE"),
		ServiceEmail:        os.Getenv("SERVICE_EMAIL"),
	}
	c.Defaults()
	return c, nil
}

// Defaults fills zero values so the rest of the code never has to.
func (c *Config) Defaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "assistant.db"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.ServicePhone == "" {
		c.ServicePhone = "+48 444 444 444"
	}
	if c.ServiceEmail == "" {
		c.ServiceEmail = "serwis@veteye.pl"
	}
}
