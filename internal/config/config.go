package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from SIMOSH_* environment variables (a .env file gets loaded
// first in main).
type Config struct {
	Env  string `envconfig:"ENV" default:"dev"`
	Port int    `envconfig:"PORT" default:"8080"`

	// Postgres when set, JSON file otherwise.
	DatabaseDSN  string `envconfig:"DB_DSN"`
	DocumentPath string `envconfig:"DOCUMENT_PATH" default:"data/simosh.json"`

	SessionKey    string `envconfig:"SESSION_KEY" default:"dev-insecure"`
	JWTSecret     string `envconfig:"JWT_SECRET" default:"dev-admin-secret"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@simosh.uz"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`

	OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	TelegramToken   string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs string `envconfig:"TELEGRAM_CHAT_IDS"`

	SMTPHost    string `envconfig:"SMTP_HOST"`
	SMTPPort    int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser    string `envconfig:"SMTP_USER"`
	SMTPPass    string `envconfig:"SMTP_PASS"`
	NotifyEmail string `envconfig:"ORDER_NOTIFY_EMAIL"`

	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	BaseURL            string `envconfig:"BASE_URL" default:"http://localhost:8080"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("simosh", &c)
	return c, err
}
