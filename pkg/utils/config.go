package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Webhook  WebhookConfig
	Email    EmailConfig
	Stripe   StripeConfig
	Jobs     JobsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// AuthConfig holds the shared secret used to verify session tokens issued
// by the external identity provider.
type AuthConfig struct {
	JWTSecret string
}

// WebhookConfig holds the signing secret for identity provider webhooks.
type WebhookConfig struct {
	SigningSecret string
}

type EmailConfig struct {
	APIKey     string
	FromName   string
	FromEmail  string
	OwnerEmail string
}

type StripeConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type JobsConfig struct {
	ReminderWindowDays int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STRIPE_CURRENCY", "usd")
	viper.SetDefault("REMINDER_WINDOW_DAYS", 5)
	viper.SetDefault("SENDGRID_FROM_NAME", "Fleet Rentals")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
		},
		Webhook: WebhookConfig{
			SigningSecret: viper.GetString("WEBHOOK_SIGNING_SECRET"),
		},
		Email: EmailConfig{
			APIKey:     viper.GetString("SENDGRID_API_KEY"),
			FromName:   viper.GetString("SENDGRID_FROM_NAME"),
			FromEmail:  viper.GetString("SENDGRID_FROM_EMAIL"),
			OwnerEmail: viper.GetString("OWNER_EMAIL"),
		},
		Stripe: StripeConfig{
			SecretKey:  viper.GetString("STRIPE_SECRET_KEY"),
			Currency:   viper.GetString("STRIPE_CURRENCY"),
			SuccessURL: viper.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:  viper.GetString("STRIPE_CANCEL_URL"),
		},
		Jobs: JobsConfig{
			ReminderWindowDays: viper.GetInt("REMINDER_WINDOW_DAYS"),
		},
	}

	return config, nil
}
