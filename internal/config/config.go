package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	MediaDir     string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ContactInbox string
	SwaggerHost  string
}

// Load builds Config from the environment with sensible defaults.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "3000"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "main"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MediaDir:     getEnv("MEDIA_DIR", "media"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_APP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@volunflow.com"),
		ContactInbox: getEnv("CONTACT_INBOX", "volunflow@gmail.com"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}

	// Tokens cannot be signed or verified without a secret, so refusing to
	// start beats serving requests that all fail.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
