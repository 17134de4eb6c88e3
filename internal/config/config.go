package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is the environment-derived surface of the server. Everything has a
// development default except DATABASE_URL and SECRET_KEY.
type Config struct {
	Addr        string
	BaseURL     string
	DatabaseURL string
	SecretKey   string
	SessionTTL  time.Duration
	UploadDir   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        ":" + getenv("PORT", "4000"),
		BaseURL:     getenv("BASE_URL", "http://localhost:4000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		UploadDir:   getenv("UPLOAD_DIR", "uploads"),

		SMTPHost: getenv("MAIL_SERVER", "smtp.gmail.com"),
		SMTPUser: os.Getenv("MAIL_USERNAME"),
		SMTPPass: os.Getenv("MAIL_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("config: SECRET_KEY is required")
	}

	port, err := strconv.Atoi(getenv("MAIL_PORT", "587"))
	if err != nil {
		return nil, errors.New("config: MAIL_PORT must be a number")
	}
	cfg.SMTPPort = port

	cfg.MailFrom = getenv("MAIL_FROM", cfg.SMTPUser)

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, errors.New("config: SESSION_TTL must be a duration such as 24h or 30m")
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}
