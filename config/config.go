package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	MongoURI     string
	PasetoSecret string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
	AdminInbox string
}

// LoadConfig loads configuration from the environment, falling back to a
// .env file when present.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	secret := getEnv("PASETO_SECRET", "")
	decoded, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		log.Fatalf("PASETO_SECRET is not valid base64 URL-encoded: %v", err)
	}
	if len(decoded) != 32 {
		log.Fatalf("PASETO_SECRET must decode to exactly 32 bytes, got %d", len(decoded))
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Fatalf("SMTP_PORT must be a number: %v", err)
	}

	return &AppConfig{
		Port:         getEnv("PORT", "3000"),
		MongoURI:     getEnv("MONGOSTRING", ""),
		PasetoSecret: secret,
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@hr-management.local"),
		AdminInbox:   getEnv("ADMIN_INBOX", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
