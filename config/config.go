package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects every environment-backed setting so components receive
// what they need through constructors instead of reading the environment
// themselves.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string

	JWTSecret  string
	AdminEmail string

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
	MailFrom  string

	BaseURL     string
	CORSOrigins string
	StorageRoot string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "465"))

	return &Config{
		Port:        getEnv("PORT", "5001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  smtpPort,
		EmailUser: os.Getenv("EMAIL_USERNAME"),
		EmailPass: os.Getenv("EMAIL_PASSWORD"),
		MailFrom:  getEnv("MAIL_FROM", "JGEC Alumni Association"),

		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins: getEnv("CORS_ORIGIN", "*"),
		StorageRoot: getEnv("STORAGE_ROOT", "./public/rooms"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
