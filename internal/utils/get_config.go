package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort        string `yaml:"APP_PORT"`
	AppURL         string `yaml:"APP_URL"`
	LogPath        string `yaml:"LOG_PATH"`
	RateLimitMax   string `yaml:"RATE_LIMIT_MAX"`
	AllowedOrigins string `yaml:"ALLOWED_ORIGINS"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBPath     string `yaml:"DB_PATH"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT configuration
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes string `yaml:"JWT_TTL_MINUTES"`

	// Redis token denylist
	RedisAddress  string `yaml:"REDIS_ADDRESS"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey  string `yaml:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"GEMINI_MODEL"`
	GeminiBaseURL string `yaml:"GEMINI_BASE_URL"`
}

var defaults = map[string]string{
	"APP_PORT":        "1337",
	"LOG_PATH":        "./logs/app.log",
	"RATE_LIMIT_MAX":  "20",
	"ALLOWED_ORIGINS": "*",
	"DB_DRIVER":       "postgres",
	"DB_PATH":         "./data/fittrack.db",
	"JWT_TTL_MINUTES": "10080",
	"GEMINI_MODEL":    "gemini-1.5-flash",
	"GEMINI_BASE_URL": "https://generativelanguage.googleapis.com/v1beta",
	"REDIS_DB":        "0",
}

var config Config

// LoadConfig reads .env (if present) and config.yaml, then lets the process
// environment override any key.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if err := LoadConfigFrom(path); err != nil {
		log.Printf("Error reading config: %s\n", err)
	}
}

// LoadConfigFrom replaces the current configuration with the YAML file at
// path plus environment overrides. A missing file is not an error.
func LoadConfigFrom(path string) error {
	var cfg Config

	file, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return err
		}
	}

	for key, field := range cfg.fields() {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
		if *field == "" {
			*field = defaults[key]
		}
	}

	config = cfg
	return nil
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"LOG_PATH":           &c.LogPath,
		"RATE_LIMIT_MAX":     &c.RateLimitMax,
		"ALLOWED_ORIGINS":    &c.AllowedOrigins,
		"DB_DRIVER":          &c.DBDriver,
		"DB_PATH":            &c.DBPath,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_TTL_MINUTES":    &c.JWTTTLMinutes,
		"REDIS_ADDRESS":      &c.RedisAddress,
		"REDIS_PASSWORD":     &c.RedisPassword,
		"REDIS_DB":           &c.RedisDB,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"GEMINI_API_KEY":     &c.GeminiAPIKey,
		"GEMINI_MODEL":       &c.GeminiModel,
		"GEMINI_BASE_URL":    &c.GeminiBaseURL,
	}
}

func GetConfig(key string) string {
	field, ok := config.fields()[key]
	if !ok {
		return ""
	}
	return *field
}
