package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main wires into the handlers. Loaded once at
// startup and passed down explicitly; there is no package-level state.
type Config struct {
	Port   string
	MongoURI string
	DBName   string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// Razorpay credentials. KeyID is publishable and returned to checkout
	// clients; KeySecret signs verification HMACs and must never appear in
	// a response payload.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// EnforceOrderTiming gates order creation on the IST window. Disabled
	// only for testing via ENFORCE_ORDER_TIMING=false.
	EnforceOrderTiming bool

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SenderEmail        string
	AdminAlertEmail    string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	return Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		MongoURI: getEnvOrDefault("MONGO_URI", ""),
		DBName:   getEnvOrDefault("DB_NAME", "mithaistore"),

		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),

		RazorpayKeyID:     getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnvOrDefault("RAZORPAY_KEY_SECRET", ""),

		EnforceOrderTiming: getBoolEnv("ENFORCE_ORDER_TIMING", true),

		AWSRegion:          getEnvOrDefault("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
		SenderEmail:        getEnvOrDefault("SENDER_EMAIL", ""),
		AdminAlertEmail:    getEnvOrDefault("ADMIN_ALERT_EMAIL", ""),
	}
}

// PaymentConfigured reports whether both gateway credentials are present.
func (c Config) PaymentConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	return value != "false" && value != "0"
}
