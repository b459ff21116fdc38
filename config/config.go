package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	MongoURL    string
	MongoDBName string
	RedisURL    string

	SessionKey      string
	JWTSecretKey    string
	JWTTTL          time.Duration
	StripeServerKey string
	EndpointSecret  string // Stripe webhook signing secret

	AllowedOrigins []string

	KafkaBrokers       []string
	PaymentEventsTopic string

	S3Bucket  string
	AWSRegion string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENV", "development"),
		MongoURL:           os.Getenv("MONGODB_URL"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "shopease"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionKey:         os.Getenv("SESSION_KEY"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTTTL:             getDurationEnv("JWT_TTL", time.Hour),
		StripeServerKey:    os.Getenv("STRIPE_SERVER_KEY"),
		EndpointSecret:     os.Getenv("ENDPOINT_SECRET"),
		AllowedOrigins:     splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		KafkaBrokers:       splitEnv("KAFKA_BROKERS", ""),
		PaymentEventsTopic: getEnv("PAYMENT_EVENTS_TOPIC", "payment-events"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
	}

	if cfg.MongoURL == "" || cfg.SessionKey == "" || cfg.JWTSecretKey == "" ||
		cfg.StripeServerKey == "" || cfg.EndpointSecret == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
