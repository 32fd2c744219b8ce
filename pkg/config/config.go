package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTExpiry   time.Duration

	FirebaseCredentials string
	RedisAddr           string

	// Inventory scanner
	ScannerEnabled        bool
	ScannerInterval       time.Duration
	StockLowMax           int
	ExpireSoonMax         int
	ExpireSoonDaysDefault int

	// Topic policy: when true only the fixed HQ topics are accepted
	TopicRestrict bool

	// WebPush envelope defaults
	WebpushIcon        string
	WebpushBadge       string
	WebpushTTLSeconds  int
	WebpushUrgency     string
	WebpushDefaultLink string

	// How long an alerted candidate stays suppressed
	SuppressTTL time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:   getDuration("JWT_EXPIRY", 12*time.Hour),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		RedisAddr:           getEnv("REDIS_ADDR", ""),

		ScannerEnabled:        getBool("SCANNER_ENABLED", false),
		ScannerInterval:       getDuration("SCANNER_INTERVAL", 30*time.Minute),
		StockLowMax:           getInt("SCANNER_STOCK_LOW_MAX", 50),
		ExpireSoonMax:         getInt("SCANNER_EXPIRE_SOON_MAX", 50),
		ExpireSoonDaysDefault: getInt("SCANNER_EXPIRE_SOON_DAYS", 3),

		TopicRestrict: getBool("TOPIC_RESTRICT", true),

		WebpushIcon:        getEnv("WEBPUSH_ICON", "/admin/images/fcm/toastlab.png"),
		WebpushBadge:       getEnv("WEBPUSH_BADGE", "/admin/images/fcm/badge-72.png"),
		WebpushTTLSeconds:  getInt("WEBPUSH_TTL_SECONDS", 3600),
		WebpushUrgency:     getEnv("WEBPUSH_URGENCY", "high"),
		WebpushDefaultLink: getEnv("WEBPUSH_DEFAULT_LINK", "/admin"),

		SuppressTTL: getDuration("SUPPRESS_TTL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
