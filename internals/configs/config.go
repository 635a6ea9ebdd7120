package configs

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tourku_backend/internals/helpers/dbtime"
)

var (
	JWTSecret string

	MidtransServerKey     string
	MidtransUseProd       bool
	MidtransOrderPrefix   string
	MidtransFinishURL     string
	MidtransExpiryMinutes int

	RedisURL    string
	RabbitMQURL string
	CronSecret  string

	AppTimezone           string
	ScheduleSweepInterval time.Duration
	DBAutoMigrate         bool
	DBSeedDir             string

	Port             string
	CorsAllowOrigins string
	RequestTimeout   time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv(log *logrus.Logger) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn("no .env file found, using system environment")
		} else {
			log.Info(".env file loaded")
		}
	} else {
		log.Info("running on Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnvBool("MIDTRANS_USE_PROD", false)
	MidtransOrderPrefix = GetEnv("MIDTRANS_ORDER_PREFIX", "TOUR")
	MidtransFinishURL = GetEnv("MIDTRANS_FINISH_URL")
	MidtransExpiryMinutes = GetEnvInt("MIDTRANS_EXPIRY_MINUTES", 0)

	RedisURL = GetEnv("REDIS_URL")
	RabbitMQURL = GetEnv("RABBITMQ_URL")
	CronSecret = GetEnv("CRON_SECRET")

	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Jakarta")
	ScheduleSweepInterval = GetEnvDuration("SCHEDULE_SWEEP_INTERVAL", 0)
	DBAutoMigrate = GetEnvBool("DB_AUTO_MIGRATE", false)
	DBSeedDir = GetEnv("DB_SEED_DIR")

	Port = GetEnv("PORT", "3000")
	CorsAllowOrigins = GetEnv("CORS_ALLOW_ORIGINS")
	RequestTimeout = GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second)

	for key, val := range map[string]string{
		"JWT_SECRET":          JWTSecret,
		"MIDTRANS_SERVER_KEY": MidtransServerKey,
	} {
		if val == "" {
			log.WithField("key", key).Error("required env is not set")
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvBool(key string, def bool) bool {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetEnvDuration accepts Go durations ("15m") or a bare number of seconds.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

// Location returns the business timezone, falling back to UTC.
func Location() *time.Location {
	return dbtime.LoadLocation(AppTimezone)
}
