package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string

	DBDSN       string
	DBMaxConns  int32
	MigrateOnUp bool

	JWTSecret string
	JWTTTL    time.Duration

	Booking BookingConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Log     LogConfig
}

// BookingConfig holds the engine defaults a restaurant can override.
type BookingConfig struct {
	TurnoverBuffer   time.Duration
	DefaultDuration  time.Duration
	SnapshotCacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a snapshot cache should be used.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type KafkaConfig struct {
	Brokers     []string
	NotifyTopic string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

// LoadFile reads configuration from an env-format file with the environment
// taking precedence. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PROD_ORIGINS", "")
	v.SetDefault("HTTP_ADDR", ":8080")

	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "12h")

	v.SetDefault("TURNOVER_BUFFER", "60m")
	v.SetDefault("DEFAULT_BOOKING_DURATION", "120m")
	v.SetDefault("SNAPSHOT_CACHE_TTL", "30s")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_NOTIFY_TOPIC", "booking.notifications")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.IsProduction = v.GetString("APP_ENV") == PROD_STRING
	cfg.ProdOrigins = splitAndTrim(v.GetString("PROD_ORIGINS"))
	if cfg.IsProduction && len(cfg.ProdOrigins) == 0 {
		return nil, fmt.Errorf("PROD_ORIGINS is required when APP_ENV=%s", PROD_STRING)
	}
	cfg.HTTPAddr = v.GetString("HTTP_ADDR")

	// Database DSN is required
	cfg.DBDSN = v.GetString("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	maxConns := v.GetInt("DB_MAX_CONNS")
	if maxConns < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %d", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)
	cfg.MigrateOnUp = v.GetBool("DB_MIGRATE")

	// JWT secret is required for verifying tokens
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(v.GetString("JWT_TTL")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	if cfg.Booking.TurnoverBuffer, err = getMinutes(v, "TURNOVER_BUFFER"); err != nil {
		return nil, err
	}
	if cfg.Booking.TurnoverBuffer < 0 {
		return nil, fmt.Errorf("invalid TURNOVER_BUFFER: must not be negative")
	}
	if cfg.Booking.DefaultDuration, err = getMinutes(v, "DEFAULT_BOOKING_DURATION"); err != nil {
		return nil, err
	}
	if cfg.Booking.DefaultDuration <= 0 {
		return nil, fmt.Errorf("invalid DEFAULT_BOOKING_DURATION: must be positive")
	}
	if cfg.Booking.SnapshotCacheTTL, err = time.ParseDuration(v.GetString("SNAPSHOT_CACHE_TTL")); err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_CACHE_TTL: %w", err)
	}

	cfg.Redis = RedisConfig{
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:     splitAndTrim(v.GetString("KAFKA_BROKERS")),
		NotifyTopic: v.GetString("KAFKA_NOTIFY_TOPIC"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

// getMinutes parses a duration such as "60m" or "1h" and requires whole minutes.
func getMinutes(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("invalid %s: %q is not a whole number of minutes", key, raw)
	}
	return d, nil
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
