package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Stripe   StripeConfig
	Realtime RealtimeConfig
	Cleanup  CleanupConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig holds the settings used to verify access tokens issued by the
// external auth provider (Supabase signs them with the project JWT secret).
type AuthConfig struct {
	JWTSecret string
	Audience  string
}

type StripeConfig struct {
	WebhookSecret        string
	SubscriptionCacheTTL time.Duration
}

type RealtimeConfig struct {
	OutboxInterval  time.Duration
	OutboxBatchSize int
	PresenceTTL     time.Duration
	AllowedOrigins  []string
}

type CleanupConfig struct {
	Interval          time.Duration
	CanceledRetention time.Duration
	InviteTTL         time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when every value comes from the environment
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Name:         viper.GetString("DB_NAME"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("SUPABASE_JWT_SECRET"),
			Audience:  viper.GetString("SUPABASE_JWT_AUDIENCE"),
		},
		Stripe: StripeConfig{
			WebhookSecret:        viper.GetString("STRIPE_WEBHOOK_SECRET"),
			SubscriptionCacheTTL: durationOr("SUBSCRIPTION_CACHE_TTL", 5*time.Minute),
		},
		Realtime: RealtimeConfig{
			OutboxInterval:  durationOr("OUTBOX_INTERVAL", 2*time.Second),
			OutboxBatchSize: viper.GetInt("OUTBOX_BATCH_SIZE"),
			PresenceTTL:     durationOr("PRESENCE_TTL", 12*time.Hour),
			AllowedOrigins:  viper.GetStringSlice("WS_ALLOWED_ORIGINS"),
		},
		Cleanup: CleanupConfig{
			Interval:          durationOr("CLEANUP_INTERVAL", 24*time.Hour),
			CanceledRetention: durationOr("CLEANUP_CANCELED_RETENTION", 30*24*time.Hour),
			InviteTTL:         durationOr("CLEANUP_INVITE_TTL", 7*24*time.Hour),
		},
	}, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("SUPABASE_JWT_AUDIENCE", "authenticated")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 50)
}

// durationOr parses a duration setting, falling back when it is missing or malformed.
func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
