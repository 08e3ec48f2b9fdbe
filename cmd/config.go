package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redisstore"
	"marketplace/internal/adapters/out/smtpmail"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "MARKETPLACE"

// Config is the application configuration. See LoadConfig for its sources.
type Config struct {
	HTTP     HTTPConfig        `mapstructure:"http"`
	Log      LogConfig         `mapstructure:"log"`
	Auth     AuthConfig        `mapstructure:"auth"`
	Database postgres.Config   `mapstructure:"database"`
	Redis    RedisConfig       `mapstructure:"redis"`
	SMTP     smtpmail.Settings `mapstructure:"smtp"`
	Delivery DeliveryConfig    `mapstructure:"delivery"`
	Recovery RecoveryConfig    `mapstructure:"recovery"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig sets the zap level (debug, info, warn, error).
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig holds the HS256 secret bearer tokens are signed with.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// RedisConfig switches the send registry on. Without it every delivery
// attempt sends.
type RedisConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	redisstore.Settings `mapstructure:",squash"`
}

// DeliveryConfig tunes the email delivery pass and its retry policy.
type DeliveryConfig struct {
	Schedule    string        `mapstructure:"schedule"`
	Worker      string        `mapstructure:"worker"`
	BatchSize   int           `mapstructure:"batch_size"`
	Workers     int           `mapstructure:"workers"`
	ClaimTTL    time.Duration `mapstructure:"claim_ttl"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
	RegistryTTL time.Duration `mapstructure:"registry_ttl"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseBackoff time.Duration `mapstructure:"base_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
}

// RecoveryConfig schedules the recovery sweep.
type RecoveryConfig struct {
	Schedule string `mapstructure:"schedule"`
}

// LoadConfig reads, in increasing priority: built-in defaults, an optional
// config.yaml, a .env file and MARKETPLACE_* environment variables
// (MARKETPLACE_DATABASE_HOST for database.host).
func LoadConfig(paths ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Delivery.Worker == "" {
		cfg.Delivery.Worker = defaultWorkerName()
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	var problems []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Errorf("http.port %d is out of range", c.HTTP.Port))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, errors.New("auth.jwt_secret is required"))
	}
	switch c.Database.Driver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		problems = append(problems, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Delivery.BatchSize <= 0 {
		problems = append(problems, errors.New("delivery.batch_size must be positive"))
	}
	if c.Delivery.ClaimTTL <= c.Delivery.SendTimeout {
		problems = append(problems, errors.New("delivery.claim_ttl must exceed delivery.send_timeout"))
	}
	return errors.Join(problems...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.request_timeout", "15s")
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("database.driver", postgres.DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "marketplace")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.log_sql", false)
	v.SetDefault("database.seed_categories", []string{})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.use_tls", true)
	v.SetDefault("smtp.timeout", "10s")

	v.SetDefault("delivery.schedule", "*/15 * * * * *")
	v.SetDefault("delivery.worker", "")
	v.SetDefault("delivery.batch_size", 100)
	v.SetDefault("delivery.workers", 4)
	v.SetDefault("delivery.claim_ttl", "2m")
	v.SetDefault("delivery.send_timeout", "30s")
	v.SetDefault("delivery.registry_ttl", "24h")
	v.SetDefault("delivery.max_attempts", 5)
	v.SetDefault("delivery.base_backoff", "30s")
	v.SetDefault("delivery.max_backoff", "30m")

	v.SetDefault("recovery.schedule", "0 */5 * * * *")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

func defaultWorkerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "marketplace"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
