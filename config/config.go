package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Pool      PoolConfig      `mapstructure:"pool"`
	Allocator AllocatorConfig `mapstructure:"allocator"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Storage drivers for the slot registry.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, redis, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"` // create tables on startup
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	PoolSize  int           `mapstructure:"pool_size"`  // 0 = go-redis default
	OpTimeout time.Duration `mapstructure:"op_timeout"` // per command read/write deadline
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// PoolConfig describes the QR slot pools and the day boundary used for resets.
type PoolConfig struct {
	Timezone             string          `mapstructure:"timezone"` // IANA name, fallback for every event
	EventTimezones       []EventTimezone `mapstructure:"event_timezones"`
	DefaultMaxDailyCount int             `mapstructure:"default_max_daily_count"`
	Slots                []SlotSeed      `mapstructure:"slots"`
}

// EventTimezone overrides the pool timezone for one event. A list keeps the
// event id's case; viper lowercases map keys.
type EventTimezone struct {
	EventID  string `mapstructure:"event_id"`
	Timezone string `mapstructure:"timezone"`
}

// TimezoneByEvent returns the per-event overrides keyed by event id.
func (p PoolConfig) TimezoneByEvent() map[string]string {
	m := make(map[string]string, len(p.EventTimezones))
	for _, tz := range p.EventTimezones {
		m[tz.EventID] = tz.Timezone
	}
	return m
}

// SlotSeed is a slot registered at startup.
type SlotSeed struct {
	EventID       string `mapstructure:"event_id"`
	SlotID        string `mapstructure:"slot_id"`
	PayeeHandle   string `mapstructure:"payee_handle"`
	MaxDailyCount int    `mapstructure:"max_daily_count"` // 0 = pool default
}

type AllocatorConfig struct {
	MaxRetries     int           `mapstructure:"max_retries"`
	Timeout        time.Duration `mapstructure:"timeout"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// LoadEnv loads variables from a .env file if present, without overriding
// variables already set in the environment.
func LoadEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: QRA_ (QR Allocator).
// Nested keys use underscore: QRA_DATABASE_HOST, QRA_POOL_TIMEZONE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "qr_allocator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.op_timeout", "500ms")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "qr-slot-allocator")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("pool.timezone", "Asia/Kolkata")
	v.SetDefault("pool.default_max_daily_count", 20)
	v.SetDefault("allocator.max_retries", 3)
	v.SetDefault("allocator.timeout", "5s")
	v.SetDefault("allocator.idempotency_ttl", "24h")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", "1m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: QRA_DATABASE_HOST -> database.host
	v.SetEnvPrefix("QRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Pool.DefaultMaxDailyCount <= 0 {
		return fmt.Errorf("pool.default_max_daily_count must be positive, got %d", c.Pool.DefaultMaxDailyCount)
	}
	seen := make(map[string]bool, len(c.Pool.EventTimezones))
	for _, tz := range c.Pool.EventTimezones {
		if tz.EventID == "" || tz.Timezone == "" {
			return fmt.Errorf("pool.event_timezones entries need event_id and timezone")
		}
		if seen[tz.EventID] {
			return fmt.Errorf("pool.event_timezones lists event %q twice", tz.EventID)
		}
		seen[tz.EventID] = true
	}
	if c.Allocator.MaxRetries < 0 {
		return fmt.Errorf("allocator.max_retries must not be negative, got %d", c.Allocator.MaxRetries)
	}
	return nil
}
