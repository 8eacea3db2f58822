package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "swiftcart"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SWIFTCART_APP_ENV"
	EnvPort   = "SWIFTCART_APP_PORT"
)

// Storage backends selectable via SWIFTCART_STORAGE_BACKEND.
const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendDB     = "db"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Password PasswordConfig
	Catalog  CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWIFTCART_APP_ENV" required:"true"`
	Port         string `envconfig:"SWIFTCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SWIFTCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Backend string `envconfig:"SWIFTCART_STORAGE_BACKEND" default:"db"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendMemory, StorageBackendRedis, StorageBackendDB:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

type DBConfig struct {
	Driver string `envconfig:"SWIFTCART_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SWIFTCART_DB_DSN" default:"file:swiftcart.db"`

	MaxOpenConns    int           `envconfig:"SWIFTCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SWIFTCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWIFTCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTCART_REDIS_URL"`
	Address      string        `envconfig:"SWIFTCART_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWIFTCART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SWIFTCART_JWT_ISSUER" default:"swiftcart"`
	ExpirationMinutes int    `envconfig:"SWIFTCART_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AuthConfig configures the simulated credential check. When DemoPasswordHash
// is empty the service hashes DemoPassword at startup.
type AuthConfig struct {
	DemoUsername     string `envconfig:"SWIFTCART_AUTH_DEMO_USERNAME" default:"demo"`
	DemoPassword     string `envconfig:"SWIFTCART_AUTH_DEMO_PASSWORD" default:"changeme"`
	DemoPasswordHash string `envconfig:"SWIFTCART_AUTH_DEMO_PASSWORD_HASH"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SWIFTCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWIFTCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWIFTCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWIFTCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWIFTCART_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"SWIFTCART_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout time.Duration `envconfig:"SWIFTCART_CATALOG_TIMEOUT" default:"10s"`
}
