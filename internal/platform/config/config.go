// Package config carga la configuración del servicio: defaults -> archivo YAML -> env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar permite apuntar a un archivo de configuración concreto.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultJWTSecret solo vale para desarrollo; Validate lo rechaza en producción.
const DefaultJWTSecret = "dev-secret-change-me"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/petpatrol/config.yaml",
}

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Storage   StorageConfig   `koanf:"storage"`
	Auth      AuthConfig      `koanf:"auth"`
	Logging   LoggingConfig   `koanf:"logging"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Listings  ListingsConfig  `koanf:"listings"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// DSN vacío => adapters in-memory.
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type RedisConfig struct {
	// URL vacía => sin caché de catálogos.
	URL        string        `koanf:"url"`
	CatalogTTL time.Duration `koanf:"catalog_ttl"`
}

type StorageConfig struct {
	// Bucket vacío => object store in-memory.
	Bucket        string        `koanf:"bucket"`
	Region        string        `koanf:"region"`
	Endpoint      string        `koanf:"endpoint"`
	PublicBaseURL string        `koanf:"public_base_url"`
	UsePathStyle  bool          `koanf:"use_path_style"`
	MaxImageBytes int64         `koanf:"max_image_bytes"`
	UploadTimeout time.Duration `koanf:"upload_timeout"`
	// Credenciales estáticas opcionales; vacías = cadena por defecto de AWS.
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
	// Required exige usuario autenticado para crear publicaciones.
	Required bool `koanf:"required"`
	// DevHeader habilita X-Debug-User-ID (solo sin JWT).
	DevHeader bool `koanf:"dev_header"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type RateLimitConfig struct {
	LoginRequests int           `koanf:"login_requests"`
	Window        time.Duration `koanf:"window"`
}

type ListingsConfig struct {
	CreateTimeout time.Duration `koanf:"create_timeout"`
}

// Default devuelve la configuración base de desarrollo.
func Default() Config {
	return Config{
		App: AppConfig{
			Name:        "petpatrol",
			Environment: "development",
		},
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			AutoMigrate:  true,
		},
		Redis: RedisConfig{
			CatalogTTL: 10 * time.Minute,
		},
		Storage: StorageConfig{
			Region:        "us-east-2",
			MaxImageBytes: 5 << 20,
			UploadTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			LoginRequests: 10,
			Window:        time.Minute,
		},
		Listings: ListingsConfig{
			CreateTimeout: 15 * time.Second,
		},
	}
}

// Load arma la configuración. Orden: defaults, archivo (si existe), variables de entorno.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKeys mapea variables de entorno a claves koanf.
var envKeys = map[string]string{
	"APP_NAME":               "app.name",
	"APP_ENV":                "app.environment",
	"PORT":                   "server.port",
	"SERVER_READ_TIMEOUT":    "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":   "server.write_timeout",
	"SHUTDOWN_TIMEOUT":       "server.shutdown_timeout",
	"DB_DSN":                 "database.dsn",
	"DB_MAX_OPEN_CONNS":      "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":      "database.max_idle_conns",
	"DB_AUTO_MIGRATE":        "database.auto_migrate",
	"REDIS_URL":              "redis.url",
	"CATALOG_CACHE_TTL":      "redis.catalog_ttl",
	"S3_BUCKET":              "storage.bucket",
	"AWS_REGION":             "storage.region",
	"S3_ENDPOINT":            "storage.endpoint",
	"S3_PUBLIC_BASE_URL":     "storage.public_base_url",
	"S3_USE_PATH_STYLE":      "storage.use_path_style",
	"AWS_ACCESS_KEY_ID":      "storage.access_key_id",
	"AWS_SECRET_ACCESS_KEY":  "storage.secret_access_key",
	"MAX_IMAGE_BYTES":        "storage.max_image_bytes",
	"UPLOAD_TIMEOUT":         "storage.upload_timeout",
	"JWT_SECRET":             "auth.jwt_secret",
	"TOKEN_TTL":              "auth.token_ttl",
	"AUTH_REQUIRED":          "auth.required",
	"AUTH_DEV_HEADER":        "auth.dev_header",
	"LOG_LEVEL":              "logging.level",
	"LOG_FORMAT":             "logging.format",
	"CORS_ORIGINS":           "cors.allowed_origins",
	"LOGIN_RATE_LIMIT":       "rate_limit.login_requests",
	"RATE_LIMIT_WINDOW":      "rate_limit.window",
	"LISTING_CREATE_TIMEOUT": "listings.create_timeout",
}

// envKey devuelve "" para variables no mapeadas; koanf las ignora.
func envKey(name string) string {
	return envKeys[name]
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitList acepta tanto listas YAML como "a, b, c" venido de env.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	e := strings.ToLower(strings.TrimSpace(c.App.Environment))
	return e == "production" || e == "prod"
}

// Validate revisa valores obligatorios y límites.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if c.Storage.MaxImageBytes <= 0 {
		return errors.New("storage.max_image_bytes must be positive")
	}
	if c.Listings.CreateTimeout <= 0 {
		return errors.New("listings.create_timeout must be positive")
	}
	if c.RateLimit.LoginRequests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.login_requests and rate_limit.window must be positive")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.IsProduction() {
		if c.Auth.JWTSecret == DefaultJWTSecret || len(c.Auth.JWTSecret) < 32 {
			return errors.New("auth.jwt_secret must be changed and at least 32 chars in production")
		}
		if c.Auth.DevHeader {
			return errors.New("auth.dev_header cannot be enabled in production")
		}
	}
	return nil
}
