package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const maxJWTLeeway = 60 * time.Second

// Config is the resolved runtime configuration shared by every service.
// Values are applied in order: defaults, optional YAML file, environment.
type Config struct {
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Auth      AuthConfig      `yaml:"auth"`
	HTTP      HTTPConfig      `yaml:"http"`
	Redis     RedisConfig     `yaml:"redis"`
	Minio     MinioConfig     `yaml:"minio"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Name           string        `yaml:"name"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	SSL            bool          `yaml:"ssl"`
	PoolMin        int32         `yaml:"pool_min"`
	PoolMax        int32         `yaml:"pool_max"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
	AutoMigrate    bool          `yaml:"auto_migrate"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
	Leeway    time.Duration `yaml:"leeway"`
	Issuer    string        `yaml:"issuer"`
}

type AuthConfig struct {
	PasswordHashCost int  `yaml:"password_hash_cost"`
	EnforceActive    bool `yaml:"enforce_active"`
}

type HTTPConfig struct {
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
	RateLimitMax    int           `yaml:"rate_limit_max"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig is optional; an empty Addr disables the course cache.
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	CourseCacheTTL time.Duration `yaml:"course_cache_ttl"`
}

// MinioConfig is optional; an empty Endpoint disables profile image uploads.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket"`
}

type SchedulerConfig struct {
	TempPasswordReportInterval time.Duration `yaml:"temp_password_report_interval"`
	TempPasswordMaxAge         time.Duration `yaml:"temp_password_max_age"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults(port int) Config {
	return Config{
		Env:      "development",
		Port:     port,
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			Name:           "admin_portal",
			User:           "postgres",
			PoolMin:        2,
			PoolMax:        10,
			AcquireTimeout: 3 * time.Second,
		},
		JWT: JWTConfig{
			ExpiresIn: 8 * time.Hour,
			Leeway:    30 * time.Second,
			Issuer:    "admin-portal",
		},
		Auth: AuthConfig{PasswordHashCost: 12},
		HTTP: HTTPConfig{
			RateLimitWindow: 15 * time.Minute,
			RateLimitMax:    100,
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{CourseCacheTTL: 5 * time.Minute},
		Minio: MinioConfig{Bucket: "trainer-profiles"},
		Scheduler: SchedulerConfig{
			TempPasswordReportInterval: time.Hour,
			TempPasswordMaxAge:         72 * time.Hour,
		},
	}
}

// Load resolves the configuration for a service listening on port by
// default. path may be empty; a missing file is not an error.
func Load(path string, port int) (*Config, error) {
	cfg := Defaults(port)

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	env := &envReader{lookup: os.LookupEnv}
	env.apply(&cfg)
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (e *envReader) apply(cfg *Config) {
	cfg.Env = e.string("APP_ENV", cfg.Env)
	cfg.Port = e.int("PORT", cfg.Port)
	cfg.LogLevel = e.string("LOG_LEVEL", cfg.LogLevel)

	db := &cfg.Database
	db.URL = e.string("DATABASE_URL", db.URL)
	db.Host = e.string("DB_HOST", db.Host)
	db.Port = e.int("DB_PORT", db.Port)
	db.Name = e.string("DB_NAME", db.Name)
	db.User = e.string("DB_USER", db.User)
	db.Password = e.string("DB_PASSWORD", db.Password)
	db.SSL = e.bool("DB_SSL", db.SSL)
	db.PoolMin = int32(e.int("DB_POOL_MIN", int(db.PoolMin)))
	db.PoolMax = int32(e.int("DB_POOL_MAX", int(db.PoolMax)))
	db.AcquireTimeout = e.duration("DB_ACQUIRE_TIMEOUT", db.AcquireTimeout)
	db.AutoMigrate = e.bool("DB_AUTO_MIGRATE", db.AutoMigrate)

	cfg.JWT.Secret = e.string("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.ExpiresIn = e.duration("JWT_EXPIRES_IN", cfg.JWT.ExpiresIn)
	cfg.JWT.Leeway = e.duration("JWT_LEEWAY", cfg.JWT.Leeway)
	cfg.JWT.Issuer = e.string("JWT_ISSUER", cfg.JWT.Issuer)

	cfg.Auth.PasswordHashCost = e.int("PASSWORD_HASH_COST", cfg.Auth.PasswordHashCost)
	cfg.Auth.EnforceActive = e.bool("AUTH_ENFORCE_ACTIVE", cfg.Auth.EnforceActive)

	cfg.HTTP.AllowedOrigins = e.csv("ALLOWED_ORIGINS", cfg.HTTP.AllowedOrigins)
	cfg.HTTP.RateLimitWindow = e.milliseconds("RATE_LIMIT_WINDOW_MS", cfg.HTTP.RateLimitWindow)
	cfg.HTTP.RateLimitMax = e.int("RATE_LIMIT_MAX", cfg.HTTP.RateLimitMax)
	cfg.HTTP.ShutdownTimeout = e.duration("SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)

	cfg.Redis.Addr = e.string("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = e.string("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = e.int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.CourseCacheTTL = e.duration("COURSE_CACHE_TTL", cfg.Redis.CourseCacheTTL)

	cfg.Minio.Endpoint = e.string("MINIO_ENDPOINT", cfg.Minio.Endpoint)
	cfg.Minio.AccessKey = e.string("MINIO_ACCESS_KEY", cfg.Minio.AccessKey)
	cfg.Minio.SecretKey = e.string("MINIO_SECRET_KEY", cfg.Minio.SecretKey)
	cfg.Minio.UseSSL = e.bool("MINIO_USE_SSL", cfg.Minio.UseSSL)
	cfg.Minio.Bucket = e.string("MINIO_BUCKET", cfg.Minio.Bucket)

	cfg.Scheduler.TempPasswordReportInterval = e.duration("TEMP_PASSWORD_REPORT_INTERVAL", cfg.Scheduler.TempPasswordReportInterval)
	cfg.Scheduler.TempPasswordMaxAge = e.duration("TEMP_PASSWORD_MAX_AGE", cfg.Scheduler.TempPasswordMaxAge)
}

// Validate rejects configurations the services cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > maxJWTLeeway {
		errs = append(errs, fmt.Errorf("JWT_LEEWAY must be between 0 and %s", maxJWTLeeway))
	}
	if cost := c.Auth.PasswordHashCost; cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.Database.PoolMax <= 0 || c.Database.PoolMin < 0 {
		errs = append(errs, errors.New("DB_POOL_MAX must be positive and DB_POOL_MIN non-negative"))
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		errs = append(errs, errors.New("DB_POOL_MIN cannot exceed DB_POOL_MAX"))
	}
	if c.Database.AcquireTimeout <= 0 {
		errs = append(errs, errors.New("DB_ACQUIRE_TIMEOUT must be positive"))
	}
	if c.Minio.Endpoint != "" && (c.Minio.AccessKey == "" || c.Minio.SecretKey == "") {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required with MINIO_ENDPOINT"))
	}
	return errors.Join(errs...)
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// Address is the listen address for echo.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DatabaseURL returns DATABASE_URL when set, otherwise a URL assembled from
// the DB_* parts.
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	sslMode := "disable"
	if c.Database.SSL {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

// envReader collects parse failures instead of silently keeping defaults.
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) string(key, fallback string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func (e *envReader) bool(key string, fallback bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	e.errs = append(e.errs, fmt.Errorf("%s: invalid boolean %q", key, v))
	return fallback
}

func (e *envReader) csv(key string, fallback []string) []string {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// duration accepts Go durations ("90s"), a day suffix ("7d") or bare seconds.
func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	d, err := ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (e *envReader) milliseconds(key string, fallback time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms <= 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid milliseconds %q", key, v))
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// ParseDuration extends time.ParseDuration with whole days ("1d") and plain
// second counts ("3600").
func ParseDuration(v string) (time.Duration, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}
