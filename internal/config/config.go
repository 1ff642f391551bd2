// config реализует конфигурацию photo-feed сервиса: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	Cache    CacheConfig   `yaml:"cache"`
	S3       S3Config      `yaml:"s3"`
	Upload   UploadConfig  `yaml:"upload"`
	Search   SearchConfig  `yaml:"search"`
	Auth     AuthConfig    `yaml:"auth"`
	Feed     FeedConfig    `yaml:"feed"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// CacheConfig — опциональный Redis-кэш счётчиков лайков.
// Пустой URL отключает кэш: каждая выборка счётчика идёт в хранилище.
type CacheConfig struct {
	URL string        `yaml:"url" env:"CACHE_URL" env-default:""`
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"30s"`
}

// S3Config — объектное хранилище изображений (MinIO/S3).
type S3Config struct {
	Endpoint      string `yaml:"endpoint"        env:"S3_ENDPOINT"        env-required:"true"`
	RootUser      string `yaml:"root_user"       env:"S3_ROOT_USER"       env-required:"true"`
	RootPassword  string `yaml:"root_password"   env:"S3_ROOT_PASSWORD"   env-required:"true"`
	Bucket        string `yaml:"bucket"          env:"S3_BUCKET"          env-default:"photos"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL" env-required:"true"`
}

// UploadConfig — ограничения на загружаемые изображения.
type UploadConfig struct {
	MaxSizeBytes        int64    `yaml:"max_size_bytes"        env:"UPLOAD_MAX_SIZE_BYTES" env-default:"10485760"`
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"UPLOAD_ALLOWED_CONTENT_TYPES" env-default:"image/jpeg,image/png,image/webp"`
}

// SearchConfig — внешний поисковый API изображений.
type SearchConfig struct {
	BaseURL   string `yaml:"base_url"   env:"SEARCH_BASE_URL"   env-default:"https://api.unsplash.com"`
	AccessKey string `yaml:"access_key" env:"SEARCH_ACCESS_KEY" env-required:"true"`
	PageSize  int    `yaml:"page_size"  env:"SEARCH_PAGE_SIZE"  env-default:"30"`
}

// AuthConfig — проверка access-токенов (выпуск токенов — внешняя система).
type AuthConfig struct {
	JWTSecret string   `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string   `yaml:"issuer"     env:"JWT_ISSUER" env-default:"auth-service"`
	Audience  []string `yaml:"audience"   env:"JWT_AUDIENCE" env-default:"photo-feed"`
}

// FeedConfig — параметры сборки ленты.
type FeedConfig struct {
	// Максимум параллельных загрузок interactions при обходе ленты.
	MaxConcurrent int `yaml:"max_concurrent" env:"FEED_MAX_CONCURRENT" env-default:"8"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.S3.PublicBaseURL == "" {
		return fmt.Errorf("s3.public_base_url is required")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be > 0")
	}

	if len(c.Upload.AllowedContentTypes) == 0 {
		return fmt.Errorf("upload.allowed_content_types must not be empty")
	}

	if c.Search.BaseURL == "" {
		return fmt.Errorf("search.base_url is required")
	}

	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be > 0")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Feed.MaxConcurrent <= 0 {
		return fmt.Errorf("feed.max_concurrent must be > 0")
	}

	if c.Cache.URL != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when cache.url is set")
	}

	return nil
}
