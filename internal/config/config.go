package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig 包装能解析但无法使用的配置值。
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	FragmentSourceFS   = "fs"
	FragmentSourceHTTP = "http"
)

// AppConfig 汇总运行站点所需的基础配置。
type AppConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR"`
	Port          string `env:"PORT" envDefault:"8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"skilllab.db"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"skilllab-dev-secret"`
	GinMode       string `env:"GIN_MODE" envDefault:"release"`
	SiteBaseURL   string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	// FragmentSource 为 "fs" 时使用内嵌片段，为 "http" 时从 FragmentBaseURL 获取
	FragmentSource   string        `env:"FRAGMENT_SOURCE" envDefault:"fs"`
	FragmentBaseURL  string        `env:"FRAGMENT_BASE_URL"`
	FragmentTimeout  time.Duration `env:"FRAGMENT_TIMEOUT" envDefault:"5s"`
	FragmentCacheTTL time.Duration `env:"FRAGMENT_CACHE_TTL" envDefault:"5m"`
	// RedisURL 启用共享片段缓存，为空时使用内存缓存
	RedisURL string `env:"REDIS_URL"`

	ResizeDebounce       time.Duration `env:"RESIZE_DEBOUNCE" envDefault:"100ms"`
	DefaultViewportWidth int           `env:"DEFAULT_VIEWPORT_WIDTH" envDefault:"1280"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load 先读取可选的 .env 文件，再从环境变量读取应用配置。
func Load() (AppConfig, error) {
	// .env 文件可以不存在
	_ = godotenv.Load()

	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return AppConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg.normalize()
}

func (c AppConfig) normalize() (AppConfig, error) {
	c.Port = strings.TrimSpace(c.Port)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	c.FragmentSource = strings.ToLower(strings.TrimSpace(c.FragmentSource))

	switch c.FragmentSource {
	case FragmentSourceFS:
	case FragmentSourceHTTP:
		if strings.TrimSpace(c.FragmentBaseURL) == "" {
			c.FragmentBaseURL = c.SiteBaseURL
		}
	default:
		return AppConfig{}, fmt.Errorf("%w: FRAGMENT_SOURCE %q", ErrInvalidConfig, c.FragmentSource)
	}
	if c.DefaultViewportWidth <= 0 {
		return AppConfig{}, fmt.Errorf("%w: DEFAULT_VIEWPORT_WIDTH must be positive", ErrInvalidConfig)
	}
	if c.ResizeDebounce < 0 {
		return AppConfig{}, fmt.Errorf("%w: RESIZE_DEBOUNCE must not be negative", ErrInvalidConfig)
	}
	return c, nil
}
