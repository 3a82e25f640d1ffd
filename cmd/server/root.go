package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skilllab/internal/config"
	"github.com/skilllab/internal/fragment"
	"github.com/skilllab/internal/logging"
	"github.com/skilllab/web"
)

var (
	appConfig config.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "skilllab",
	Short:         "Skill Lab page composition server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, renderCmd, resizeCmd)
}

// fragmentSource 按配置构建带缓存的片段源，返回的 closer 负责释放缓存客户端。
func fragmentSource(cfg config.AppConfig, logger *slog.Logger) (fragment.Source, io.Closer, error) {
	var source fragment.Source
	switch cfg.FragmentSource {
	case config.FragmentSourceHTTP:
		source = fragment.NewHTTPSource(cfg.FragmentBaseURL, cfg.FragmentTimeout)
	case config.FragmentSourceFS, "":
		source = fragment.NewFSSource(web.Assets())
	default:
		return nil, nil, fmt.Errorf("%w: fragment source %q", config.ErrInvalidConfig, cfg.FragmentSource)
	}

	if cfg.RedisURL == "" {
		return fragment.NewCachedSource(source, fragment.NewMemoryCache(), cfg.FragmentCacheTTL, logger), nopCloser{}, nil
	}
	cache, err := fragment.NewRedisCacheFromURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, errors.Join(config.ErrInvalidConfig, err)
	}
	return fragment.NewCachedSource(source, cache, cfg.FragmentCacheTTL, logger), cache, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
