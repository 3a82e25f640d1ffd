package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

const (
	tintDuration = 214
	tintRows     = 12
	tintQuery    = 2
)

// SlowQueryThreshold 超过该耗时的查询以 warn 级别记录
const SlowQueryThreshold = 200 * time.Millisecond

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger 将 slog 适配为 gorm 日志。普通查询记为 debug，慢查询记为 warn，
// 失败记为 error。
func NewLogger(logger *slog.Logger) glogger.Interface {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger.With("component", "db")}
}

func (l *slogLogger) LogMode(glogger.LogLevel) glogger.Interface {
	return l
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...any) {
	l.logger.InfoContext(ctx, msg, "data", data)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.logger.WarnContext(ctx, msg, "data", data)
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...any) {
	l.logger.ErrorContext(ctx, msg, "data", data)
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := elapsed > SlowQueryThreshold
	if !failed && !slow && !l.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	sql, rows := fc()
	attrs := []any{
		tint.Attr(tintDuration, slog.Duration("duration", elapsed)),
		tint.Attr(tintRows, slog.Int64("rows", rows)),
		tint.Attr(tintQuery, slog.String("query", sql)),
	}
	switch {
	case failed:
		l.logger.ErrorContext(ctx, "query failed", append(attrs, tint.Err(err))...)
	case slow:
		l.logger.WarnContext(ctx, "slow query", attrs...)
	default:
		l.logger.DebugContext(ctx, "query executed", attrs...)
	}
}
