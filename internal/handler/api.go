package handler

import (
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/skilllab/internal/fragment"
	"github.com/skilllab/internal/games"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/layout"
	"github.com/skilllab/internal/nav"
	"github.com/skilllab/internal/service"
	"github.com/skilllab/internal/tools"
	"github.com/skilllab/internal/view"
)

// Options 汇总所有请求共享的协作者。
type Options struct {
	Table     *i18n.Table
	Fragments fragment.Source
	Logger    *slog.Logger

	DefaultWidth int
	Debounce     time.Duration
	// Faker 生成游戏与工具的初始状态，为空时随机取种子。
	Faker *gofakeit.Faker
}

// API 聚合 HTTP 处理器共享的依赖。
type API struct {
	db        *gorm.DB
	prefs     *service.PreferenceService
	table     *i18n.Table
	fragments fragment.Source
	games     nav.Resetter
	tools     nav.Resetter
	logger    *slog.Logger

	defaultWidth int
	debounce     time.Duration
}

// NewAPI 构建处理器集合。db 为空时不持久化访客偏好。
func NewAPI(db *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	table := opts.Table
	if table == nil {
		table = i18n.MustLoad()
	}
	width := opts.DefaultWidth
	if width <= 0 {
		width = layout.DefaultWidth
	}
	renderer := view.NewRenderer(table)

	a := &API{
		db:           db,
		table:        table,
		fragments:    opts.Fragments,
		games:        view.NewGamePanels(games.NewEngine(opts.Faker), renderer),
		tools:        view.NewToolPanels(tools.NewToolbox(opts.Faker), renderer),
		logger:       logger,
		defaultWidth: width,
		debounce:     opts.Debounce,
	}
	if db != nil {
		a.prefs = service.NewPreferenceService(db)
	}
	return a
}

// DB 返回底层 gorm 实例。
func (a *API) DB() *gorm.DB {
	return a.db
}
