package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/skilllab/internal/handler"
	"github.com/skilllab/internal/logging"
	"github.com/skilllab/web"
)

const sessionName = "skilllab_session"

// SetupRouter 配置 gin 引擎与路由
func SetupRouter(api *handler.API, sessionSecret string, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if sessionSecret == "" {
		sessionSecret = "secret"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 共享片段，http 模式下加载器也从这里获取
	r.StaticFS("/shared", http.FS(web.Shared()))

	r.GET("/ping", handler.Ping)
	r.GET("/healthz", api.HealthCheck)

	site := r.Group("")
	site.Use(api.LocaleMiddleware())
	{
		site.GET("/", api.ShowHome)
		site.GET("/games", api.ShowGames)
		site.GET("/games/:id", api.ShowGame)
		site.GET("/tools", api.ShowTools)
		site.GET("/tools/:id", api.ShowTool)
		site.GET("/about", api.ShowAbout)
		site.GET("/about/:page", api.ShowAbout)
		site.POST("/api/language", api.SetLanguage)
	}

	return r
}
