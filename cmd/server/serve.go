package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/skilllab/internal/db"
	"github.com/skilllab/internal/handler"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/logging"
	"github.com/skilllab/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(appConfig.GinMode)

		if err := db.Init(appConfig.DatabasePath, logger); err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", logging.Err(err))
			}
		}()

		table, err := i18n.Load()
		if err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
		source, closer, err := fragmentSource(appConfig, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		api := handler.NewAPI(db.DB, handler.Options{
			Table:        table,
			Fragments:    source,
			Logger:       logger,
			DefaultWidth: appConfig.DefaultViewportWidth,
			Debounce:     appConfig.ResizeDebounce,
		})
		r := router.SetupRouter(api, appConfig.SessionSecret, logger)

		logger.Info("listening", "addr", appConfig.ListenAddr, "fragments", appConfig.FragmentSource)
		if err := r.Run(appConfig.ListenAddr); err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	},
}
