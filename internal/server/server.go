// Package server assembles the HTTP server from a Config.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yokitheyo/logsweep/internal/api"
	"github.com/yokitheyo/logsweep/internal/config"
	"github.com/yokitheyo/logsweep/internal/service"
	"github.com/yokitheyo/logsweep/internal/taskmgr"
)

// NewEngine builds the service engine described by cfg.
func NewEngine(cfg *config.Config, logger *slog.Logger) (*service.Engine, error) {
	return service.NewEngine(service.Options{
		Pattern:           cfg.Scan.Pattern,
		MaxLineBytes:      cfg.Scan.MaxLineBytes,
		ArchiveNameLayout: cfg.Archive.NameLayout,
		Logger:            logger,
	})
}

// NewHandler returns the gin engine with every route registered.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	engine, err := NewEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	tm := taskmgr.NewTaskManager(cfg.Tasks.Retain)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger))
	api.RegisterHandlers(r, engine, tm)
	return r, nil
}

// Run serves until the listener fails.
func Run(cfg *config.Config, logger *slog.Logger) error {
	handler, err := NewHandler(cfg, logger)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "pattern", cfg.Scan.Pattern)
	return http.ListenAndServe(addr, handler)
}
