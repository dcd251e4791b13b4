package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/roundqr/internal/config"
	"github.com/cristianadrielbraun/roundqr/internal/handlers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	h, err := handlers.New(cfg, logger)
	if err != nil {
		logger.Error("invalid render settings", slog.Any("error", err))
		os.Exit(1)
	}
	h.Register(r)

	addr := getAddr(cfg)
	logger.Info("roundqr listening", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func getAddr(cfg *config.Config) string {
	if cfg.Port != "" {
		return ":" + cfg.Port
	}
	return ":8080"
}
