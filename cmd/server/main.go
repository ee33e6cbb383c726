package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/file-processor/backend/internal/api"
	"github.com/file-processor/backend/internal/config"
	"github.com/file-processor/backend/internal/engine"
	"github.com/file-processor/backend/internal/history"
	"github.com/file-processor/backend/internal/parser"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	var hist *history.Store
	if cfg.Storage.EnablePersistence {
		hist, err = history.NewStoreAtPath(cfg.HistoryPath())
		if err != nil {
			fmt.Printf("Failed to open run history: %v\n", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	registry := parser.NewRegistry()

	var sink engine.HistorySink
	if hist != nil {
		sink = hist
	}
	runMgr := engine.NewManager(registry, cfg.WorkerTimeout(), sink, cfg.Storage.ReportsDirectory)

	// Background cleanup of aged runs
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			runMgr.CleanupOldRuns(time.Duration(cfg.Processing.RunMaxAgeMinutes) * time.Minute)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/status") || path == "/health"
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, &api.Dependencies{
		RunManager: runMgr,
		History:    hist,
		Version:    Version,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port)
	fmt.Printf("file-processor backend %s (built %s) listening on %s\n", Version, BuildTime, addr)
	if err := e.Start(addr); err != nil {
		fmt.Printf("Server stopped: %v\n", err)
		os.Exit(1)
	}
}
