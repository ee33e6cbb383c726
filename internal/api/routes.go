package api

import (
	"github.com/labstack/echo/v4"

	"github.com/file-processor/backend/internal/engine"
	"github.com/file-processor/backend/internal/history"
)

// Dependencies holds all handler dependencies.
type Dependencies struct {
	RunManager *engine.Manager
	History    *history.Store
	Version    string
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, deps *Dependencies) {
	h := NewHandler(deps.RunManager, deps.History, deps.Version)
	ws := NewWebSocketHandler(deps.RunManager)

	e.GET("/health", h.HandleHealth)

	processGroup := e.Group("/api/process")
	processGroup.POST("", h.HandleProcess)
	processGroup.GET("/:id/status", h.HandleRunStatus)
	processGroup.GET("/:id/result", h.HandleRunResult)
	processGroup.GET("/:id/result.msgpack", h.HandleRunResultBinary)
	processGroup.GET("/:id/ws", ws.HandleRunProgress)

	runsGroup := e.Group("/api/runs")
	runsGroup.GET("", h.HandleListRuns)
	runsGroup.GET("/:id", h.HandleGetRunRecord)
}
