package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/file-processor/backend/internal/engine"
	"github.com/file-processor/backend/internal/models"
)

// WebSocket message types.
const (
	MsgTypeProgress = "progress"
	MsgTypeComplete = "complete"
	MsgTypeError    = "error"
)

// WSMessage is one progress update pushed to the client.
type WSMessage struct {
	Type      string  `json:"type"`
	RunID     string  `json:"runId"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Message   string  `json:"message,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// WebSocketHandler streams run progress to clients.
type WebSocketHandler struct {
	runs         *engine.Manager
	upgrader     websocket.Upgrader
	pollInterval time.Duration
}

// NewWebSocketHandler creates the progress stream handler.
func NewWebSocketHandler(runs *engine.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		runs: runs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is enforced by the HTTP middleware
			},
		},
		pollInterval: 200 * time.Millisecond,
	}
}

// HandleRunProgress upgrades the connection and pushes progress snapshots
// until the run finishes or the client goes away.
func (ws *WebSocketHandler) HandleRunProgress(c echo.Context) error {
	runID := c.Param("id")
	if _, ok := ws.runs.GetRun(runID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}

	conn, err := ws.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}
	defer conn.Close()

	ticker := time.NewTicker(ws.pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		run, ok := ws.runs.GetRun(runID)
		if !ok {
			ws.send(conn, WSMessage{Type: MsgTypeError, RunID: runID, Message: "run evicted"})
			return nil
		}

		msg := WSMessage{
			Type:      MsgTypeProgress,
			RunID:     runID,
			Status:    string(run.Status),
			Progress:  run.Progress,
			Timestamp: time.Now().UnixMilli(),
		}
		switch run.Status {
		case models.RunStatusComplete:
			msg.Type = MsgTypeComplete
		case models.RunStatusError:
			msg.Type = MsgTypeError
			msg.Message = run.Error
		}

		if err := ws.send(conn, msg); err != nil {
			// Client disconnected; the run keeps going.
			return nil
		}
		if msg.Type != MsgTypeProgress {
			return nil
		}
	}
	return nil
}

func (ws *WebSocketHandler) send(conn *websocket.Conn, msg WSMessage) error {
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteJSON(msg)
}
