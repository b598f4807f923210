package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nexusnet/branch_registry_app/internal/dto"
	"github.com/nexusnet/branch_registry_app/internal/middleware"
)

var upgrader = websocket.Upgrader{
	// The API carries no credentials, so cross-origin dashboards may connect.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func sendJSON(ws *websocket.Conn, logger *slog.Logger, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		logger.Warn("Failed to write WebSocket JSON", slog.String("error", err.Error()))
	}
	return err
}

// watchBranches godoc
// @Summary Live branch feed
// @Description Upgrades to a WebSocket and streams the full branch list: once on connect, then again after every committed change. Each message replaces the previous snapshot.
// @Tags branches
// @Success 101 "Switching Protocols"
// @Router /branches/watch [get]
func (h *branchHandler) watchBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Failed to upgrade the websocket", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()
	logger.Info("Watch client connected")

	// The subscription lives exactly as long as this connection: cancelling
	// the context releases the store-side listener.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	snapshots, err := h.branchService.WatchBranches(ctx)
	if err != nil {
		logger.Error("Failed to subscribe to branch changes", slog.String("error", err.Error()))
		_ = sendJSON(ws, logger, gin.H{"error": "subscription failed"})
		return
	}

	// Drain client frames so closure is noticed; inbound messages are ignored.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for snapshot := range snapshots {
		if err := sendJSON(ws, logger, dto.ToListBranchesResponse(snapshot)); err != nil {
			return
		}
	}
	logger.Info("Watch client disconnected")
}
