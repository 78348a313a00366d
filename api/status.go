package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/skyline/internal/service/status"
	"github.com/Domenick1991/skyline/internal/transport/websocket"
	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	service status.StatusUseCase
	hub     *websocket.Hub
}

// NewStatusHandler accepts a nil hub, in which case the live feed is not mounted.
func NewStatusHandler(service status.StatusUseCase, hub *websocket.Hub) *StatusHandler {
	return &StatusHandler{service: service, hub: hub}
}

func (h *StatusHandler) Register(router *gin.RouterGroup) {
	router.GET("/status", h.get)
	if h.hub != nil {
		router.GET("/status/live", h.live)
	}
}

func (h *StatusHandler) get(c *gin.Context) {
	report := h.service.GetStatus(c.Request.Context(), c.Query("flightNum"), c.Query("date"))
	c.JSON(http.StatusOK, toStatusResponse(report))
}

func (h *StatusHandler) live(c *gin.Context) {
	number := status.NormalizeFlightNumber(c.Query("flightNum"))
	client := h.hub.ServeWS(c.Writer, c.Request, number)
	if client == nil {
		return
	}
	h.hub.SendTo(client, websocket.EventStatusUpdate, StatusSnapshot(h.service)(c.Request.Context(), number))
}

// StatusSnapshot renders status reports in the same shape as GET /api/status.
func StatusSnapshot(service status.StatusUseCase) websocket.SnapshotFunc {
	return func(ctx context.Context, flightNumber string) interface{} {
		return toStatusResponse(service.GetStatus(ctx, flightNumber, ""))
	}
}
