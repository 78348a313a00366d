package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skyline/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	bookings booking.BookingUseCase
	now      func() time.Time
}

func NewHealthHandler(bookings booking.BookingUseCase) *HealthHandler {
	return &HealthHandler{bookings: bookings, now: time.Now}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.get)
}

func (h *HealthHandler) get(c *gin.Context) {
	count, err := h.bookings.CountBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, healthResponse{
		Status:   "ok",
		Time:     formatTimestamp(h.now()),
		Bookings: count,
	})
}
