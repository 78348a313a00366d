package api

import (
	"log"
	"time"

	"github.com/Domenick1991/skyline/config"
	"github.com/Domenick1991/skyline/internal/middleware"
	"github.com/Domenick1991/skyline/internal/service/booking"
	"github.com/Domenick1991/skyline/internal/service/flights"
	"github.com/Domenick1991/skyline/internal/service/status"
	"github.com/Domenick1991/skyline/internal/transport/websocket"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterOptions struct {
	FlightsLatency time.Duration
	BookLatency    time.Duration
	RateLimit      config.RateLimitConfig
	Redis          *redis.Client
	Hub            *websocket.Hub
	// TrustedProxies may set X-Forwarded-For; none are trusted by default.
	TrustedProxies []string
}

// NewRouter builds the gin engine serving /api.
func NewRouter(
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	statusSvc status.StatusUseCase,
	opts RouterOptions,
) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("invalid trusted proxies %v, trusting none: %v", opts.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.CORS())

	group := r.Group("/api", middleware.RateLimit(opts.RateLimit, opts.Redis))
	NewHealthHandler(bookingSvc).Register(group)
	NewFlightHandler(flightSvc).Register(group, middleware.Latency(opts.FlightsLatency))
	NewBookingHandler(bookingSvc).Register(group, middleware.Latency(opts.BookLatency))
	NewStatusHandler(statusSvc, opts.Hub).Register(group)

	return r
}
