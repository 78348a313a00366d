package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/skyline/api"
	"github.com/Domenick1991/skyline/config"
	"github.com/Domenick1991/skyline/internal/service/booking"
	"github.com/Domenick1991/skyline/internal/service/flights"
	"github.com/Domenick1991/skyline/internal/service/status"
	"github.com/Domenick1991/skyline/internal/transport/websocket"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerSpecURL = "/swagger/skyline.swagger.json"

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Status   status.StatusUseCase
}

type Servers struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	gatewayConn  *grpc.ClientConn
	httpServer   *http.Server
	hub          *websocket.Hub
}

// Run starts the gRPC health server and the HTTP server (REST API, gateway
// health probe, swagger and static files) and blocks until ctx is canceled
// or a server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, rdb *redis.Client) error {
	s, err := newServers(cfg, svc, rdb)
	if err != nil {
		return err
	}
	defer s.gatewayConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()
	go s.hub.Run()
	go websocket.RunFeed(feedCtx, s.hub, cfg.Status.LiveInterval(), api.StatusSnapshot(svc.Status))

	log.Printf("SkyLine listening on http %s, grpc %s", cfg.HTTP.Address, cfg.GRPC.Address)

	select {
	case err := <-errCh:
		s.hub.Stop()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.healthServer.Shutdown()
		s.hub.Stop()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, svc Services, rdb *redis.Client) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	conn, err := grpc.NewClient(dialTarget(cfg.GRPC.Address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC health: %w", err)
	}
	gateway := runtime.NewServeMux(runtime.WithHealthEndpointAt(healthpb.NewHealthClient(conn), "/healthz"))

	hub := websocket.NewHub()
	router := api.NewRouter(svc.Flights, svc.Bookings, svc.Status, api.RouterOptions{
		FlightsLatency: cfg.Latency.Flights(),
		BookLatency:    cfg.Latency.Book(),
		RateLimit:      cfg.RateLimit,
		Redis:          rdb,
		Hub:            hub,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	})
	mountOps(router, cfg.HTTP, gateway)

	return &Servers{
		grpcServer:   grpcSrv,
		healthServer: healthSrv,
		gatewayConn:  conn,
		httpServer:   &http.Server{Addr: cfg.HTTP.Address, Handler: router},
		hub:          hub,
	}, nil
}

// mountOps adds everything outside /api: the health probe, API docs and the
// static front end.
func mountOps(router *gin.Engine, cfg config.HTTPConfig, gateway http.Handler) {
	router.GET("/healthz", gin.WrapH(gateway))

	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerSpecURL))))
	}

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}
}

// dialTarget turns a listen address such as ":9090" into something dialable.
func dialTarget(address string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host != "" {
		return address
	}
	return net.JoinHostPort("localhost", port)
}
