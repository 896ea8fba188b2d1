package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/rbroggi/tinkoko/internal/actors/gateway"
	grpcactor "github.com/rbroggi/tinkoko/internal/actors/grpc"
	"github.com/rbroggi/tinkoko/internal/actors/metrics"
	"github.com/rbroggi/tinkoko/internal/actors/router"
	"github.com/rbroggi/tinkoko/internal/bootstrap"
	"github.com/rbroggi/tinkoko/internal/config"
	"github.com/rbroggi/tinkoko/internal/core/usecase"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
}

var (
	grpcServerEndpoint = flag.String("grpc-server-endpoint", "localhost:50051", "gRPC server endpoint")
	httpServerEndpoint = flag.String("http-server-endpoint", "localhost:8080", "HTTP server endpoint")
)

func run() error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := bootstrap.SetupLogging(cfg); err != nil {
		return err
	}

	repo, closeRepo, err := bootstrap.OpenRepository(ctx, cfg.Store)
	if err != nil {
		log.WithError(err).Error("could not initialize the record store")
		return err
	}
	defer closeRepo()

	dispatcher := router.NewRouter(router.RouterArgs{
		Users:    usecase.NewUserService(usecase.UserServiceArgs{Repository: repo}),
		Products: usecase.NewProductService(usecase.ProductServiceArgs{Repository: repo}),
	})
	m := metrics.NewMetrics("tinkoko")

	mux, err := gateway.NewServeMux(gateway.ServeMuxArgs{Dispatcher: m.Instrument(dispatcher), Pinger: repo})
	if err != nil {
		return err
	}
	metricsHandler := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	if err := mux.HandlePath(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		metricsHandler.ServeHTTP(w, r)
	}); err != nil {
		return err
	}

	httpServer := &http.Server{Addr: *httpServerEndpoint, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	lis, err := net.Listen("tcp", *grpcServerEndpoint)
	if err != nil {
		return err
	}

	s := grpc.NewServer()
	healthService := grpcactor.NewHealthService(grpcactor.HealthServiceArgs{Pinger: repo})
	healthpb.RegisterHealthServer(s, healthService)
	go healthService.Run(ctx)

	// Register reflection service on gRPC server.
	reflection.Register(s)

	// Start gRPC server
	go func() {
		if err := s.Serve(lis); err != nil {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", *httpServerEndpoint).
		WithField("grpc-server-addr", *grpcServerEndpoint).
		WithField("store-backend", cfg.Store.Backend).
		Info("servers up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the server")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	// Stop servers
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("error shutting down http server")
	}
	s.GracefulStop()

	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		panic(err)
	}
}
