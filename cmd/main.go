package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mymembership/adapters"
	"mymembership/adapters/confloader"
	"mymembership/adapters/grpchealth"
	"mymembership/domain"
	"mymembership/handlers"
	"mymembership/service"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "nodes" {
		if err := runNodes(context.Background(), os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger := newLogger(os.Stderr)

	level.Info(logger).Log("msg", "Starting MyMembership service")

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = withLevel(logger, config.LogLevel)
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"config_path", config.ConfigPath,
		"node_id", config.NodeID,
		"node_address", net.JoinHostPort(config.NodeHost, fmt.Sprint(config.NodePort)),
		"reload_interval", config.ReloadInterval,
	)

	now := func() time.Time {
		return time.Now().UTC()
	}

	var reg *prometheus.Registry
	var metrics *service.Metrics
	{
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = service.NewMetrics(reg)
	}

	healthReporter := grpchealth.NewReporter()

	var agent *service.DiscoveryAgent
	{
		configSource := confloader.NewLoader(confloader.WithConfigFile(config.ConfigPath))
		if _, err := configSource.Read(); err != nil {
			// Not fatal: every round re-reads the file, so a fixed file is picked up without a restart.
			level.Warn(logger).Log("msg", "Discovery configuration is not valid yet", "err", err)
		}
		registry := service.NewRegistry(configSource, adapters.OpenKVStore, service.NewTimeProvider(now), metrics, logger)
		self := domain.Self{
			NodeID:  config.NodeID,
			Address: domain.NodeAddress{Host: config.NodeHost, Port: config.NodePort},
		}
		agent = service.NewDiscoveryAgent(registry, self, config.ReloadInterval, healthReporter, metrics, logger)
	}

	var e *echo.Echo
	{
		doc, err := handlers.LoadOpenAPI()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI spec", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.OpenAPIValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create OpenAPI validator", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		e.Use(validator)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(agent, logger))
		handlers.RegisterMetricsHandler(e, reg)
	}

	var grpcServer *grpc.Server
	{
		grpcServer = grpc.NewServer()
		healthReporter.Register(grpcServer)
		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	agent.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	go func() {
		level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			level.Error(logger).Log("msg", "gRPC server error", "err", err)
		}
	}()

	<-quit
	level.Info(logger).Log("msg", "Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Own entry goes first, the servers after.
	agent.Stop(shutdownCtx)
	healthReporter.Shutdown()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	grpcServer.GracefulStop()

	level.Info(logger).Log("msg", "Server stopped")
}
