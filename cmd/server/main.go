package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/backend"
	"docspot/internal/config"
	"docspot/internal/gateway"
	"docspot/internal/handler"
	"docspot/internal/logging"
	"docspot/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.RequireSecret(); err != nil {
		log.Fatal(err)
	}

	sim := backend.NewSimulated(backend.WithLatency(cfg.Latency), backend.WithLogger(log))
	h := handler.New(sim, cfg.Secret, cfg.TokenTTL, log)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RPS, cfg.Burst)
	defer rl.Close()
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log),
			middleware.RateLimit(rl),
			middleware.Auth(cfg.Secret),
		),
	)
	apiv1.RegisterBackendServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Infof("grpc on :%s", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Errorf("grpc: %v", err)
		}
	}()

	// json gateway -> forwards browser requests to grpc on localhost
	gw, err := gateway.New("localhost:"+cfg.GRPCPort, log)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}
	defer gw.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("http gateway on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	srv.GracefulStop()
}
