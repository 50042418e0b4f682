package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	locationservice "github.com/earthly-glitch/fraudX-location-prototype/cmd/location-service"
	simulatorservice "github.com/earthly-glitch/fraudX-location-prototype/cmd/simulator-service"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/auth"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/bus"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/config"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/db"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/mq"
	ws "github.com/earthly-glitch/fraudX-location-prototype/internal/common/websocket"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/cache"
	locationrmq "github.com/earthly-glitch/fraudX-location-prototype/internal/location/rmq"
)

func main() {
	logger.SetServiceName("fraudx-location")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	cfg.Print()
	auth.SetSecret(cfg.JWT.Secret)

	pg, err := db.NewPostgres(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pg.Close()

	if err := pg.RunMigrations("migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	recency, err := cache.NewRedisRecencyCache(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer recency.Close()

	rmq, err := mq.NewRabbitMQ(
		cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("rabbitmq error: %v", err)
	}
	defer rmq.Close()

	publisher, err := locationrmq.NewPublisher(rmq.Chan)
	if err != nil {
		log.Fatalf("rabbitmq publisher error: %v", err)
	}

	hub := ws.NewHub()
	events := bus.NewFanoutBus(hub, publisher)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token", auth.GetTokenHandler())
	mux.HandleFunc("GET /ws", ws.ViewerHandler(hub))

	sink := locationservice.Run(pg.Pool, recency, events, mux)
	registry := simulatorservice.Run(cfg, sink, events, mux)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: mux,
	}

	go func() {
		logger.Info("service_started", fmt.Sprintf("FraudX server running on port %d", cfg.HTTP.Port), "init-request", "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutting down gracefully...")

	stopped := registry.StopAll()
	log.Printf("⏹️ Stopped %d simulations", stopped)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	hub.CloseAll()
	logger.Info("service_stopped", "FraudX server closed", "", "")
}
