package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"estufa-bridge/internal/api"
	"estufa-bridge/internal/cache"
	"estufa-bridge/internal/classifier"
	"estufa-bridge/internal/config"
	"estufa-bridge/internal/db"
	"estufa-bridge/internal/kafka"
	"estufa-bridge/internal/listener"
	"estufa-bridge/internal/metrics"
	"estufa-bridge/internal/processors/persister"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("BRIDGE_CONFIG"), "path to a config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			slog.InfoContext(ctx, "Shutdown signal received", "signal", s.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.InfoContext(ctx, "Starting service...", "device_id", cfg.Device.ID, "topic", cfg.MQTT.Topic)
	if cfg.MQTT.Insecure() {
		slog.WarnContext(ctx, "Broker connection is plain text and unauthenticated", "host", cfg.MQTT.Host, "port", cfg.MQTT.Port)
	}

	store, err := db.Init(ctx, cfg.DB.Store())
	if err != nil {
		return err
	}
	defer store.Close()

	latest := cache.New()
	if err := latest.Hydrate(ctx, store); err != nil {
		slog.WarnContext(ctx, "Starting with an empty cache", "error", err)
	}
	latest.Dump()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	pcfg := persister.Config{
		Repository:   store,
		Devices:      classifier.StaticDevice(cfg.Device.ID),
		WriteTimeout: cfg.DB.WriteTimeout,
		Metrics:      m,
		Cache:        latest,
	}
	if cfg.Kafka.Enabled() {
		mirror := kafka.New(cfg.Kafka.Mirror())
		defer mirror.Close(ctx)
		pcfg.Mirror = mirror
		slog.InfoContext(ctx, "Kafka mirror enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	p := persister.New(pcfg)

	l, err := listener.New(listener.Config{
		Broker:        cfg.MQTT.Broker(),
		TopicFilter:   cfg.MQTT.Topic,
		QoS:           byte(cfg.MQTT.QoS),
		AutoReconnect: cfg.MQTT.AutoReconnect,
		Handler:       p,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: api.New(api.Config{
			DB:       store,
			Cache:    latest,
			Broker:   l,
			Gatherer: reg,
		}).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			cancel()
		}
	}()

	var runErr error
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		runErr = l.Run(ctx)
	}()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("Service stopped")
	return runErr
}
