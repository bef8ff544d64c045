package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"estufa-bridge/internal/broker"
	"estufa-bridge/internal/probe"
)

func main() {
	host := flag.String("host", "localhost", "broker host")
	port := flag.Int("port", 1883, "broker port")
	clientID := flag.String("client-id", "estufa-probe", "MQTT client id (must be unique per broker)")
	topic := flag.String("topic", "esp32/test", "test topic")
	count := flag.Int("count", 10, "messages to publish")
	interval := flag.Duration("interval", time.Second, "delay between publishes")
	linger := flag.Duration("linger", 2*time.Second, "time to keep listening after the last publish")
	payloads := flag.String("payloads", strings.Join(probe.DefaultPayloads, ","), "comma separated payloads, published in turn")
	ca := flag.String("ca", "", "root CA file")
	cert := flag.String("cert", "", "client certificate file")
	key := flag.String("key", "", "client private key file")
	asJSON := flag.Bool("json", false, `publish {"message","timestamp"} JSON payloads`)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	brokerCfg := broker.Config{
		Host:       *host,
		Port:       *port,
		ClientID:   *clientID,
		CACertFile: *ca,
		CertFile:   *cert,
		KeyFile:    *key,
		KeepAlive:  60 * time.Second,
	}
	if err := brokerCfg.ValidateTLS(); err != nil {
		slog.Error("Pass -ca, -cert and -key together, or none of them for plain TCP", "error", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := probe.Run(ctx, probe.Config{
		Broker:   brokerCfg,
		Topic:    *topic,
		QoS:      1,
		Count:    *count,
		Interval: *interval,
		Payloads: strings.Split(*payloads, ","),
		JSON:     *asJSON,
		Linger:   *linger,
	})
	report.Print(os.Stdout)
	if err != nil {
		slog.Error("Probe failed", "error", err)
		os.Exit(1)
	}
}
