package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"estufa-bridge/internal/certcheck"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iot"
)

func main() {
	certID := flag.String("cert", "", "IoT certificate id")
	region := flag.String("region", "us-east-1", "AWS region")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *certID == "" && flag.NArg() > 0 {
		*certID = flag.Arg(0)
	}
	if *certID == "" {
		slog.Error("A certificate id is required (-cert)")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(*region))
	if err != nil {
		slog.Error("Error loading AWS configuration", "error", err)
		os.Exit(1)
	}

	report, err := certcheck.Check(ctx, iot.NewFromConfig(awsCfg), *certID)
	if err != nil {
		slog.Error("Error checking certificate", "certificate_id", *certID, "error", err)
		os.Exit(1)
	}

	report.Print(os.Stdout)
	if !report.Healthy() {
		os.Exit(1)
	}
}
