package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"blogwriter/config"
	"blogwriter/generator"
	"blogwriter/handler"
	"blogwriter/logging"
	"blogwriter/metrics"
	"blogwriter/storage"
)

func main() {
	if err := config.ParseArgs(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if config.CliArgs.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logrus.InfoLevel)
	}
	log := logging.GetLogger()

	cfg, err := config.LoadConfig(config.CliArgs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetFormat(cfg.LogFormat)

	// Clients are built once per process and shared by every invocation.
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	prom := metrics.NewProm("blogwriter", prometheus.NewRegistry())
	gen := generator.NewClient(
		generator.NewBedrockAPI(awsCfg, cfg.Region, cfg.ReadTimeout, cfg.MaxAttempts),
		cfg.ModelID,
		generator.WithObserver(prom),
	)
	store := storage.NewWriter(storage.NewS3API(awsCfg, cfg.StorageRegion), cfg.Bucket)
	h := handler.NewHandler(gen, store, cfg.KeyPrefix, prom)

	if !config.CliArgs.Serve {
		lambda.Start(h.Handle)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/", handler.NewHTTPHandler(h, 0))
	mux.Handle("/metrics", prom.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: mux,
	}

	log.Infof("Starting server on %s", cfg.ListenAddress)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
