package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"

	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/kpaschen/tspaa/receiver"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	listenAddress  string
	metricsAddress string
}

func main() {
	var metricsAddr string
	var listenAddr string
	var configFile string
	var numIntervals int
	var strict bool
	var normalize bool
	var parallelism int
	var windowSize int
	var maxRows int
	var logLevel string

	flag.StringVar(&metricsAddr, "metrics-address", ":9203", "The address the metrics endpoint binds to.")
	flag.StringVar(&listenAddr, "listen-address", ":9201", "The address that the transform and remote-write endpoints bind to.")
	flag.StringVar(&configFile, "config", "", "Optional json file with settings. Flags that are set explicitly take precedence.")
	flag.IntVar(&numIntervals, "intervals", settings.DEFAULT_NUM_INTERVALS, "number of intervals to reduce sequences to")
	flag.BoolVar(&strict, "strict", false, "reject sequences shorter than the number of intervals")
	flag.BoolVar(&normalize, "normalize", false, "z-normalize sequences before reducing them")
	flag.IntVar(&parallelism, "parallelism", 0, "how many dimensions to reduce at once. 0 means one per cpu.")
	flag.IntVar(&windowSize, "windowSize", settings.DEFAULT_WINDOW_SIZE, "number of samples to keep per remote-write timeseries")
	flag.IntVar(&maxRows, "maxRows", 0, "The maximum number of timeseries to keep. 0 means no limit.")
	flag.StringVar(&logLevel, "logLevel", "info", "log level")
	flag.Parse()

	if level, err := zerolog.ParseLevel(logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	cfg := &config{
		listenAddress:  listenAddr,
		metricsAddress: metricsAddr,
	}

	paaConfig := settings.PAASettings{
		NumIntervals: numIntervals,
		Strict:       strict,
		Normalize:    normalize,
		Parallelism:  parallelism,
		WindowSize:   windowSize,
		MaxRows:      maxRows,
	}
	if configFile != "" {
		fromFile, err := settings.LoadFile(configFile, paaConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load settings")
		}
		// Explicit flags win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "intervals":
				fromFile.NumIntervals = numIntervals
			case "strict":
				fromFile.Strict = strict
			case "normalize":
				fromFile.Normalize = normalize
			case "parallelism":
				fromFile.Parallelism = parallelism
			case "windowSize":
				fromFile.WindowSize = windowSize
			case "maxRows":
				fromFile.MaxRows = maxRows
			}
		})
		paaConfig = fromFile
	}

	service, err := receiver.NewPAAService(paaConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(cfg.metricsAddress, nil); err != nil {
			log.Error().Err(err).Msg("metrics endpoint stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	server := &http.Server{
		Addr:    cfg.listenAddress,
		Handler: service.Router(),
	}
	go func() {
		log.Info().Str("address", cfg.listenAddress).Int("numIntervals", paaConfig.NumIntervals).
			Msg("paa service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("paa service failed")
		}
	}()

	<-stop
	log.Info().Msg("paa service shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
}
