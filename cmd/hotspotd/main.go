// hotspotd serves the hotspot engine to a DCC host's script client over
// JSON-RPC: stdio when launched by the host, TCP with -listen.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"uv-hotspotter/internal/bridge"
	"uv-hotspotter/internal/config"
	"uv-hotspotter/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	listen := flag.String("listen", "", "TCP listen address (default: serve stdio)")
	tolerance := flag.Float64("tolerance", 0, "Aspect tolerance in log-ratio space (default: 0.05)")
	uniform := flag.Bool("uniform", false, "Uniform scale instead of stretch-to-fit")
	logFile := flag.String("logfile", "", "Rotating log file path")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Tolerance: *tolerance, UniformFit: *uniform})
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	logger.Init(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: "text",
		Output: os.Stderr,
		File:   cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *listen != "" {
		err = bridge.ServeTCP(ctx, *listen, cfg.Engine(), cfg.PreviewSize)
	} else {
		err = bridge.NewServer(cfg.Engine(), cfg.PreviewSize).ServeStdio(ctx)
	}
	if err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
