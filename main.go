package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	var (
		configPath  = flag.String("config", "config.json", "path to a JSON configuration file")
		strict      = flag.Bool("strict", false, "reject unknown characters in the grid file")
		workers     = flag.Int("workers", 0, "goroutines per generation (0 keeps the configured value)")
		generations = flag.Int("generations", -1, "stop after this many generations (0 runs forever, -1 keeps the configured value)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [grid-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := utils.NewLogger(os.Stderr)

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		logger.Warnf("Using default configuration: %v", err)
		config = utils.DefaultConfig()
	}
	if err := config.ApplyEnv(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if *strict {
		config.StrictInput = true
	}
	if *workers > 0 {
		config.Workers = *workers
	}
	if *generations >= 0 {
		config.MaxGenerations = *generations
	}
	if err := config.Validate(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	if err := play(config, flag.Arg(0), logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// play runs the game until it stops on its own or a signal arrives
func play(config utils.Config, path string, logger *utils.Logger) error {
	g, err := initializeGame(config, path, os.Stdout, logger)
	if err != nil {
		return err
	}
	g.displayGameInfo()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	if err := g.run(ctx, ticker.C); err != nil {
		return err
	}

	logger.Infof("Final stats: %d generations in %.1f seconds, %.1f avg population",
		g.generation, time.Since(g.stats.StartTime).Seconds(), g.stats.AveragePopulation)
	return nil
}
