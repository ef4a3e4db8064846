// Command nexus-tty plays Nexus Strike in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"nexusstrike/internal/config"
	"nexusstrike/internal/observability"
	"nexusstrike/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "tuning file (YAML), defaults to $"+config.EnvPath)
	scores := flag.String("scores", store.DefaultFile, "high score file")
	logPath := flag.String("log", "", "append logs to this file; the terminal is taken by the game")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := config.Load(config.PathFromEnv(*cfgPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexus-tty: %v\n", err)
		os.Exit(1)
	}

	logger := observability.Discard()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nexus-tty: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = observability.NewLoggerTo(f, "tty")
	}

	app, err := newApp(cfg, store.NewFile(*scores), logger, !*mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
	logger.Info("exit", slog.Int("best", app.best))
}
