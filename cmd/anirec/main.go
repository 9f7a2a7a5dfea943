package main

import (
	"fmt"
	"os"

	"github.com/animerec/anirec/internal/config"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/session"
	"github.com/animerec/anirec/internal/ui/tui"
	"github.com/animerec/anirec/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialise logger
	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up Anirec", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	sessionPath, err := session.DefaultPath()
	if err != nil {
		log.Error("Unable to determine session file location", "error", err)
		os.Exit(1)
	}
	store := session.NewStore(sessionPath)

	if err := tui.Run(cfg, store); err != nil {
		log.Error("Unhandled error while running TUI", "error", err)
		os.Exit(1)
	}

	log.Info("Anirec shutting down.  Goodbye!")
}
