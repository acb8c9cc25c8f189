package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oskarw/mellovote/internal/app"
	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/store"
)

var version = "dev"

// envDefault reads an environment variable with a fallback, so flags can
// default from a .env file
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	// .env is optional; flags below pick up its values as defaults
	_ = godotenv.Load()

	port := flag.Int("port", envDefaultInt("MELLOVOTE_PORT", 8001), "HTTP server port")
	statePath := flag.String("state", envDefault("MELLOVOTE_STATE", "session_data.json"), "Session snapshot file path")
	dbPath := flag.String("db", envDefault("MELLOVOTE_DB", ""), "SQLite snapshot database path (overrides -state)")
	logLevel := flag.String("loglevel", envDefault("MELLOVOTE_LOGLEVEL", "info"), "Log level (debug, info, warn, error)")
	purgeOnExit := flag.Bool("purge-on-exit", false, "Delete the session snapshot on graceful shutdown")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Mellovote - live party scoring server

Usage:
  mellovote [options]

Options:
  -port int        HTTP server port (default 8001)
  -state string    Session snapshot file path (default "session_data.json")
  -db string       SQLite snapshot database path; overrides -state
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -purge-on-exit   Delete the session snapshot on graceful shutdown
  -version         Show version and exit
  -help            Show this help message

Examples:
  mellovote                        # Run on port 8001 with session_data.json
  mellovote -port 8080             # Run on port 8080
  mellovote -db mellovote.db       # Snapshot to SQLite instead of a file
  mellovote -purge-on-exit         # Forget the session when stopped cleanly

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("mellovote %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	var (
		st  store.SnapshotStore
		err error
	)
	if *dbPath != "" {
		st, err = store.NewSQLiteStore(appLog, *dbPath)
		if err != nil {
			log.Fatal("Failed to open snapshot database:", err)
		}
	} else {
		st = store.NewFileStore(appLog, *statePath)
	}

	a := app.New(appLog, st)

	addr := fmt.Sprintf(":%d", *port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case sig := <-sigCh:
		appLog.Info("Shutting down", "signal", sig.String())
		if *purgeOnExit {
			if err := st.Purge(); err != nil {
				appLog.Warn("Could not purge session snapshot", "error", err)
			} else {
				appLog.Info("Session snapshot purged")
			}
		}
		if err := a.Close(); err != nil {
			appLog.Warn("Shutdown cleanup failed", "error", err)
		}
	}
}
