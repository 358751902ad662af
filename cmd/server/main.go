package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slidery/slidery/internal/api"
	"github.com/slidery/slidery/internal/api/middleware"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/db"
	"github.com/slidery/slidery/internal/game"
	"github.com/slidery/slidery/internal/logging"
	"github.com/slidery/slidery/internal/puzzle"
	"github.com/slidery/slidery/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "verify":
		if err := runVerify(); err != nil {
			fmt.Fprintf(os.Stderr, "verify error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("slidery %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: slidery <command>

Commands:
  serve     Start the HTTP server
  verify    Replay a key sequence against a seeded board
  version   Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting slidery",
		"version", version,
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"boardShape", fmt.Sprintf("%dx%d", cfg.BoardWidth, cfg.BoardHeight),
		"logLevel", cfg.LogLevel,
	)

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	slog.Info("database opened", "path", cfg.DBPath)

	if err := database.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations applied")

	// Event hub and session registry run until shutdown.
	hub := game.NewEventHub()
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	go hub.Run(runCtx)

	registry := game.NewRegistry(database, hub, cfg.MaxSessions,
		time.Duration(cfg.SessionTTLMin)*time.Minute)
	go registry.Run(runCtx)

	sessions, err := middleware.NewSessionStore(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to setup admin sessions: %w", err)
	}

	// Strip the "static/" prefix from the embed FS.
	staticFS, err := fs.Sub(web.StaticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to access embedded static files: %w", err)
	}

	slog.Info("embedded frontend loaded")

	api.Version = version
	router := api.NewRouter(api.Dependencies{
		DB:       database,
		Registry: registry,
		Hub:      hub,
		Sessions: sessions,
		Config:   cfg,
		StaticFS: staticFS,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    config.ServerReadTimeout,
		WriteTimeout:   config.ServerWriteTimeout,
		IdleTimeout:    config.ServerIdleTimeout,
		MaxHeaderBytes: config.ServerMaxHeaderBytes,
	}

	slog.Info("server configured",
		"readTimeout", config.ServerReadTimeout,
		"writeTimeout", config.ServerWriteTimeout,
		"idleTimeout", config.ServerIdleTimeout,
		"maxHeaderBytes", config.ServerMaxHeaderBytes,
	)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown",
		"timeout", config.ShutdownTimeout,
	)

	// Stop the registry sweeper and drain SSE clients first.
	runCancel()
	slog.Info("registry and event hub contexts cancelled")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// runVerify replays a recorded key sequence against the board a seed
// generates, reporting whether it reaches the solved state.
func runVerify() error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	seedStr := fs.String("seed", "", "Board seed, base64url or 24-word phrase (required)")
	width := fs.Int("width", 4, "Board width")
	height := fs.Int("height", 4, "Board height")
	moves := fs.String("moves", "", "Key sequence to replay (required)")
	fs.Parse(os.Args[2:])

	if *seedStr == "" || *moves == "" {
		return fmt.Errorf("-seed and -moves are required")
	}

	seed, err := puzzle.ParseSeed(*seedStr)
	if err != nil {
		// A seed that fails to parse as base64 may be a mnemonic phrase.
		seed, err = puzzle.ParsePhrase(*seedStr)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
	}

	result, err := game.Verify(seed, *width, *height, *moves)
	if err != nil {
		return err
	}

	fmt.Printf("seed:            %s\n", seed)
	fmt.Printf("shape:           %dx%d\n", *width, *height)
	fmt.Printf("keys replayed:   %d\n", result.TotalKeys)
	fmt.Printf("effective moves: %d\n", result.EffectiveMoves)
	fmt.Printf("solved:          %v\n", result.Solved)

	if !result.Solved {
		os.Exit(1)
	}
	return nil
}
