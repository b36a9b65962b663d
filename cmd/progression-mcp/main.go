package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/EntireTwix/Progression/internal/config"
	"github.com/EntireTwix/Progression/internal/mcp"
	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/storage"
	"github.com/EntireTwix/Progression/internal/weightstore"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("progression-mcp", Version)
		return
	}

	// stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.LogLevel()
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	schedule, err := plan.ParseSchedule(cfg.Warmup.Schedule)
	if err != nil {
		log.Error("invalid warm-up schedule", "error", err)
		os.Exit(1)
	}
	deps := mcp.Deps{Warmup: plan.WarmupOptions{Schedule: schedule, MaxFraction: cfg.Warmup.MaxFraction}}

	if cfg.Weights.Store == "sqlite" {
		store, err := weightstore.OpenSQLite(cfg.Weights.StateDir)
		if err != nil {
			log.Error("failed to open weight store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		deps.Store = store
	} else {
		deps.Store = weightstore.NewFileStore(cfg.Weights.File)
	}

	ctx := context.Background()
	if cfg.Database.Enabled() {
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		deps.Performances = db
		log.Info("database connected")
	}

	s := mcp.New(deps, Version, log)
	log.Info("MCP server starting on stdio", "version", Version)

	if err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, cfg.Database.UserID)
	})); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
