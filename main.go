// ultrachat - A terminal chat client for the Gemini API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/AzizLive1/ultrachat-tui/internal/analytics"
	"github.com/AzizLive1/ultrachat-tui/internal/chat"
	"github.com/AzizLive1/ultrachat-tui/internal/cli"
	"github.com/AzizLive1/ultrachat-tui/internal/config"
	"github.com/AzizLive1/ultrachat-tui/internal/gemini"
	"github.com/AzizLive1/ultrachat-tui/internal/session"
	"github.com/AzizLive1/ultrachat-tui/internal/store"
	"github.com/AzizLive1/ultrachat-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.Fatalf("%v", err)
	}

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		cli.Fatalf("load config: %v", err)
	}
	if args.Model != "" {
		cfg.Gemini.Model = args.Model
	}

	switch cmd {
	case cli.CmdConfig:
		if err := cli.RunConfig(cfg, args); err != nil {
			cli.Fatalf("%v", err)
		}

	case cli.CmdAsk:
		if err := cli.RunAsk(context.Background(), newClient(cfg), args); err != nil {
			cli.Fatalf("%v", err)
		}

	case cli.CmdChat:
		svc, err := buildServices(cfg)
		if err != nil {
			cli.Fatalf("%v", err)
		}
		if err := cli.RunChat(context.Background(), svc.controller, args); err != nil {
			cli.Fatalf("%v", err)
		}

	case cli.CmdDashboard:
		svc, err := buildServices(cfg)
		if err != nil {
			cli.Fatalf("%v", err)
		}
		if err := cli.RunDashboard(svc.analytics, args); err != nil {
			cli.Fatalf("%v", err)
		}

	case cli.CmdExport:
		svc, err := buildServices(cfg)
		if err != nil {
			cli.Fatalf("%v", err)
		}
		if err := cli.RunExport(cfg, svc.sessions, svc.controller, args); err != nil {
			cli.Fatalf("%v", err)
		}

	case cli.CmdTUI:
		runTUI(cfg)
	}
}

// services holds the wired storage and conversation stack.
type services struct {
	sessions   *session.Manager
	analytics  *analytics.Aggregator
	controller *chat.Controller
}

// buildServices wires the storage backend, session manager, analytics, and
// conversation engine from config.
func buildServices(cfg *config.Config) (*services, error) {
	longLived, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	// The transcript shares the backend so conversations survive restarts.
	sessions := session.NewManager(longLived, longLived)
	agg := analytics.NewAggregator(longLived)

	controller, err := chat.NewController(newClient(cfg), sessions, agg)
	if err != nil {
		return nil, fmt.Errorf("restore conversation: %w", err)
	}

	return &services{
		sessions:   sessions,
		analytics:  agg,
		controller: controller,
	}, nil
}

// openStore opens the configured storage backend.
func openStore(cfg *config.Config) (store.Store, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case "sqlite":
		return store.NewSQLiteStore(filepath.Join(dataDir, "ultrachat.db"))
	default:
		return store.NewFileStoreWithDir(dataDir)
	}
}

// newClient builds the Gemini client from config.
func newClient(cfg *config.Config) *gemini.Client {
	return gemini.NewClientWithConfig(&gemini.ClientConfig{
		APIKey:            cfg.Gemini.APIKey,
		BaseURL:           cfg.Gemini.BaseURL,
		Model:             cfg.Gemini.Model,
		Temperature:       cfg.Gemini.Temperature,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
}

// watchConfig hot-reloads config file edits while the TUI runs. A reload
// swaps the completion client, so model or key changes apply to the next
// send. Returns nil when watching cannot start; the TUI runs fine without it.
func watchConfig(controller *chat.Controller) *config.Watcher {
	path := os.Getenv("ULTRACHAT_CONFIG")
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return nil
		}
	}

	watcher, err := config.NewWatcher(path, func(updated *config.Config) {
		config.SetGlobal(updated)
		controller.SetCompleter(newClient(updated))
	})
	if err != nil {
		return nil
	}
	if err := watcher.Watch(); err != nil {
		watcher.Close()
		return nil
	}
	return watcher
}

// runTUI starts the full-screen interface.
func runTUI(cfg *config.Config) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		cli.Fatalf("stdout is not a terminal; try 'ultrachat ask' or 'ultrachat help'")
	}

	svc, err := buildServices(cfg)
	if err != nil {
		cli.Fatalf("%v", err)
	}

	if watcher := watchConfig(svc.controller); watcher != nil {
		defer watcher.Close()
	}

	app, err := ui.NewApp(cfg, svc.sessions, svc.analytics, svc.controller)
	if err != nil {
		cli.Fatalf("start: %v", err)
	}

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		cli.Fatalf("run: %v", err)
	}
}
