package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/config"
	"github.com/five82/roost/internal/ops"
	"github.com/five82/roost/internal/prefs"
	"github.com/five82/roost/internal/state"
	"github.com/five82/roost/internal/token"
	"github.com/five82/roost/internal/ui"
)

// Options configure the roost application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roost/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the roost TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unavailable, using defaults", "err", err)
	}

	tokens, err := token.Open(cfg.TokenPath)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}

	client, err := api.NewClient(cfg.BaseURL, cfg.Timeout, tokens)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.New()
	operations := ops.New(client, store, tokens, logger)
	operations.ChangeCity(startCity(cfg, userPrefs))

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.Info("roost starting",
		"base_url", cfg.BaseURL,
		"city", store.State().Offers.City,
		"poll", interval.String(),
	)

	// Resolve the session before the first render so the header is accurate.
	operations.CheckAuth(ctx)

	StartPoller(ctx, operations, interval, logger)

	return ui.Run(ui.Options{
		Context:   ctx,
		Ops:       operations,
		Store:     store,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath,
	})
}

// startCity prefers the last city the user picked over the configured default.
func startCity(cfg config.Config, p prefs.Prefs) string {
	if p.City != "" {
		return p.City
	}
	return cfg.DefaultCity
}
