package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"hunterprice/internal/activity"
	"hunterprice/internal/catalog"
	"hunterprice/internal/domain"
	"hunterprice/internal/eventbus"
	"hunterprice/internal/log"
	"hunterprice/internal/ui"
)

// runTUI starts the interactive storefront
func runTUI(ctx context.Context, c *cli.Command) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()
	logger := log.For("main")

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	client := e.client
	tracker := activity.NewTracker(bus, func(ctx context.Context, user *domain.CurrentUser, productID string) error {
		return client.WithUser(user).LogProductView(ctx, productID)
	}, e.cfg.HTTP.Timeout.Duration)
	defer tracker.Close()

	bus.Publish(eventbus.SessionChangedEvent{User: e.user})

	// Create UI model
	model := ui.NewModel(ui.Options{
		Context:     ctx,
		Config:      e.cfg,
		Bus:         bus,
		Catalog:     client,
		Suggestions: catalog.NewCachedSuggestions(client, e.cfg.Suggestions.CacheSize, e.cfg.Suggestions.CacheTTL.Duration),
		User:        e.user,
		Activity:    tracker,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if e.cfg.UI.MouseSupport {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		// Interrupted by a signal is a normal way out
		if ctx.Err() != nil {
			logger.Info().Msg("interrupted")
			return nil
		}
		return fmt.Errorf("running program: %w", err)
	}
	logger.Info().Msg("exited")
	return nil
}
