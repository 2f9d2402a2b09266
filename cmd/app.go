package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"palettegen/pkg/bus"
	"palettegen/pkg/config"
	"palettegen/pkg/logger"
	"palettegen/pkg/palette"
	"palettegen/pkg/provider"
)

const eventBufferSize = 16

// app holds the wiring shared by every command.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	client    provider.Client
	events    *bus.Bus
	requester *palette.Requester
	closeLog  func() error
}

// newApp installs the process logger and connects the configured provider.
// The caller must call close.
func newApp(cfg *config.Config) (*app, error) {
	appLogger, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	slog.SetDefault(appLogger)

	client, err := provider.New(cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("initialize provider: %w", err)
	}

	events := bus.New()
	requester, err := palette.NewRequester(client, cfg.Generator.Model, cfg.Generator.ColorCount, events, appLogger)
	if err != nil {
		events.Close()
		_ = closeLog()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       appLogger,
		client:    client,
		events:    events,
		requester: requester,
		closeLog:  closeLog,
	}, nil
}

// observe logs bus events at debug level until ctx is done. The returned
// channel is closed once the observer has drained.
func (a *app) observe(ctx context.Context) <-chan struct{} {
	stream, unsubscribe := a.events.SubscribeEvents(ctx, eventBufferSize)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer unsubscribe()
		logEvents(stream, a.log.With("component", "cmd.events"))
	}()

	return done
}

func (a *app) close() {
	a.events.Close()
	_ = a.closeLog()
}

func logEvents(stream <-chan bus.Event, log *slog.Logger) {
	for event := range stream {
		attrs := []any{"type", string(event.Type), "request_id", event.RequestID}
		if event.Provider != "" {
			attrs = append(attrs, "provider", event.Provider)
		}
		if event.Model != "" {
			attrs = append(attrs, "model", event.Model)
		}
		for key, value := range event.Payload {
			attrs = append(attrs, key, value)
		}
		if event.Error != "" {
			attrs = append(attrs, "error", event.Error)
		}
		log.Debug("Palette event", attrs...)
	}
}
