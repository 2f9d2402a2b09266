package palette

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"palettegen/pkg/bus"
	providertypes "palettegen/pkg/provider/types"
)

// Completer sends one prompt to a text-generation service.
type Completer interface {
	Complete(ctx context.Context, model string, prompt string) (providertypes.PromptResult, error)
}

// Result is the outcome of a request whose reply was received.
type Result struct {
	Theme    string
	Palette  Palette
	Fallback bool
	Reply    string
	Metadata providertypes.PromptMetadata
	Duration time.Duration
}

// Requester builds the prompt, performs exactly one call and parses the reply.
type Requester struct {
	client Completer
	model  string
	count  int
	events *bus.Bus
	log    *slog.Logger

	requestCounter atomic.Uint64
}

// NewRequester validates its inputs. events may be nil.
func NewRequester(client Completer, model string, count int, events *bus.Bus, log *slog.Logger) (*Requester, error) {
	if client == nil {
		return nil, errors.New("provider client is required")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("color count must be positive, got %d", count)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Requester{
		client: client,
		model:  model,
		count:  count,
		events: events,
		log:    log.With("component", "palette.requester"),
	}, nil
}

// Count returns the number of colors requested per call.
func (r *Requester) Count() int {
	return r.count
}

// Model returns the model identifier sent with each request.
func (r *Requester) Model() string {
	return r.model
}

// Generate asks for a palette matching theme. Transport, status and decoding
// failures are returned as errors and logged; a reply without colors yields
// the fallback palette with Result.Fallback set.
func (r *Requester) Generate(ctx context.Context, theme string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := strconv.FormatUint(r.requestCounter.Add(1), 10)
	log := r.log.With("request_id", requestID)
	startedAt := time.Now()

	r.events.PublishEvent(ctx, bus.Event{
		Type:      bus.EventPaletteRequested,
		RequestID: requestID,
		Model:     r.model,
		Payload: map[string]string{
			"theme_length": strconv.Itoa(len(theme)),
			"color_count":  strconv.Itoa(r.count),
		},
	})
	log.Debug("Palette requested", "theme_length", len(theme), "color_count", r.count, "model", r.model)

	reply, err := r.client.Complete(ctx, r.model, BuildPrompt(theme, r.count))
	duration := time.Since(startedAt)
	if err != nil {
		log.Error("Palette request failed", "duration_ms", duration.Milliseconds(), "error", err)
		// Publish on a fresh context so cancellation does not swallow the failure event.
		r.events.PublishEvent(context.Background(), bus.Event{
			Type:      bus.EventPaletteFailed,
			RequestID: requestID,
			Model:     r.model,
			Error:     err.Error(),
			Payload:   map[string]string{"duration_ms": strconv.FormatInt(duration.Milliseconds(), 10)},
		})
		return Result{}, fmt.Errorf("request palette: %w", err)
	}

	colors, fallback := Parse(reply.Text)
	result := Result{
		Theme:    theme,
		Palette:  colors,
		Fallback: fallback,
		Reply:    reply.Text,
		Metadata: reply.Metadata,
		Duration: duration,
	}

	eventType := bus.EventPaletteGenerated
	if fallback {
		eventType = bus.EventPaletteFallback
		log.Warn("Reply contained no hex colors, using fallback palette", "duration_ms", duration.Milliseconds(), "response_length", len(reply.Text))
	} else {
		log.Info("Palette generated", "duration_ms", duration.Milliseconds(), "colors", len(colors))
	}

	r.events.PublishEvent(ctx, bus.Event{
		Type:      eventType,
		RequestID: requestID,
		Provider:  reply.Metadata.Provider,
		Model:     reply.Metadata.Model,
		Payload: map[string]string{
			"colors":      strconv.Itoa(len(colors)),
			"duration_ms": strconv.FormatInt(duration.Milliseconds(), 10),
		},
	})

	return result, nil
}
