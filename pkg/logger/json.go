package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Attribute keys lifted out of Fields into top-level Entry fields.
const (
	keyComponent = "component"
	keyRequestID = "request_id"
	keyError     = "error"
)

// Entry is the JSON line written by the json format. Component, request id
// and error are top-level so a palette request can be followed with a single
// field filter.
type Entry struct {
	Level     string         `json:"level"`
	Timestamp string         `json:"timestamp"`
	Component string         `json:"component,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Caller    string         `json:"caller,omitempty"`
}

// jsonHandler folds logger-bound attributes into a partial Entry once, in
// WithAttrs, and copies it per record.
type jsonHandler struct {
	level     slog.Level
	addSource bool
	prefix    string
	bound     Entry

	mu  *sync.Mutex
	out io.Writer
}

func newJSONHandler(out io.Writer, level slog.Level, addSource bool) *jsonHandler {
	return &jsonHandler{level: level, addSource: addSource, out: out, mu: &sync.Mutex{}}
}

func (h *jsonHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *jsonHandler) Handle(_ context.Context, record slog.Record) error {
	entry := h.bound
	entry.Fields = maps.Clone(h.bound.Fields)
	entry.Level = strings.ToLower(record.Level.String())
	entry.Message = record.Message

	at := record.Time
	if at.IsZero() {
		at = time.Now()
	}
	entry.Timestamp = at.UTC().Format(time.RFC3339Nano)

	record.Attrs(func(attr slog.Attr) bool {
		fold(&entry, h.prefix, attr)
		return true
	})

	if h.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		if frame.File != "" {
			entry.Caller = fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(line, '\n'))
	return err
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound.Fields = maps.Clone(h.bound.Fields)
	for _, attr := range attrs {
		fold(&next.bound, h.prefix, attr)
	}

	return &next
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// fold places attr on entry: well-known top-level keys are lifted, everything
// else lands in Fields under its group-qualified key.
func fold(entry *Entry, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if prefix == "" {
		switch attr.Key {
		case keyComponent:
			if attr.Value.Kind() == slog.KindString {
				entry.Component = attr.Value.String()
				return
			}
		case keyRequestID:
			entry.RequestID = attr.Value.String()
			return
		case keyError:
			entry.Error = attr.Value.String()
			return
		}
	}

	if entry.Fields == nil {
		entry.Fields = make(map[string]any)
	}
	entry.Fields[prefix+attr.Key] = plain(attr.Value)
}

// plain converts a resolved slog.Value into a JSON-friendly Go value.
func plain(value slog.Value) any {
	switch value.Kind() {
	case slog.KindString:
		return value.String()
	case slog.KindInt64:
		return value.Int64()
	case slog.KindUint64:
		return value.Uint64()
	case slog.KindFloat64:
		return value.Float64()
	case slog.KindBool:
		return value.Bool()
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindTime:
		return value.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindGroup:
		group := value.Group()
		out := make(map[string]any, len(group))
		for _, item := range group {
			out[item.Key] = plain(item.Value.Resolve())
		}
		return out
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return err.Error()
		}
		return value.Any()
	default:
		return value.String()
	}
}
