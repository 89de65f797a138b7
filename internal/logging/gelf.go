package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/Graylog2/go-gelf/gelf"
)

// GELF severity values follow syslog numbering.
const (
	gelfLevelError   int32 = 3
	gelfLevelWarning int32 = 4
	gelfLevelInfo    int32 = 6
	gelfLevelDebug   int32 = 7
)

// GelfSender is the subset of gelf.Writer the handler needs.
type GelfSender interface {
	WriteMessage(m *gelf.Message) error
}

// NewGelfWriter connects a GELF UDP writer to the given address.
func NewGelfWriter(address string) (*gelf.Writer, error) {
	return gelf.NewWriter(address)
}

// GelfHandler is a slog.Handler that ships records to Graylog.
type GelfHandler struct {
	sender GelfSender
	level  slog.Level
	host   string
	attrs  []slog.Attr
	group  string
}

// NewGelfHandler creates a handler shipping records at or above level.
func NewGelfHandler(sender GelfSender, level slog.Level) *GelfHandler {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &GelfHandler{sender: sender, level: level, host: host}
}

// Enabled reports whether the handler ships records at the given level.
func (h *GelfHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle converts the record to a GELF message and sends it.
func (h *GelfHandler) Handle(_ context.Context, r slog.Record) error {
	extra := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		extra[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		extra[h.extraKey(a.Key)] = a.Value.Any()
		return true
	})

	return h.sender.WriteMessage(&gelf.Message{
		Version:  "1.1",
		Host:     h.host,
		Short:    r.Message,
		TimeUnix: float64(r.Time.UnixNano()) / 1e9,
		Level:    gelfLevel(r.Level),
		Extra:    extra,
	})
}

// WithAttrs returns a new GelfHandler with the given attributes added.
// Keys are qualified against the group active at the time of the call.
func (h *GelfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	qualified := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	qualified = append(qualified, h.attrs...)
	for _, a := range attrs {
		qualified = append(qualified, slog.Attr{Key: h.extraKey(a.Key), Value: a.Value})
	}
	clone.attrs = qualified
	return &clone
}

// WithGroup returns a new GelfHandler prefixing attribute keys with name.
func (h *GelfHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "."
	}
	clone.group += name
	return &clone
}

// extraKey builds a GELF additional-field key. Additional fields carry a
// leading underscore.
func (h *GelfHandler) extraKey(key string) string {
	if h.group != "" {
		return "_" + h.group + "." + key
	}
	return "_" + key
}

func gelfLevel(level slog.Level) int32 {
	switch {
	case level >= slog.LevelError:
		return gelfLevelError
	case level >= slog.LevelWarn:
		return gelfLevelWarning
	case level >= slog.LevelInfo:
		return gelfLevelInfo
	default:
		return gelfLevelDebug
	}
}
