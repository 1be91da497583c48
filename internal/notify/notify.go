// Package notify delivers the transient user-facing messages the portal emits
// after operations complete.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single transient message.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Sink receives notifications. Implementations must be safe for concurrent
// use; delivery is fire-and-forget.
type Sink interface {
	Notify(n Notification)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) Notify(Notification) {}

// ZapSink writes notifications to a structured log.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a sink logging through l.
func NewZapSink(l *zap.Logger) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapSink{logger: l}
}

func (s *ZapSink) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("level", string(n.Level)),
		zap.Time("at", n.At),
	}
	switch n.Level {
	case LevelError:
		s.logger.Warn(n.Message, fields...)
	default:
		s.logger.Info(n.Message, fields...)
	}
}

// MemorySink retains notifications for inspection; used by tests and the demo
// scenario output.
type MemorySink struct {
	mu    sync.Mutex
	items []Notification
}

// NewMemorySink returns an empty retaining sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Notify(n Notification) {
	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()
}

// Notifications returns a copy of everything received so far.
func (s *MemorySink) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Reset discards retained notifications.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// TeeSink fans a notification out to multiple sinks.
type TeeSink []Sink

func (t TeeSink) Notify(n Notification) {
	for _, s := range t {
		s.Notify(n)
	}
}
