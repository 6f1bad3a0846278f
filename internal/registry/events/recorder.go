package events

import (
	"context"
	"log/slog"
	"sync"
)

// Recorder keeps published events in memory, in publish order. Used by tests
// and as the default sink when no broker is configured.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event{}, r.events...)
}

// LogSink writes events to the structured log. Wraps another publisher so a
// deployment can both log and forward.
type LogSink struct {
	logger *slog.Logger
	next   interface {
		Publish(ctx context.Context, event Event) error
	}
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// WithNext chains another publisher after the log write.
func (s *LogSink) WithNext(next interface {
	Publish(ctx context.Context, event Event) error
}) *LogSink {
	s.next = next
	return s
}

func (s *LogSink) Publish(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "registry event",
		"kind", string(event.Kind),
		"token_id", event.TokenID.String(),
		"event_id", event.ID,
	)
	if s.next != nil {
		return s.next.Publish(ctx, event)
	}
	return nil
}
