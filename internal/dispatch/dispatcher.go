// Package dispatch routes map-engine events (clicks, double-clicks, style
// reloads) to registered handlers. Handlers can be buffered to decouple
// native callback threads from handler work; queue depth and drop counts
// are exposed as OTel metrics.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skygrid/planner/internal/model"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Well-known event names emitted by the map render bridge.
const (
	EventClick       = "map.click"
	EventDoubleClick = "map.dblclick"
	EventStyleReload = "map.style.reload"
)

// Event is one map-engine callback occurrence.
type Event struct {
	Name      string
	Position  model.Position // zero for non-positional events
	Timestamp time.Time
}

// HandlerFunc processes an event.
type HandlerFunc func(Event) error

// Logger is the pluggable logging interface used by handler wrappers.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	bufferSize int
	blocking   bool
	logged     bool
}

// Buffered makes the handler async with a queue of the given size.
func Buffered(size int) Option {
	return func(c *config) { c.bufferSize = size }
}

// Blocking makes a buffered handler block when the queue is full instead of
// dropping.
func Blocking() Option {
	return func(c *config) { c.blocking = true }
}

// Logged adds debug logging around the handler.
func Logged() Option {
	return func(c *config) { c.logged = true }
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger

	queueSize metric.Int64ObservableGauge
	processed metric.Int64Counter
	dropped   metric.Int64Counter

	mu      sync.RWMutex
	buffers map[string]chan Event
}

// New creates a Dispatcher using the global OTel meter (no-op when OTel is
// not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		buffers:  make(map[string]chan Event),
		logger:   logger,
	}

	m := meter()
	var err error

	d.queueSize, err = m.Int64ObservableGauge(
		"dispatch.queue.size",
		metric.WithDescription("Current number of events in queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue size gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			d.mu.RLock()
			defer d.mu.RUnlock()
			for name, buf := range d.buffers {
				o.ObserveInt64(d.queueSize, int64(len(buf)),
					metric.WithAttributes(attribute.String("event", name)))
			}
			return nil
		},
		d.queueSize,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue callback: %w", err)
	}

	d.processed, err = m.Int64Counter(
		"dispatch.events.processed",
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.dropped, err = m.Int64Counter(
		"dispatch.events.dropped",
		metric.WithDescription("Total events dropped due to full queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given event name.
func (d *Dispatcher) Register(name string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h
	if cfg.bufferSize > 0 {
		handler = d.withBuffer(name, cfg.bufferSize, cfg.blocking, handler)
	}
	if cfg.logged {
		handler = d.withLogging(name, handler)
	}
	d.handlers[name] = handler
}

// Dispatch routes an event to its registered handler. Events with no
// handler are a no-op; a click with no drawing active is normal, not an
// error.
func (d *Dispatcher) Dispatch(e Event) error {
	h, ok := d.handlers[e.Name]
	if !ok {
		return nil
	}
	err := h(e)
	if err == nil {
		d.processed.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("event", e.Name)))
	}
	return err
}

// HasHandler returns true if a handler is registered for the event name.
func (d *Dispatcher) HasHandler(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

func (d *Dispatcher) withBuffer(name string, size int, blocking bool, h HandlerFunc) HandlerFunc {
	buffer := make(chan Event, size)

	d.mu.Lock()
	d.buffers[name] = buffer
	d.mu.Unlock()

	attr := attribute.String("event", name)

	go func() {
		for e := range buffer {
			if err := h(e); err != nil && d.logger != nil {
				d.logger.Error("buffered event failed", "event", name, "error", err)
			}
		}
	}()

	if blocking {
		return func(e Event) error {
			buffer <- e
			return nil
		}
	}

	return func(e Event) error {
		select {
		case buffer <- e:
			return nil
		default:
			d.dropped.Add(context.Background(), 1, metric.WithAttributes(attr))
			return fmt.Errorf("queue full: %s", name)
		}
	}
}

func (d *Dispatcher) withLogging(name string, h HandlerFunc) HandlerFunc {
	return func(e Event) error {
		start := time.Now()
		d.logger.Debug("handling event", "event", name)

		err := h(e)

		if err != nil {
			d.logger.Error("event failed", "event", name, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "event", name, "duration", time.Since(start))
		}
		return err
	}
}
