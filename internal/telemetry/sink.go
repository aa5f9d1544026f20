package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CategoryHooks = "Hooks"

	ActionDeleteBranch      = "Delete branch"
	ActionDeleteBranchError = "Delete branch error"
)

// Sink receives fire-and-forget events. Implementations must not block.
type Sink interface {
	Emit(category, action string)
}

type Nop struct{}

func (Nop) Emit(string, string) {}

// Prometheus counts events in a counter vector labelled by category and action.
type Prometheus struct {
	events *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hook_events_total",
		Help: "Total number of webhook reconciliation events",
	}, []string{"category", "action"})
	reg.MustRegister(events)
	return &Prometheus{events: events}
}

func (p *Prometheus) Emit(category, action string) {
	p.events.WithLabelValues(category, action).Inc()
}

type Multi []Sink

func (m Multi) Emit(category, action string) {
	for _, s := range m {
		s.Emit(category, action)
	}
}

type Event struct {
	Category string
	Action   string
}

// Recorder keeps every emitted event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(category, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Category: category, Action: action})
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
