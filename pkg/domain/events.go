package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart         EventType = "run_start"
	EventStep             EventType = "step"
	EventRunEnd           EventType = "run_end"
	EventValidationFailed EventType = "validation_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
	Kind      Kind      `json:"kind"`
}

// RunEvent marks the beginning or the end of a run. Result is only set on run end.
type RunEvent struct {
	EventBase
	InputLength int           `json:"input_length"`
	Result      *Result       `json:"result,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// StepEvent carries one trace entry as it is produced.
type StepEvent struct {
	EventBase
	Step Step `json:"step"`
}

// ValidationEvent reports a table or input refused before simulation.
type ValidationEvent struct {
	EventBase
	Check string `json:"check"`
	Err   error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart         func(context.Context, *RunEvent)
	OnStep             func(context.Context, *StepEvent)
	OnRunEnd           func(context.Context, *RunEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:         chain(h.OnRunStart, other.OnRunStart),
		OnStep:             chain(h.OnStep, other.OnStep),
		OnRunEnd:           chain(h.OnRunEnd, other.OnRunEnd),
		OnValidationFailed: chain(h.OnValidationFailed, other.OnValidationFailed),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
