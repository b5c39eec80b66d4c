package runner

import (
	"log/slog"
)

// DefaultInputBufferSize is the default number of lines to buffer for input handlers.
const DefaultInputBufferSize = 64

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithInput makes the runner simulate input once instead of prompting.
func WithInput(symbols []string) Option {
	return func(r *Runner) {
		r.once = true
		r.input = symbols
	}
}

// WithSignals makes SIGINT/SIGTERM cancel the run in progress. A signal
// received while waiting for input ends the loop.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.signals = enabled
	}
}
