package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Runner drives a machine with input read through an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on stdin/stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	once    bool
	input   []string
	signals bool
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads input lines and simulates table on each until the input ends.
// Lines with symbols outside the alphabet are reported and skipped; an invalid
// table stops the loop with the validation error.
func (r *Runner) Run(ctx context.Context, sim Simulator, table *domain.Table) error {
	handler := r.resolveHandler()

	if r.once {
		res, err := sim.Run(ctx, table, r.input)
		if err != nil {
			return err
		}
		return handler.Output(ctx, res)
	}

	var signals *SignalManager
	if r.signals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
	}

	prompt := Prompt(table.Kind())
	for {
		runCtx := ctx
		if signals != nil {
			runCtx = signals.Context()
		}

		line, err := handler.Input(runCtx, prompt)
		if err != nil {
			if signals != nil {
				signals.CheckRace()
			}
			if errors.Is(err, io.EOF) || runCtx.Err() != nil {
				r.Logger.Debug("runner stopped", "err", err)
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		if line == "exit" || line == "quit" {
			return nil
		}

		clean, err := SanitizeInput(line)
		if err != nil {
			if err := handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		res, err := sim.Run(runCtx, table, Tokenize(clean))
		var inputErr *domain.InputError
		switch {
		case errors.As(err, &inputErr):
			if err := handler.SystemOutput(ctx, fmt.Sprintf("Invalid input symbols: %v", inputErr)); err != nil {
				return err
			}
			continue
		case err != nil && signals != nil && runCtx.Err() != nil && ctx.Err() == nil:
			r.Logger.Debug("run interrupted", "err", err)
			signals.Reset()
			if err := handler.SystemOutput(ctx, "Run interrupted."); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		if err := handler.Output(ctx, res); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

// Tokenize splits an input line into symbols on any run of whitespace.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	if fields == nil {
		return []string{}
	}
	return fields
}
