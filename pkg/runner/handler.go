package runner

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input shows prompt (when the mode has prompts) and reads one line of input.
	// It returns io.EOF when the source is exhausted.
	Input(ctx context.Context, prompt string) (string, error)

	// Output presents the result of one run.
	Output(ctx context.Context, res *domain.Result) error

	// SystemOutput presents a meta-message to the user, such as a rejected input line.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Simulator runs a machine over one input string.
type Simulator interface {
	Run(ctx context.Context, table *domain.Table, input []string) (*domain.Result, error)
}

// Prompt returns the console prompt for a machine kind.
func Prompt(kind domain.Kind) string {
	if kind == domain.KindTuring {
		return "Enter tape input (space-separated): "
	}
	return "Enter input symbols (space-separated): "
}
