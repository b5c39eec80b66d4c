package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
)

// Session carries the streams a run reads from and writes to.
type Session struct {
	In  io.Reader
	Out io.Writer
	// Interactive enables the banner, colours and markdown rendering.
	Interactive bool
}

// StdSession binds the process streams, interactive when stdout is a terminal.
func StdSession() Session {
	return Session{In: os.Stdin, Out: os.Stdout, Interactive: tui.IsTerminal(os.Stdout)}
}

// LoadTable resolves the machine of a run from a file or from the engine's source.
func LoadTable(ctx context.Context, eng *automata.Engine, opts RunOptions) (*domain.Table, error) {
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", opts.File, err)
		}
		return eng.Parse(data, opts.File)
	}
	if opts.Machine == "" {
		return nil, fmt.Errorf("a machine name or --file is required")
	}
	return eng.LoadMachine(ctx, opts.Machine)
}

// RunSession validates the machine and then simulates it, either once with
// opts.Input or in a prompt loop until the input ends.
func RunSession(ctx context.Context, opts RunOptions, s Session) error {
	logger, err := NewLogger(opts.Options)
	if err != nil {
		return err
	}

	eng, closer, err := NewEngine(ctx, opts.Options, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	table, err := LoadTable(ctx, eng, opts)
	if err != nil {
		return err
	}
	if err := eng.Validate(ctx, table); err != nil {
		return fmt.Errorf("invalid %s machine %q: %w", table.Kind().Title(), table.Name(), err)
	}

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	var handler runner.IOHandler
	switch {
	case opts.JSON:
		handler = runner.NewJSONHandler(s.In, s.Out)
	case format == report.FormatMarkdown && s.Interactive:
		renderer := runner.ContentRenderer(tui.NewRenderer())
		handler = runner.NewTextHandler(s.In, s.Out, runner.WithTextHandlerRenderer(renderer))
	case format != report.FormatText:
		handler = &formatHandler{TextHandler: runner.NewTextHandler(s.In, s.Out), format: format}
	default:
		var textOpts []runner.TextHandlerOption
		if s.Interactive {
			textOpts = append(textOpts, runner.WithTextHandlerColor(tui.Verdict))
		}
		handler = runner.NewTextHandler(s.In, s.Out, textOpts...)
	}

	interactive := s.Interactive && !opts.JSON && !opts.HasInput && !opts.Quiet
	if interactive {
		tui.PrintBanner(s.Out, automata.Version)
		printSystemMessage(s.Out, "%s %q loaded (%d states). Type 'exit' or press Ctrl+D to quit.",
			table.Kind().Title(), table.Name(), table.NumStates())
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithSignals(!opts.HasInput),
	}
	if opts.HasInput {
		runnerOpts = append(runnerOpts, runner.WithInput(runner.Tokenize(opts.Input)))
	}

	err = runner.NewRunner(runnerOpts...).Run(ctx, eng, table)
	return handleExecutionError(err)
}

// formatHandler prints each result in a report format other than plain text.
type formatHandler struct {
	*runner.TextHandler
	format report.Format
}

func (h *formatHandler) Output(ctx context.Context, res *domain.Result) error {
	return report.Write(h.Writer, h.format, res)
}
