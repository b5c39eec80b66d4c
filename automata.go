package automata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Engine is the high-level entry point for the automata library.
// It ties a machine source, the description parser and the simulation runtime together.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.MachineLoader
	parser      *compiler.Parser
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	kind        domain.Kind
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom MachineLoader, bypassing the default directory loader.
func WithLoader(l ports.MachineLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxSteps bounds every run to n steps. n <= 0 removes the bound.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// WithTapePadding sets how many blank cells follow a Turing tape input.
func WithTapePadding(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithTapePadding(n))
	}
}

// WithKind forces the kind of every loaded machine, overriding declarations and inference.
func WithKind(kind domain.Kind) Option {
	return func(e *Engine) {
		e.kind = kind
	}
}

// New initializes an Engine.
// By default machines are read from the directory dir. If WithLoader is provided,
// dir may be empty and is only used as a descriptive label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{parser: compiler.NewParser()}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.kind != "" && !eng.kind.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, eng.kind)
	}

	if eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		loader, err := file.New(dir)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = filepath.Base(loader.Root())
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("source", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(runtimeOpts...)

	return eng, nil
}

// ListMachines returns the names of every machine the loader knows.
func (e *Engine) ListMachines(ctx context.Context) ([]string, error) {
	return e.loader.ListMachines(ctx)
}

// LoadMachine reads and parses a named machine. The table is not validated yet.
func (e *Engine) LoadMachine(ctx context.Context, name string) (*domain.Table, error) {
	doc, err := e.loader.GetMachine(ctx, name)
	if err != nil {
		return nil, err
	}
	filename := doc.Filename
	if filename == "" {
		filename = name
	}
	desc, err := e.parser.ParseFile(filename, doc.Data)
	if err != nil {
		return nil, fmt.Errorf("parse machine %s: %w", name, err)
	}
	desc.Name = name
	return e.Compile(desc), nil
}

// Parse builds a table from raw bytes. filename is optional and only used for
// format and kind hints.
func (e *Engine) Parse(data []byte, filename string) (*domain.Table, error) {
	var (
		desc *domain.Description
		err  error
	)
	if filename != "" {
		desc, err = e.parser.ParseFile(filename, data)
	} else {
		desc, err = e.parser.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	return e.Compile(desc), nil
}

// Compile builds the immutable table of a description, applying WithKind.
func (e *Engine) Compile(desc *domain.Description) *domain.Table {
	if e.kind != "" {
		clone, err := desc.Clone()
		if err == nil {
			clone.Kind = e.kind
			desc = clone
		}
	}
	return domain.NewTable(desc)
}

// Validate runs every structural check against table.
func (e *Engine) Validate(ctx context.Context, table *domain.Table) error {
	return e.runtime.Validate(ctx, table)
}

// Run validates table and input, then simulates the machine.
func (e *Engine) Run(ctx context.Context, table *domain.Table, input []string) (*domain.Result, error) {
	return e.runtime.Run(ctx, table, input)
}

// Simulate loads a named machine and runs it against input.
func (e *Engine) Simulate(ctx context.Context, name string, input []string) (*domain.Result, error) {
	table, err := e.LoadMachine(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, table, input)
}

// Loader returns the underlying MachineLoader used by the engine.
func (e *Engine) Loader() ports.MachineLoader {
	return e.loader
}

// MaxSteps returns the step budget applied to runs (<= 0 means unbounded).
func (e *Engine) MaxSteps() int {
	return e.runtime.MaxSteps()
}

var _ ports.Simulator = (*Engine)(nil)
