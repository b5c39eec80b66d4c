package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

const (
	// DefaultMaxSteps bounds a run that would otherwise never end.
	DefaultMaxSteps = 100000
	// DefaultTapePadding is the number of blank cells appended to a Turing tape.
	DefaultTapePadding = 100
)

// errStepLimit is raised inside a machine when the budget is exhausted; Run turns it into a verdict.
var errStepLimit = errors.New("step limit exceeded")

// machine is the shape shared by the four engines.
type machine interface {
	simulate(r *run, input []string) error
}

var machines = map[domain.Kind]machine{
	domain.KindFinite:           finite{},
	domain.KindNondeterministic: nondeterministic{},
	domain.KindPushdown:         pushdown{},
	domain.KindTuring:           turing{},
}

// Engine validates transition tables and simulates them against input sequences.
// An Engine holds no per-run state and may be shared.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	maxSteps    int
	tapePadding int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Steps are logged at debug level.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxSteps sets the step budget. n <= 0 removes the bound.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithTapePadding sets how many blank cells follow the Turing input on the tape.
func WithTapePadding(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.tapePadding = n
		}
	}
}

// NewEngine creates an engine with the default budget and tape capacity.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:      logging.NewNop(),
		maxSteps:    DefaultMaxSteps,
		tapePadding: DefaultTapePadding,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxSteps returns the configured step budget (<= 0 means unbounded).
func (e *Engine) MaxSteps() int { return e.maxSteps }

// TapePadding returns the number of blank cells appended to Turing tapes.
func (e *Engine) TapePadding() int { return e.tapePadding }

// Validate runs the table checks and reports a failure to the hooks.
func (e *Engine) Validate(ctx context.Context, table *domain.Table) error {
	if err := validator.Validate(table); err != nil {
		e.validationFailed(ctx, table, err)
		return err
	}
	return nil
}

// Run validates table and input, then simulates the machine to a verdict.
//
// Validation and input failures are returned as errors before any step is taken.
// Dead ends (stalls, missing rules, tape exhaustion, the step budget) are not errors:
// they end the run with a rejecting Verdict. Only context cancellation aborts a run.
func (e *Engine) Run(ctx context.Context, table *domain.Table, input []string) (*domain.Result, error) {
	if table == nil {
		return nil, fmt.Errorf("run: nil transition table")
	}
	if err := e.Validate(ctx, table); err != nil {
		return nil, err
	}
	if err := validator.InputOK(table, input); err != nil {
		e.validationFailed(ctx, table, err)
		return nil, err
	}

	m, ok := machines[table.Kind()]
	if !ok {
		return nil, fmt.Errorf("run %q: %w: %s", table.Name(), domain.ErrUnknownKind, table.Kind())
	}

	r := &run{
		ctx:    ctx,
		engine: e,
		table:  table,
		logger: e.logger.With("machine", table.Name(), "kind", string(table.Kind())),
		result: &domain.Result{
			Machine: table.Name(),
			Kind:    table.Kind(),
			Input:   append([]string{}, input...),
			Trace:   []domain.Step{},
		},
	}

	started := time.Now()
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase:   r.base(domain.EventRunStart),
			InputLength: len(input),
		})
	}
	r.logger.Debug("run started", "input", input)

	err := m.simulate(r, input)
	switch {
	case errors.Is(err, errStepLimit):
		r.result.Verdict = domain.Verdict{
			Reason: domain.ReasonStepLimit,
			Detail: fmt.Sprintf("step budget of %d exhausted", e.maxSteps),
		}
	case err != nil:
		r.logger.Debug("run aborted", "error", err)
		return nil, err
	}

	r.logger.Debug("run finished",
		"accepted", r.result.Verdict.Accepted,
		"reason", string(r.result.Verdict.Reason),
		"steps", r.result.Steps,
	)
	if e.hooks.OnRunEnd != nil {
		e.hooks.OnRunEnd(ctx, &domain.RunEvent{
			EventBase:   r.base(domain.EventRunEnd),
			InputLength: len(input),
			Result:      r.result,
			Duration:    time.Since(started),
		})
	}
	return r.result, nil
}

func (e *Engine) validationFailed(ctx context.Context, table *domain.Table, err error) {
	check := domain.CheckInput
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		check = verr.Check
	}
	e.logger.Debug("validation failed", "machine", table.Name(), "check", check, "error", err)
	if e.hooks.OnValidationFailed != nil {
		e.hooks.OnValidationFailed(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventValidationFailed,
				Machine:   table.Name(),
				Kind:      table.Kind(),
			},
			Check: check,
			Err:   err,
		})
	}
}

// run is the bookkeeping shared by every engine for one simulation call.
type run struct {
	ctx    context.Context
	engine *Engine
	table  *domain.Table
	logger *slog.Logger
	result *domain.Result
}

// charge consumes one unit of the step budget. It fails on cancellation or exhaustion.
func (r *run) charge() error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if limit := r.engine.maxSteps; limit > 0 && r.result.Steps >= limit {
		return errStepLimit
	}
	r.result.Steps++
	return nil
}

// record appends a step to the trace and publishes it.
func (r *run) record(step domain.Step) {
	step.Index = len(r.result.Trace) + 1
	r.result.Trace = append(r.result.Trace, step)

	r.logger.Debug("step",
		"index", step.Index,
		"symbol", step.Symbol,
		"rule", step.Rule,
		"state", step.State,
		"states", step.States,
	)
	if r.engine.hooks.OnStep != nil {
		r.engine.hooks.OnStep(r.ctx, &domain.StepEvent{
			EventBase: r.base(domain.EventStep),
			Step:      step,
		})
	}
}

func (r *run) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   r.table.Name(),
		Kind:      r.table.Kind(),
	}
}

func (r *run) accept(reason domain.Reason) {
	r.result.Verdict = domain.Verdict{Accepted: true, Reason: reason}
}

func (r *run) reject(reason domain.Reason, format string, args ...any) {
	r.result.Verdict = domain.Verdict{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
