package adminauth

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/atendezap/atendezap-admin/internal/observability"
)

// Default messages shown by the executor.
const (
	defaultSuccessMessage = "Operação realizada com sucesso"
	defaultErrorMessage   = "Erro ao executar operação"
)

// Action is a deferred privileged computation.
type Action func(ctx context.Context) (any, error)

// Options configures outcome reporting for a single execution.
type Options struct {
	SuccessMessage string
	ErrorMessage   string
	OnSuccess      func()
	OnError        func(error)
}

// Outcome is the normalized result of one privileged operation.
// Constructed fresh per invocation and never persisted.
type Outcome struct {
	Succeeded bool
	Value     any
	Err       error
}

// Executor runs privileged admin actions under a uniform contract:
// an aggregate busy flag for the duration of the call, a success or
// destructive notification, optional callbacks, and the error handed
// back to the caller instead of being swallowed. It knows nothing
// about what the action does.
type Executor struct {
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
	inflight atomic.Int64
}

// NewExecutor constructs an Executor. metrics may be nil.
func NewExecutor(notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Executor {
	return &Executor{notifier: notifier, logger: logger, metrics: metrics}
}

// Busy reports whether any operation is currently in flight on this
// executor. Concurrent calls share one aggregate window; the executor
// does not serialize or queue them.
func (e *Executor) Busy() bool {
	return e.inflight.Load() > 0
}

// Execute runs action and reports its outcome. On success the success
// notification fires before OnSuccess and the action's value is
// returned. On failure the destructive notification fires once, then
// OnError, then the error is returned to the caller. The busy window
// closes in every path.
func (e *Executor) Execute(ctx context.Context, action Action, opts Options) (any, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)

	value, err := action(ctx)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("admin operation failed", slog.Any("error", err))
		}
		e.count("error")
		e.notify(ctx, Notification{
			Title:       "Erro",
			Description: failureMessage(err, opts),
			Variant:     VariantDestructive,
		})
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return nil, err
	}

	message := opts.SuccessMessage
	if message == "" {
		message = defaultSuccessMessage
	}
	e.count("success")
	e.notify(ctx, Notification{
		Title:       "Sucesso",
		Description: message,
		Variant:     VariantSuccess,
	})
	if opts.OnSuccess != nil {
		opts.OnSuccess()
	}
	return value, nil
}

// Run wraps Execute for callers that prefer matching on an Outcome
// value over propagating the error.
func (e *Executor) Run(ctx context.Context, action Action, opts Options) Outcome {
	value, err := e.Execute(ctx, action, opts)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Succeeded: true, Value: value}
}

func (e *Executor) notify(ctx context.Context, n Notification) {
	if e.notifier != nil {
		e.notifier.Notify(ctx, n)
	}
}

func (e *Executor) count(outcome string) {
	if e.metrics != nil {
		e.metrics.CountOperation(outcome)
	}
}

// failureMessage prefers the error's own message and falls back to the
// configured one when the error carries none.
func failureMessage(err error, opts Options) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	if opts.ErrorMessage != "" {
		return opts.ErrorMessage
	}
	return defaultErrorMessage
}
