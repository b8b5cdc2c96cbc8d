package selection

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/andrzejandrzej/rabbit-tools/internal/logging"
)

// ActionInfo describes a queue action and the messages reported around it.
type ActionInfo struct {
	Name        string // command verb, e.g. "delete"
	Description string

	// RemovesQueue is true when a successful action makes the queue disappear
	// from later listings, which retires its ordinal.
	RemovesQueue bool

	AffectedMessage     string
	NotAffectedMessage  string
	NoneAffectedMessage string
}

// QueueAction is a broker operation applied to a single queue. Apply must
// return an error wrapping ErrQueueNotFound when the queue does not exist.
type QueueAction interface {
	Info() ActionInfo
	Apply(ctx context.Context, vhost, queue string) error
}

// Outcome classifies the result of applying an action to one queue.
type Outcome int

const (
	OutcomeAffected Outcome = iota
	OutcomeNotFound
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAffected:
		return "affected"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome for one target. Ordinal is zero for queues
// addressed by name.
type Result struct {
	Ordinal int
	Queue   string
	Outcome Outcome
	Err     error
}

// Report aggregates one batch: per-target results in execution order, the
// names that were affected, and the ordinals to retire.
type Report struct {
	Results  []Result
	Affected []string
	Retired  []int
}

// Executor applies a QueueAction to resolved targets, one attempt each.
type Executor struct {
	action QueueAction
	info   ActionInfo
	vhost  string
	logger *slog.Logger
}

// NewExecutor binds an action to a vhost.
func NewExecutor(action QueueAction, vhost string, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		action: action,
		info:   action.Info(),
		vhost:  vhost,
		logger: logger,
	}
}

// Execute applies the action to every target in order. Failures are logged
// and recorded in the report; they never abort the batch. A cancelled context
// stops the batch before the next target, and the interrupted call is left
// out of the report.
func (e *Executor) Execute(ctx context.Context, targets []Entry) Report {
	var report Report
	for _, target := range targets {
		result, ok := e.attempt(ctx, target.Ordinal, target.Queue)
		if !ok {
			break
		}
		report.Results = append(report.Results, result)
		switch result.Outcome {
		case OutcomeAffected:
			report.Affected = append(report.Affected, target.Queue)
			if e.info.RemovesQueue {
				report.Retired = append(report.Retired, target.Ordinal)
			}
		case OutcomeNotFound:
			report.Retired = append(report.Retired, target.Ordinal)
		}
	}
	e.summarize(ctx, report)
	return report
}

// ExecuteNames applies the action to literal queue names. No ordinals are
// involved, so the report never retires anything.
func (e *Executor) ExecuteNames(ctx context.Context, names []string) Report {
	var report Report
	for _, name := range names {
		result, ok := e.attempt(ctx, 0, name)
		if !ok {
			break
		}
		report.Results = append(report.Results, result)
		if result.Outcome == OutcomeAffected {
			report.Affected = append(report.Affected, name)
		}
	}
	e.summarize(ctx, report)
	return report
}

// attempt applies the action unless ctx is already done. It reports false
// when the context ended before or during the call.
func (e *Executor) attempt(ctx context.Context, ordinal int, queue string) (Result, bool) {
	if ctx.Err() != nil {
		return Result{}, false
	}
	err := e.action.Apply(ctx, e.vhost, queue)
	if err != nil && ctx.Err() != nil {
		e.logger.Debug("action interrupted",
			logging.String("queue", queue),
			logging.Error(err),
		)
		return Result{}, false
	}
	return e.classify(ordinal, queue, err), true
}

func (e *Executor) classify(ordinal int, queue string, err error) Result {
	result := Result{Ordinal: ordinal, Queue: queue}
	switch {
	case err == nil:
		result.Outcome = OutcomeAffected
	case errors.Is(err, ErrQueueNotFound):
		result.Outcome = OutcomeNotFound
		result.Err = err
		e.logger.Error("queue does not exist",
			logging.String("queue", queue),
			logging.String("vhost", e.vhost),
		)
	default:
		result.Outcome = OutcomeFailed
		result.Err = err
		e.logger.Error(e.info.NotAffectedMessage,
			logging.String("queue", queue),
			logging.String("vhost", e.vhost),
			logging.Error(err),
		)
	}
	return result
}

func (e *Executor) summarize(ctx context.Context, report Report) {
	if ctx.Err() != nil && len(report.Results) == 0 {
		return
	}
	if len(report.Affected) > 0 {
		e.logger.Info(e.info.AffectedMessage,
			logging.String("queues", strings.Join(report.Affected, ", ")),
			logging.Int("count", len(report.Affected)),
		)
		return
	}
	e.logger.Warn(e.info.NoneAffectedMessage)
}
