package runner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campusworks/advisor-agent/internal/conversation"
	"github.com/campusworks/advisor-agent/internal/metrics"
	"github.com/campusworks/advisor-agent/internal/provider"
	"github.com/campusworks/advisor-agent/internal/telemetry"
)

// DefaultMaxIterations bounds model invocations per query so a
// tool-happy model can never loop forever.
const DefaultMaxIterations = 20

// Sink receives per-call progress. Purely observational; it never
// affects control flow.
type Sink interface {
	ToolInvoked(ctx context.Context, name string, args json.RawMessage, summary string)
}

// Controller orchestrates one query: call the model, append its output,
// dispatch requested tool calls in order, and decide whether to continue,
// finish, or give up at the iteration bound. A Controller is reusable;
// each Run owns a fresh log.
type Controller struct {
	client        provider.ModelClient
	dispatcher    *Dispatcher
	systemPrompt  string
	maxIterations int
	sink          Sink
	logger        *slog.Logger
}

type Option func(*Controller)

func WithMaxIterations(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

func WithSink(s Sink) Option {
	return func(c *Controller) { c.sink = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(client provider.ModelClient, dispatcher *Dispatcher, systemPrompt string, opts ...Option) *Controller {
	c := &Controller{
		client:        client,
		dispatcher:    dispatcher,
		systemPrompt:  systemPrompt,
		maxIterations: DefaultMaxIterations,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the loop for one user question. The returned error is
// non-nil exactly when Result.Outcome is OutcomeFatal, and is always a
// *FatalError naming the failed phase. Hitting the iteration bound is
// not an error.
func (c *Controller) Run(ctx context.Context, question string) (Result, error) {
	log := conversation.NewLog(c.systemPrompt, question)
	runID := uuid.NewString()
	ctx = telemetry.WithRunID(ctx, runID)

	schemas := c.dispatcher.AdvertisedSchemas()
	c.logger.Debug("loop started", "run_id", runID, "max_iterations", c.maxIterations, "tools", len(schemas))
	telemetry.Emit("loop_started", map[string]any{
		"run_id":         runID,
		"max_iterations": c.maxIterations,
		"tools":          len(schemas),
	})

	for iter := 1; ; iter++ {
		// Cancellation checkpoint: the one place a caller can abort
		// between iterations.
		if err := ctx.Err(); err != nil {
			return c.fatal(log, runID, iter-1, PhaseModel, err)
		}
		if iter > c.maxIterations {
			c.logger.Warn("iteration limit reached", "run_id", runID, "max_iterations", c.maxIterations)
			telemetry.Emit("iteration_limit", map[string]any{"run_id": runID, "iterations": c.maxIterations})
			return Result{RunID: runID, Outcome: OutcomeIterationLimit, Iterations: c.maxIterations, Log: log}, nil
		}

		out, err := c.client.Request(ctx, provider.Request{
			System:                  c.systemPrompt,
			Turns:                   log.Turns(),
			Tools:                   schemas,
			DisallowParallelToolUse: true,
		})
		if err != nil {
			return c.fatal(log, runID, iter, PhaseModel, err)
		}

		for _, item := range out.Items {
			log.Append(item)
		}
		calls := out.ToolCalls()
		c.logger.Debug("model responded", "run_id", runID, "iteration", iter, "tool_calls", len(calls))
		telemetry.Emit("model_response", map[string]any{
			"run_id":     runID,
			"iteration":  iter,
			"tool_calls": len(calls),
		})

		// Zero tool calls is the explicit done transition: the text is
		// the final answer.
		if len(calls) == 0 {
			return Result{RunID: runID, Outcome: OutcomeFinalAnswer, Answer: out.Text(), Iterations: iter, Log: log}, nil
		}

		for _, call := range calls {
			result, err := c.dispatcher.Execute(ctx, call)
			if err != nil {
				return c.fatal(log, runID, iter, PhaseDispatch, err)
			}
			// Appended immediately, not batched, so issue order and
			// result order stay aligned.
			log.Append(result)
			if c.sink != nil {
				c.sink.ToolInvoked(ctx, call.ToolName, call.Arguments,
					metrics.SummarizeResult(result.Payload, result.IsError))
			}
		}
	}
}

func (c *Controller) fatal(log *conversation.Log, runID string, iterations int, phase Phase, err error) (Result, error) {
	var fe *FatalError
	if !errors.As(err, &fe) {
		fe = &FatalError{Phase: phase, Err: err}
	}
	c.logger.Error("loop aborted", "run_id", runID, "phase", string(fe.Phase), "error", fe.Err)
	telemetry.Emit("loop_fatal", map[string]any{"run_id": runID, "phase": string(fe.Phase), "iterations": iterations})
	return Result{RunID: runID, Outcome: OutcomeFatal, Iterations: iterations, Log: log}, fe
}
