package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mentra/group-booking/pkg/logger"
	"github.com/mentra/group-booking/pkg/metrics"
	"github.com/mentra/group-booking/pkg/tracing"
)

// Instrumented wraps a Client with logging, metrics and a span per call.
type Instrumented struct {
	next   Client
	logger *logger.Logger
	tracer trace.Tracer
}

// NewInstrumented wraps next.
func NewInstrumented(next Client, log *logger.Logger) *Instrumented {
	return &Instrumented{
		next:   next,
		logger: log.Component("llm"),
		tracer: tracing.Tracer(),
	}
}

// Name returns the wrapped provider name.
func (c *Instrumented) Name() string {
	return c.next.Name()
}

// Models returns the wrapped provider models.
func (c *Instrumented) Models() []string {
	return c.next.Models()
}

// Complete forwards to the wrapped client.
func (c *Instrumented) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ctx, span := c.start(ctx, "llm.complete", req)
	defer span.End()

	start := time.Now()
	resp, err := c.next.Complete(ctx, req)
	c.observe(span, req, resp, err, time.Since(start))
	return resp, err
}

// CompleteStream forwards to the wrapped client.
func (c *Instrumented) CompleteStream(ctx context.Context, req *CompletionRequest, callback StreamCallback) (*CompletionResponse, error) {
	ctx, span := c.start(ctx, "llm.complete_stream", req)
	defer span.End()

	start := time.Now()
	resp, err := c.next.CompleteStream(ctx, req, callback)
	c.observe(span, req, resp, err, time.Since(start))
	return resp, err
}

func (c *Instrumented) start(ctx context.Context, name string, req *CompletionRequest) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("llm.provider", c.next.Name()),
		attribute.String("llm.purpose", req.Purpose),
		attribute.Int("llm.messages", len(req.Messages)),
	))
}

func (c *Instrumented) observe(span trace.Span, req *CompletionRequest, resp *CompletionResponse, err error, elapsed time.Duration) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		metrics.RecordLLMCall(c.next.Name(), req.Purpose, "error", elapsed.Seconds(), 0, 0)
		c.logger.Error("completion failed",
			zap.String("purpose", req.Purpose),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return
	}

	span.SetAttributes(
		attribute.Int("llm.tokens_in", resp.TokensIn),
		attribute.Int("llm.tokens_out", resp.TokensOut),
	)
	metrics.RecordLLMCall(c.next.Name(), req.Purpose, "success", elapsed.Seconds(), resp.TokensIn, resp.TokensOut)
	c.logger.Debug("completion finished",
		zap.String("purpose", req.Purpose),
		zap.String("model", resp.Model),
		zap.Int("tokens_in", resp.TokensIn),
		zap.Int("tokens_out", resp.TokensOut),
		zap.String("stop_reason", resp.StopReason),
		zap.Duration("elapsed", elapsed),
	)
}
