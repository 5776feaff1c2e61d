// Package service contains the application services that sit between the
// inbound transport and the outbound engine.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gqlgate/gqlgate/internal/domain/query"
	"github.com/gqlgate/gqlgate/internal/port/outbound"
	"github.com/gqlgate/gqlgate/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExecutionService runs queries through the engine and carries the ambient
// concerns around each execution: structured logging and a trace span.
// Outcome framing stays in the transport; this layer never touches HTTP.
type ExecutionService struct {
	engine outbound.Engine
	logger *slog.Logger
}

// ExecutionOption configures an ExecutionService.
type ExecutionOption func(*ExecutionService)

// WithExecutionLogger sets the service logger.
func WithExecutionLogger(logger *slog.Logger) ExecutionOption {
	return func(s *ExecutionService) {
		s.logger = logger
	}
}

// NewExecutionService creates an ExecutionService over the given engine.
func NewExecutionService(engine outbound.Engine, opts ...ExecutionOption) *ExecutionService {
	s := &ExecutionService{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs one query through the engine. Errors are returned exactly as
// the engine produced them; distinguishing recognized failures from raw
// rejections is the caller's job.
func (s *ExecutionService) Execute(ctx context.Context, req *query.Request) (*query.Outcome, error) {
	ctx, span := telemetry.StartExecuteSpan(ctx, req.Method)
	defer span.End()

	start := time.Now()
	outcome, err := s.engine.Execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debug("query execution rejected",
			"error", err,
			"elapsed", time.Since(start))
		return nil, err
	}

	span.SetAttributes(attribute.String("gqlgate.outcome", outcome.Kind()))
	s.logger.Debug("query executed",
		"outcome", outcome.Kind(),
		"elapsed", time.Since(start))
	return outcome, nil
}
