package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics holds metric instruments for authentication activity.
type AuthMetrics struct {
	loginTotal     metric.Int64Counter
	loginDuration  metric.Float64Histogram
	activeSessions metric.Int64UpDownCounter
	tokenIssued    metric.Int64Counter
	authFailures   metric.Int64Counter
}

// NewAuthMetrics creates the authentication metric instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	loginTotal, err := meter.Int64Counter("auth.login.total",
		metric.WithDescription("Total login attempts by scheme and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.total counter: %w", err)
	}

	loginDuration, err := meter.Float64Histogram("auth.login.duration",
		metric.WithDescription("Duration of login handling in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.duration histogram: %w", err)
	}

	activeSessions, err := meter.Int64UpDownCounter("auth.sessions.active",
		metric.WithDescription("Number of live cookie sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.sessions.active gauge: %w", err)
	}

	tokenIssued, err := meter.Int64Counter("auth.tokens.issued",
		metric.WithDescription("Total JWTs issued by token type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.tokens.issued counter: %w", err)
	}

	authFailures, err := meter.Int64Counter("auth.failures.total",
		metric.WithDescription("Authentication failures by scheme and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.failures.total counter: %w", err)
	}

	return &AuthMetrics{
		loginTotal:     loginTotal,
		loginDuration:  loginDuration,
		activeSessions: activeSessions,
		tokenIssued:    tokenIssued,
		authFailures:   authFailures,
	}, nil
}

// RecordLogin records a completed login attempt.
func (m *AuthMetrics) RecordLogin(ctx context.Context, scheme, outcome string, duration time.Duration) {
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scheme", scheme),
		attribute.String("outcome", outcome),
	))
	m.loginDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("scheme", scheme),
	))
}

// SessionOpened increments the live session gauge.
func (m *AuthMetrics) SessionOpened(ctx context.Context) {
	m.activeSessions.Add(ctx, 1)
}

// SessionClosed decrements the live session gauge.
func (m *AuthMetrics) SessionClosed(ctx context.Context) {
	m.activeSessions.Add(ctx, -1)
}

// RecordTokenIssued records an issued JWT by type ("access" or "refresh").
func (m *AuthMetrics) RecordTokenIssued(ctx context.Context, tokenType string) {
	m.tokenIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", tokenType),
	))
}

// RecordAuthFailure records a failed authentication by scheme and error code.
func (m *AuthMetrics) RecordAuthFailure(ctx context.Context, scheme, code string) {
	m.authFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scheme", scheme),
		attribute.String("code", code),
	))
}
