package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/middleware"
)

// Outcome is the result of a session admission check.
type Outcome int

const (
	// Reject stops the request; the caller answers 401.
	Reject Outcome = iota
	// Admit lets the request proceed to the next handler.
	Admit
)

// String returns the outcome as a metric label.
func (o Outcome) String() string {
	if o == Admit {
		return "admit"
	}
	return "reject"
}

// User-facing messages carried by a Decision.
const (
	MessageTokenValid   = "The token is valid."
	MessageTokenInvalid = "The token is not valid."
	MessageTokenExpired = "The token has expired."
)

// Decision is the single outcome of SessionGate.Admit.
type Decision struct {
	Outcome Outcome
	// Reason is nil on Admit. On Reject it wraps ErrTokenMissing,
	// ErrTokenExpired, or the store failure that prevented the lookup.
	Reason  error
	Message string
	// Record is the admitted token record; nil on Reject.
	Record *domain.TokenRecord
}

// Admitted reports whether the request may proceed.
func (d Decision) Admitted() bool {
	return d.Outcome == Admit
}

// SessionGate admits or rejects requests based on the freshness of the
// presented token. It never refreshes or extends a token.
type SessionGate struct {
	tokens domain.TokenRepository
	now    func() time.Time
}

// NewSessionGate creates a SessionGate reading the wall clock.
func NewSessionGate(tokens domain.TokenRepository) *SessionGate {
	return &SessionGate{tokens: tokens, now: time.Now}
}

// WithClock returns a copy of the gate that reads time from now.
func (g *SessionGate) WithClock(now func() time.Time) *SessionGate {
	return &SessionGate{tokens: g.tokens, now: now}
}

// Admit looks the token up verbatim and compares its expiration against a
// single snapshot of the clock. A token is rejected once now reaches its
// expiration instant. Lookup failures reject; Admit never returns an error.
func (g *SessionGate) Admit(ctx context.Context, token string) Decision {
	ctx, span := middleware.StartSpan(ctx, "session.admit", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	d := g.decide(ctx, token)

	span.SetAttributes(
		attribute.String("session.outcome", d.Outcome.String()),
		attribute.Bool("session.valid", d.Admitted()),
	)
	if d.Reason != nil && !errors.Is(d.Reason, ErrTokenMissing) && !errors.Is(d.Reason, ErrTokenExpired) {
		span.RecordError(d.Reason)
	}
	middleware.RecordGateDecision(d.Outcome.String(), reasonLabel(d.Reason))

	return d
}

func (g *SessionGate) decide(ctx context.Context, token string) Decision {
	if strings.TrimSpace(token) == "" {
		return reject(fmt.Errorf("empty authorization header: %w", ErrTokenMissing), MessageTokenInvalid)
	}

	rec, err := g.tokens.GetByToken(ctx, token)
	if err != nil {
		return reject(fmt.Errorf("query token: %w", err), MessageTokenInvalid)
	}
	if rec == nil {
		return reject(fmt.Errorf("lookup token: %w", ErrTokenMissing), MessageTokenInvalid)
	}

	now := g.now()
	if !now.Before(rec.ExpiresAt) {
		return reject(fmt.Errorf("token expired at %v: %w", rec.ExpiresAt, ErrTokenExpired), MessageTokenExpired)
	}

	return Decision{Outcome: Admit, Message: MessageTokenValid, Record: rec}
}

func reject(reason error, message string) Decision {
	return Decision{Outcome: Reject, Reason: reason, Message: message}
}

func reasonLabel(reason error) string {
	switch {
	case reason == nil:
		return "none"
	case errors.Is(reason, ErrTokenMissing):
		return "missing"
	case errors.Is(reason, ErrTokenExpired):
		return "expired"
	default:
		return "store_error"
	}
}
