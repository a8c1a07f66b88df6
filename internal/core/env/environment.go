package env

import (
	"context"
	"time"

	"Nest/internal/core/posts"
)

// AnonymousPrincipal is reported as the caller when none is known
const AnonymousPrincipal posts.Principal = "anonymous"

// Environment supplies caller identity and the current time to each call.
// Values are read once per call and treated as plain inputs by the core.
type Environment interface {
	Caller(ctx context.Context) posts.Principal
	Now() time.Time
}

type contextKey string

const callerKey contextKey = "nest_caller"

// WithCaller returns a context carrying the caller principal.
// Set by the HTTP caller middleware.
func WithCaller(ctx context.Context, caller posts.Principal) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFrom extracts the caller principal set by WithCaller
func CallerFrom(ctx context.Context) (posts.Principal, bool) {
	caller, ok := ctx.Value(callerKey).(posts.Principal)
	return caller, ok && caller != ""
}

// Empty is the placeholder binding used before the process is restored.
// Every call appears anonymous at the zero time.
type Empty struct{}

func (Empty) Caller(context.Context) posts.Principal { return AnonymousPrincipal }

func (Empty) Now() time.Time { return time.Time{} }

// System resolves the caller from the request context and reads the wall clock
type System struct {
	// Clock overrides time.Now when set; used by tests
	Clock func() time.Time
}

// NewSystem creates the real environment binding
func NewSystem() *System {
	return &System{}
}

func (s *System) Caller(ctx context.Context) posts.Principal {
	if caller, ok := CallerFrom(ctx); ok {
		return caller
	}
	return AnonymousPrincipal
}

func (s *System) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
