package server

import "context"

// HealthChecker reports whether the process should accept traffic.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// CheckFunc adapts a plain function to the HealthChecker interface.
type CheckFunc func(ctx context.Context) bool

func (f CheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// NewOkHealthChecker always reports healthy. The pipeline holds no
// long-lived connections that could go stale between requests.
func NewOkHealthChecker() HealthChecker {
	return CheckFunc(func(context.Context) bool { return true })
}
