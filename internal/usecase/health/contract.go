package health

import "context"

// Pinger checks availability of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChatChecker checks remote chat provider availability.
type ChatChecker interface {
	HealthCheck(ctx context.Context) error
}
