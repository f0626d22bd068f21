package dashboard

import (
	"context"
)

// DashboardService computes and publishes live dashboard counters
type DashboardService interface {
	// Counters computes today's headcount snapshot
	Counters(ctx context.Context) (CountersResponse, error)

	// PublishCounters recomputes counters and broadcasts them on the
	// dashboard topic. Called after attendance and leave mutations and by
	// the hourly refresh job.
	PublishCounters(ctx context.Context) error
}
