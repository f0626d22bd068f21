package holiday

import (
	"context"
)

// HolidayService defines business logic for the personal holiday pool
type HolidayService interface {
	// Apply files a personal holiday request against the separate quota pool
	Apply(ctx context.Context, req ApplyHolidayRequest) (HolidayResponse, error)

	// MyRequests lists the authenticated employee's requests
	MyRequests(ctx context.Context) ([]HolidayResponse, error)

	// MyQuota retrieves the authenticated employee's quota for a year
	MyQuota(ctx context.Context, year int) (QuotaResponse, error)

	// List lists requests filtered by status (admin)
	List(ctx context.Context, status string) ([]HolidayResponse, error)

	// Decide approves or rejects a pending request (admin)
	Decide(ctx context.Context, req DecideHolidayRequest) (HolidayResponse, error)

	// SetQuota sets one employee's quota for a year (admin)
	SetQuota(ctx context.Context, req SetQuotaRequest) (QuotaResponse, error)

	// BulkSetQuota sets every active employee's quota for a year (admin)
	BulkSetQuota(ctx context.Context, req BulkSetQuotaRequest) (int, error)

	// Quotas lists quotas for a year (admin)
	Quotas(ctx context.Context, year int) ([]QuotaResponse, error)
}
