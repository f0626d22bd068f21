package geofence

import (
	"context"
)

// GeofenceRepository defines data access for office locations and settings.
type GeofenceRepository interface {
	CreateOffice(ctx context.Context, office OfficeLocation) (OfficeLocation, error)

	GetOfficeByID(ctx context.Context, id string) (OfficeLocation, error)

	// GetPrimaryOffice retrieves the first configured office location by
	// position, the one check-in eligibility is evaluated against
	GetPrimaryOffice(ctx context.Context) (*OfficeLocation, error)

	UpdateOffice(ctx context.Context, office OfficeLocation) error

	DeleteOffice(ctx context.Context, id string) error

	ListOffices(ctx context.Context) ([]OfficeLocation, error)

	GetSettings(ctx context.Context) (Settings, error)

	UpdateSettings(ctx context.Context, enabled bool) (Settings, error)
}
