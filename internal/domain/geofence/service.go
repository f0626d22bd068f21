package geofence

import (
	"context"
)

// GeofenceService manages office locations and the geofence master switch
type GeofenceService interface {
	CreateOffice(ctx context.Context, req CreateOfficeRequest) (OfficeResponse, error)

	UpdateOffice(ctx context.Context, req UpdateOfficeRequest) (OfficeResponse, error)

	DeleteOffice(ctx context.Context, id string) error

	ListOffices(ctx context.Context) ([]OfficeResponse, error)

	GetSettings(ctx context.Context) (SettingsResponse, error)

	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
