package geofence

import (
	"context"

	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
)

type GeofenceServiceImpl struct {
	geofence.GeofenceRepository
}

func NewGeofenceService(geofenceRepository geofence.GeofenceRepository) geofence.GeofenceService {
	return &GeofenceServiceImpl{GeofenceRepository: geofenceRepository}
}

func toResponse(office geofence.OfficeLocation) geofence.OfficeResponse {
	return geofence.OfficeResponse{
		ID:           office.ID,
		Name:         office.Name,
		Address:      office.Address,
		Latitude:     office.Latitude,
		Longitude:    office.Longitude,
		RadiusMeters: office.RadiusMeters,
		Position:     office.Position,
	}
}

// CreateOffice implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) CreateOffice(ctx context.Context, req geofence.CreateOfficeRequest) (geofence.OfficeResponse, error) {
	created, err := s.GeofenceRepository.CreateOffice(ctx, geofence.OfficeLocation{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return geofence.OfficeResponse{}, err
	}

	return toResponse(created), nil
}

// UpdateOffice implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) UpdateOffice(ctx context.Context, req geofence.UpdateOfficeRequest) (geofence.OfficeResponse, error) {
	office, err := s.GeofenceRepository.GetOfficeByID(ctx, req.ID)
	if err != nil {
		return geofence.OfficeResponse{}, err
	}

	if req.Name != nil {
		office.Name = *req.Name
	}
	if req.Address != nil {
		office.Address = req.Address
	}
	if req.Latitude != nil {
		office.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		office.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		office.RadiusMeters = *req.RadiusMeters
	}

	if err := s.GeofenceRepository.UpdateOffice(ctx, office); err != nil {
		return geofence.OfficeResponse{}, err
	}

	return toResponse(office), nil
}

// DeleteOffice implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) DeleteOffice(ctx context.Context, id string) error {
	return s.GeofenceRepository.DeleteOffice(ctx, id)
}

// ListOffices implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) ListOffices(ctx context.Context) ([]geofence.OfficeResponse, error) {
	offices, err := s.GeofenceRepository.ListOffices(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]geofence.OfficeResponse, 0, len(offices))
	for _, office := range offices {
		responses = append(responses, toResponse(office))
	}

	return responses, nil
}

// GetSettings implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) GetSettings(ctx context.Context) (geofence.SettingsResponse, error) {
	settings, err := s.GeofenceRepository.GetSettings(ctx)
	if err != nil {
		return geofence.SettingsResponse{}, err
	}
	return geofence.SettingsResponse{Enabled: settings.Enabled}, nil
}

// UpdateSettings implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) UpdateSettings(ctx context.Context, req geofence.UpdateSettingsRequest) (geofence.SettingsResponse, error) {
	settings, err := s.GeofenceRepository.UpdateSettings(ctx, req.Enabled)
	if err != nil {
		return geofence.SettingsResponse{}, err
	}
	return geofence.SettingsResponse{Enabled: settings.Enabled}, nil
}
