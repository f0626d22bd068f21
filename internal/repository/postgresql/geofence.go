package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type geofenceRepositoryImpl struct {
	db *database.DB
}

func NewGeofenceRepository(db *database.DB) geofence.GeofenceRepository {
	return &geofenceRepositoryImpl{db: db}
}

const officeColumns = `id, name, address, latitude, longitude, radius_meters, position, created_at, updated_at`

func scanOffice(row pgx.Row) (geofence.OfficeLocation, error) {
	var office geofence.OfficeLocation
	err := row.Scan(
		&office.ID,
		&office.Name,
		&office.Address,
		&office.Latitude,
		&office.Longitude,
		&office.RadiusMeters,
		&office.Position,
		&office.CreatedAt,
		&office.UpdatedAt,
	)
	return office, err
}

// CreateOffice implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) CreateOffice(ctx context.Context, office geofence.OfficeLocation) (geofence.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	// New offices append to the end of the ordering
	query := `
		INSERT INTO office_locations (name, address, latitude, longitude, radius_meters, position)
		VALUES ($1, $2, $3, $4, $5,
			COALESCE((SELECT MAX(position) + 1 FROM office_locations), 1))
		RETURNING id, position, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		office.Name,
		office.Address,
		office.Latitude,
		office.Longitude,
		office.RadiusMeters,
	).Scan(&office.ID, &office.Position, &office.CreatedAt, &office.UpdatedAt)
	if err != nil {
		return geofence.OfficeLocation{}, fmt.Errorf("failed to create office location: %w", err)
	}

	return office, nil
}

// GetOfficeByID implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) GetOfficeByID(ctx context.Context, id string) (geofence.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officeColumns + ` FROM office_locations WHERE id = $1`

	office, err := scanOffice(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.OfficeLocation{}, geofence.ErrOfficeNotFound
		}
		return geofence.OfficeLocation{}, fmt.Errorf("failed to get office by ID: %w", err)
	}

	return office, nil
}

// GetPrimaryOffice implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) GetPrimaryOffice(ctx context.Context) (*geofence.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officeColumns + ` FROM office_locations ORDER BY position ASC LIMIT 1`

	office, err := scanOffice(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no office configured
		}
		return nil, fmt.Errorf("failed to get primary office: %w", err)
	}

	return &office, nil
}

// UpdateOffice implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) UpdateOffice(ctx context.Context, office geofence.OfficeLocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE office_locations
		SET name = $1, address = $2, latitude = $3, longitude = $4,
			radius_meters = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		office.Name,
		office.Address,
		office.Latitude,
		office.Longitude,
		office.RadiusMeters,
		office.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update office location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrOfficeNotFound
	}

	return nil
}

// DeleteOffice implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) DeleteOffice(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM office_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete office location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrOfficeNotFound
	}

	return nil
}

// ListOffices implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) ListOffices(ctx context.Context) ([]geofence.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officeColumns + ` FROM office_locations ORDER BY position ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query office locations: %w", err)
	}
	defer rows.Close()

	var offices []geofence.OfficeLocation
	for rows.Next() {
		office, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		offices = append(offices, office)
	}

	return offices, nil
}

// GetSettings implements geofence.GeofenceRepository.
// The settings table holds a single row; geofencing defaults to enabled when
// the row is missing.
func (r *geofenceRepositoryImpl) GetSettings(ctx context.Context) (geofence.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT enabled, updated_at FROM geofence_settings LIMIT 1`

	var settings geofence.Settings
	err := q.QueryRow(ctx, query).Scan(&settings.Enabled, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Settings{Enabled: true}, nil
		}
		return geofence.Settings{}, fmt.Errorf("failed to get geofence settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) UpdateSettings(ctx context.Context, enabled bool) (geofence.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO geofence_settings (id, enabled, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()
		RETURNING enabled, updated_at
	`

	var settings geofence.Settings
	err := q.QueryRow(ctx, query, enabled).Scan(&settings.Enabled, &settings.UpdatedAt)
	if err != nil {
		return geofence.Settings{}, fmt.Errorf("failed to update geofence settings: %w", err)
	}

	return settings, nil
}
