package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.PersonalHoliday) (holiday.PersonalHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personal_holidays (employee_id, date, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.EmployeeID, h.Date, h.Reason, h.Status).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return holiday.PersonalHoliday{}, fmt.Errorf("failed to create personal holiday: %w", err)
	}

	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.PersonalHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.employee_id, h.date, h.reason, h.status,
			   h.decided_by, h.decided_at, h.created_at, e.full_name, e.employee_code
		FROM personal_holidays h
		LEFT JOIN employees e ON e.id = h.employee_id
		WHERE h.id = $1
	`

	var h holiday.PersonalHoliday
	err := q.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.EmployeeID, &h.Date, &h.Reason, &h.Status,
		&h.DecidedBy, &h.DecidedAt, &h.CreatedAt, &h.EmployeeName, &h.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.PersonalHoliday{}, holiday.ErrHolidayNotFound
		}
		return holiday.PersonalHoliday{}, fmt.Errorf("failed to get personal holiday by ID: %w", err)
	}

	return h, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.PersonalHoliday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE personal_holidays
		SET status = $1, decided_by = $2, decided_at = $3
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, h.Status, h.DecidedBy, h.DecidedAt, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update personal holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, employeeID *string, status *string) ([]holiday.PersonalHoliday, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND h.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if status != nil && *status != "" {
		baseWhere += fmt.Sprintf(" AND h.status = $%d", argIdx)
		args = append(args, *status)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT h.id, h.employee_id, h.date, h.reason, h.status,
			   h.decided_by, h.decided_at, h.created_at, e.full_name, e.employee_code
		FROM personal_holidays h
		LEFT JOIN employees e ON e.id = h.employee_id
		WHERE %s
		ORDER BY h.date DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PersonalHoliday
	for rows.Next() {
		var h holiday.PersonalHoliday
		err := rows.Scan(
			&h.ID, &h.EmployeeID, &h.Date, &h.Reason, &h.Status,
			&h.DecidedBy, &h.DecidedAt, &h.CreatedAt, &h.EmployeeName, &h.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan personal holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

// HasRequestOnDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) HasRequestOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM personal_holidays
			WHERE employee_id = $1
			  AND date = $2
			  AND status <> $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date, holiday.StatusRejected).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing personal holiday request: %w", err)
	}

	return exists, nil
}

// GetQuota implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetQuota(ctx context.Context, employeeID string, year int) (*holiday.Quota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, year, allocated, used
		FROM personal_holiday_quotas
		WHERE employee_id = $1 AND year = $2
	`

	var quota holiday.Quota
	err := q.QueryRow(ctx, query, employeeID, year).Scan(&quota.EmployeeID, &quota.Year, &quota.Allocated, &quota.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // quota not configured
		}
		return nil, fmt.Errorf("failed to get personal holiday quota: %w", err)
	}

	return &quota, nil
}

// SetQuota implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) SetQuota(ctx context.Context, employeeID string, year int, allocated decimal.Decimal) (holiday.Quota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personal_holiday_quotas (employee_id, year, allocated, used)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (employee_id, year) DO UPDATE SET allocated = EXCLUDED.allocated
		RETURNING employee_id, year, allocated, used
	`

	var quota holiday.Quota
	err := q.QueryRow(ctx, query, employeeID, year, allocated).Scan(&quota.EmployeeID, &quota.Year, &quota.Allocated, &quota.Used)
	if err != nil {
		return holiday.Quota{}, fmt.Errorf("failed to set personal holiday quota: %w", err)
	}

	return quota, nil
}

// AddUsed implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) AddUsed(ctx context.Context, employeeID string, year int, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE personal_holiday_quotas
		SET used = used + $1
		WHERE employee_id = $2 AND year = $3
	`

	tag, err := q.Exec(ctx, query, delta, employeeID, year)
	if err != nil {
		return fmt.Errorf("failed to adjust personal holiday quota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrQuotaNotConfigured
	}

	return nil
}

// ListQuotas implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListQuotas(ctx context.Context, year int) ([]holiday.Quota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT q.employee_id, q.year, q.allocated, q.used, e.full_name
		FROM personal_holiday_quotas q
		LEFT JOIN employees e ON e.id = q.employee_id
		WHERE q.year = $1
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal holiday quotas: %w", err)
	}
	defer rows.Close()

	var quotas []holiday.Quota
	for rows.Next() {
		var quota holiday.Quota
		err := rows.Scan(&quota.EmployeeID, &quota.Year, &quota.Allocated, &quota.Used, &quota.EmployeeName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan personal holiday quota: %w", err)
		}
		quotas = append(quotas, quota)
	}

	return quotas, nil
}

// CountApprovedInMonth implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CountApprovedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM personal_holidays
		WHERE employee_id = $1
		  AND status = $2
		  AND EXTRACT(YEAR FROM date) = $3
		  AND EXTRACT(MONTH FROM date) = $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, holiday.StatusApproved, year, int(month)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count approved personal holidays: %w", err)
	}

	return count, nil
}
