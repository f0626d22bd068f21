package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// CreateType implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CreateType(ctx context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, annual_quota, paid, carry_forward, max_carry_forward)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Name,
		t.AnnualQuota,
		t.Paid,
		t.CarryForward,
		t.MaxCarryForward,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return t, nil
}

// GetTypeByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetTypeByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, annual_quota, paid, carry_forward, max_carry_forward, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var t leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.AnnualQuota, &t.Paid, &t.CarryForward, &t.MaxCarryForward,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}

	return t, nil
}

// UpdateType implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateType(ctx context.Context, t leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET name = $1, annual_quota = $2, paid = $3, carry_forward = $4,
			max_carry_forward = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, t.Name, t.AnnualQuota, t.Paid, t.CarryForward, t.MaxCarryForward, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// DeleteType implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) DeleteType(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var inUse bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE leave_type_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check leave type usage: %w", err)
	}
	if inUse {
		return leave.ErrLeaveTypeInUse
	}

	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// ListTypes implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, annual_quota, paid, carry_forward, max_carry_forward, created_at, updated_at
		FROM leave_types
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var t leave.LeaveType
		err := rows.Scan(
			&t.ID, &t.Name, &t.AnnualQuota, &t.Paid, &t.CarryForward, &t.MaxCarryForward,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

const leaveRequestColumns = `r.id, r.employee_id, r.leave_type_id, r.start_date, r.end_date,
	   r.days, r.reason, r.status, r.decided_by, r.decided_at, r.reject_reason,
	   r.created_at, r.updated_at`

func scanLeaveRequest(row pgx.Row, withJoins bool) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	dest := []interface{}{
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.Days, &req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectReason,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &req.EmployeeName, &req.EmployeeCode, &req.LeaveTypeName, &req.LeaveTypePaid)
	}
	err := row.Scan(dest...)
	return req, err
}

// CreateRequest implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CreateRequest(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.LeaveTypeID,
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetRequestByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetRequestByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, e.employee_code, t.name, t.paid
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// UpdateRequest implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateRequest(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, reject_reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.RejectReason, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// ListRequests implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND r.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND r.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code, t.name, t.paid
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN leave_types t ON t.id = r.leave_type_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

// HasOverlappingRequest implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasOverlappingRequest(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $4
			  AND end_date >= $5
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leave.StatusPending, leave.StatusApproved, end, start).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}

// GetBalance implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Seed the row from the type's annual quota on first access
	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, allocated, used, carried_over)
		SELECT $1, $2, $3, t.annual_quota, 0, 0
		FROM leave_types t
		WHERE t.id = $2
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING employee_id, leave_type_id, year, allocated, used, carried_over
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Allocated, &b.Used, &b.CarriedOver,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// ListBalances implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Types without a seeded balance row fall back to the annual quota
	query := `
		SELECT $1::uuid, t.id, $2::int,
			   COALESCE(b.allocated, t.annual_quota),
			   COALESCE(b.used, 0),
			   COALESCE(b.carried_over, 0),
			   t.name
		FROM leave_types t
		LEFT JOIN leave_balances b
			ON b.leave_type_id = t.id AND b.employee_id = $1 AND b.year = $2
		ORDER BY t.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(&b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Allocated, &b.Used, &b.CarriedOver, &b.LeaveTypeName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// AddUsed implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) AddUsed(ctx context.Context, employeeID, leaveTypeID string, year int, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used + $1
		WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4
	`

	tag, err := q.Exec(ctx, query, delta, employeeID, leaveTypeID, year)
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// SetCarriedOver implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) SetCarriedOver(ctx context.Context, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, allocated, used, carried_over)
		SELECT $1, $2, $3, t.annual_quota, 0, $4
		FROM leave_types t
		WHERE t.id = $2
		ON CONFLICT (employee_id, leave_type_id, year)
			DO UPDATE SET carried_over = EXCLUDED.carried_over
	`

	if _, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, amount); err != nil {
		return fmt.Errorf("failed to set carried-over balance: %w", err)
	}

	return nil
}

// ApprovedPaidLeaveDaysInMonth implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ApprovedPaidLeaveDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	// Clamp each request to the month before counting days
	query := `
		SELECT COALESCE(SUM(
			GREATEST(0, LEAST(r.end_date, (DATE_TRUNC('month', MAKE_DATE($2, $3, 1)) + INTERVAL '1 month - 1 day')::date)
				- GREATEST(r.start_date, MAKE_DATE($2, $3, 1)) + 1)
		), 0)
		FROM leave_requests r
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.employee_id = $1
		  AND r.status = $4
		  AND t.paid = TRUE
		  AND r.start_date <= (DATE_TRUNC('month', MAKE_DATE($2, $3, 1)) + INTERVAL '1 month - 1 day')::date
		  AND r.end_date >= MAKE_DATE($2, $3, 1)
	`

	var days decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, year, int(month), leave.StatusApproved).Scan(&days)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved paid leave days: %w", err)
	}

	return days, nil
}

// CountOnLeaveOnDate implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountOnLeaveOnDate(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM leave_requests
		WHERE status = $1
		  AND start_date <= $2
		  AND end_date >= $2
	`

	var count int
	err := q.QueryRow(ctx, query, leave.StatusApproved, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees on leave: %w", err)
	}

	return count, nil
}

// ListAllBalances implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAllBalances(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.employee_id, b.leave_type_id, b.year, b.allocated, b.used, b.carried_over, t.name
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.year = $1
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(&b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Allocated, &b.Used, &b.CarriedOver, &b.LeaveTypeName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, nil
}
