package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
	   a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	   a.distance_meters, a.work_mode, a.status, a.note, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withEmployee bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.DistanceMeters, &att.WorkMode, &att.Status, &att.Note, &att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &att.EmployeeName, &att.EmployeeCode)
	}
	err := row.Scan(dest...)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_time, check_out_time,
			check_in_latitude, check_in_longitude, distance_meters,
			work_mode, status, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.DistanceMeters,
		att.WorkMode,
		att.Status,
		att.Note,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name, e.employee_code
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this date yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1, check_out_time = $2,
			check_out_latitude = $3, check_out_longitude = $4,
			work_mode = $5, status = $6, note = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, query,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.WorkMode,
		att.Status,
		att.Note,
		att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in_time":
		orderByField = "a.check_in_time"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// ListByEmployeeAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND EXTRACT(MONTH FROM a.date) = $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, nil
}

// CountByStatusOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByStatusOnDate(ctx context.Context, date time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendances by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

// CountWFHOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountWFHOnDate(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE date = $1 AND work_mode = $2`,
		date, attendance.ModeWFH,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count WFH attendances: %w", err)
	}

	return count, nil
}

// CreateOutOfRangeLog implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CreateOutOfRangeLog(ctx context.Context, log attendance.OutOfRangeLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_out_of_range_logs (
			employee_id, latitude, longitude, distance_meters, radius_meters, office_id, attempted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		log.EmployeeID,
		log.Latitude,
		log.Longitude,
		log.DistanceMeters,
		log.RadiusMeters,
		log.OfficeID,
		log.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create out-of-range log: %w", err)
	}

	return nil
}

// ListOutOfRangeLogs implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOutOfRangeLogs(ctx context.Context, start, end time.Time) ([]attendance.OutOfRangeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.latitude, l.longitude, l.distance_meters,
			   l.radius_meters, l.office_id, l.attempted_at, e.full_name
		FROM attendance_out_of_range_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.attempted_at >= $1 AND l.attempted_at < $2
		ORDER BY l.attempted_at DESC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query out-of-range logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.OutOfRangeLog
	for rows.Next() {
		var log attendance.OutOfRangeLog
		err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.Latitude, &log.Longitude, &log.DistanceMeters,
			&log.RadiusMeters, &log.OfficeID, &log.AttemptedAt, &log.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan out-of-range log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// CreateWFHRequest implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CreateWFHRequest(ctx context.Context, req attendance.WFHRequest) (attendance.WFHRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wfh_requests (employee_id, date, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.Date,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return attendance.WFHRequest{}, fmt.Errorf("failed to create WFH request: %w", err)
	}

	return req, nil
}

// GetWFHRequestByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetWFHRequestByID(ctx context.Context, id string) (attendance.WFHRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.employee_id, w.date, w.reason, w.status,
			   w.decided_by, w.decided_at, w.created_at, e.full_name
		FROM wfh_requests w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.id = $1
	`

	var req attendance.WFHRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status,
		&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WFHRequest{}, attendance.ErrWFHRequestNotFound
		}
		return attendance.WFHRequest{}, fmt.Errorf("failed to get WFH request by ID: %w", err)
	}

	return req, nil
}

// GetApprovedWFH implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetApprovedWFH(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM wfh_requests
			WHERE employee_id = $1
			  AND date = $2
			  AND status = $3
		)
	`

	var approved bool
	err := q.QueryRow(ctx, query, employeeID, date, attendance.WFHApproved).Scan(&approved)
	if err != nil {
		return false, fmt.Errorf("failed to check approved WFH: %w", err)
	}

	return approved, nil
}

// HasWFHRequest implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasWFHRequest(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM wfh_requests
			WHERE employee_id = $1
			  AND date = $2
			  AND status <> $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date, attendance.WFHRejected).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing WFH request: %w", err)
	}

	return exists, nil
}

// ListWFHRequests implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListWFHRequests(ctx context.Context, employeeID *string, status *string) ([]attendance.WFHRequest, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND w.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if status != nil && *status != "" {
		baseWhere += fmt.Sprintf(" AND w.status = $%d", argIdx)
		args = append(args, *status)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT w.id, w.employee_id, w.date, w.reason, w.status,
			   w.decided_by, w.decided_at, w.created_at, e.full_name
		FROM wfh_requests w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE %s
		ORDER BY w.date DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query WFH requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.WFHRequest
	for rows.Next() {
		var req attendance.WFHRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status,
			&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan WFH request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateWFHRequest implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateWFHRequest(ctx context.Context, req attendance.WFHRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wfh_requests
		SET status = $1, decided_by = $2, decided_at = $3
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update WFH request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrWFHRequestNotFound
	}

	return nil
}
