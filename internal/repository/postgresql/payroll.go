package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const recordColumns = `r.id, r.employee_id, r.month, r.basic_salary, r.gross_salary,
	   r.total_deductions, r.lop_days, r.lop_amount, r.half_day_count, r.half_day_amount,
	   r.bonus, r.net_salary, r.override_net_salary, r.override_reason,
	   r.component_breakdown, r.status, r.generated_at, r.paid_at, r.created_at, r.updated_at`

func scanRecord(row pgx.Row, withEmployee bool) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.BasicSalary, &rec.GrossSalary,
		&rec.TotalDeductions, &rec.LOPDays, &rec.LOPAmount, &rec.HalfDayCount, &rec.HalfDayAmount,
		&rec.Bonus, &rec.NetSalary, &rec.OverrideNetSalary, &rec.OverrideReason,
		&rec.ComponentBreakdown, &rec.Status, &rec.GeneratedAt, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeName, &rec.EmployeeCode)
	}
	err := row.Scan(dest...)
	return rec, err
}

func (r *payrollRepositoryImpl) loadStructureComponents(ctx context.Context, structureID string) ([]payroll.StructureComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, structure_id, name, type, calculation, value, display_order
		FROM salary_structure_components
		WHERE structure_id = $1
		ORDER BY display_order ASC
	`

	rows, err := q.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query structure components: %w", err)
	}
	defer rows.Close()

	var components []payroll.StructureComponent
	for rows.Next() {
		var c payroll.StructureComponent
		err := rows.Scan(&c.ID, &c.StructureID, &c.Name, &c.Type, &c.Calculation, &c.Value, &c.DisplayOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to scan structure component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}

func (r *payrollRepositoryImpl) insertStructureComponents(ctx context.Context, structureID string, components []payroll.StructureComponent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structure_components (structure_id, name, type, calculation, value, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, c := range components {
		if _, err := q.Exec(ctx, query, structureID, c.Name, c.Type, c.Calculation, c.Value, i+1); err != nil {
			return fmt.Errorf("failed to insert structure component: %w", err)
		}
	}

	return nil
}

// UpsertStructure implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertStructure(ctx context.Context, s payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO salary_structures (employee_id, basic_salary, working_days_per_month)
			VALUES ($1, $2, $3)
			ON CONFLICT (employee_id) DO UPDATE
				SET basic_salary = EXCLUDED.basic_salary,
					working_days_per_month = EXCLUDED.working_days_per_month,
					updated_at = NOW()
			RETURNING id, created_at, updated_at
		`

		err := q.QueryRow(txCtx, query, s.EmployeeID, s.BasicSalary, s.WorkingDaysPerMonth).
			Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert salary structure: %w", err)
		}

		if _, err := q.Exec(txCtx, `DELETE FROM salary_structure_components WHERE structure_id = $1`, s.ID); err != nil {
			return fmt.Errorf("failed to clear structure components: %w", err)
		}

		return r.insertStructureComponents(txCtx, s.ID, s.Components)
	})
	if err != nil {
		return payroll.SalaryStructure{}, err
	}

	return s, nil
}

// GetStructureByEmployeeID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetStructureByEmployeeID(ctx context.Context, employeeID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.basic_salary, s.working_days_per_month,
			   s.created_at, s.updated_at, e.full_name, e.employee_code
		FROM salary_structures s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.BasicSalary, &s.WorkingDaysPerMonth,
		&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	s.Components, err = r.loadStructureComponents(ctx, s.ID)
	if err != nil {
		return payroll.SalaryStructure{}, err
	}

	return s, nil
}

// ListStructures implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListStructures(ctx context.Context) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.basic_salary, s.working_days_per_month,
			   s.created_at, s.updated_at, e.full_name, e.employee_code
		FROM salary_structures s
		LEFT JOIN employees e ON e.id = s.employee_id
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary structures: %w", err)
	}
	defer rows.Close()

	var structures []payroll.SalaryStructure
	for rows.Next() {
		var s payroll.SalaryStructure
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.BasicSalary, &s.WorkingDaysPerMonth,
			&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}

	for i := range structures {
		structures[i].Components, err = r.loadStructureComponents(ctx, structures[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return structures, nil
}

// DeleteStructure implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteStructure(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_structures WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete salary structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrStructureNotFound
	}

	return nil
}

// ReplaceStructureComponents implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ReplaceStructureComponents(ctx context.Context, employeeID string, components []payroll.StructureComponent) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var structureID string
		err := q.QueryRow(txCtx, `SELECT id FROM salary_structures WHERE employee_id = $1`, employeeID).Scan(&structureID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrStructureNotFound
			}
			return fmt.Errorf("failed to find salary structure: %w", err)
		}

		if _, err := q.Exec(txCtx, `DELETE FROM salary_structure_components WHERE structure_id = $1`, structureID); err != nil {
			return fmt.Errorf("failed to clear structure components: %w", err)
		}

		return r.insertStructureComponents(txCtx, structureID, components)
	})
}

// CreateTemplate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateTemplate(ctx context.Context, t payroll.StructureTemplate) (payroll.StructureTemplate, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO salary_templates (name, description)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at
		`

		err := q.QueryRow(txCtx, query, t.Name, t.Description).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create salary template: %w", err)
		}

		componentQuery := `
			INSERT INTO salary_template_components (template_id, name, type, calculation, value, display_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for i, c := range t.Components {
			if _, err := q.Exec(txCtx, componentQuery, t.ID, c.Name, c.Type, c.Calculation, c.Value, i+1); err != nil {
				return fmt.Errorf("failed to insert template component: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return payroll.StructureTemplate{}, err
	}

	return t, nil
}

// GetTemplateByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetTemplateByID(ctx context.Context, id string) (payroll.StructureTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM salary_templates
		WHERE id = $1
	`

	var t payroll.StructureTemplate
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.StructureTemplate{}, payroll.ErrTemplateNotFound
		}
		return payroll.StructureTemplate{}, fmt.Errorf("failed to get salary template: %w", err)
	}

	componentQuery := `
		SELECT id, template_id, name, type, calculation, value, display_order
		FROM salary_template_components
		WHERE template_id = $1
		ORDER BY display_order ASC
	`
	rows, err := q.Query(ctx, componentQuery, id)
	if err != nil {
		return payroll.StructureTemplate{}, fmt.Errorf("failed to query template components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c payroll.TemplateComponent
		err := rows.Scan(&c.ID, &c.TemplateID, &c.Name, &c.Type, &c.Calculation, &c.Value, &c.DisplayOrder)
		if err != nil {
			return payroll.StructureTemplate{}, fmt.Errorf("failed to scan template component: %w", err)
		}
		t.Components = append(t.Components, c)
	}

	return t, nil
}

// ListTemplates implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListTemplates(ctx context.Context) ([]payroll.StructureTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM salary_templates
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary templates: %w", err)
	}
	defer rows.Close()

	var templates []payroll.StructureTemplate
	for rows.Next() {
		var t payroll.StructureTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// DeleteTemplate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteTemplate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrTemplateNotFound
	}

	return nil
}

// CreateRecord implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateRecord(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, basic_salary, gross_salary, total_deductions,
			lop_days, lop_amount, half_day_count, half_day_amount, bonus,
			net_salary, component_breakdown, status, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Month,
		rec.BasicSalary,
		rec.GrossSalary,
		rec.TotalDeductions,
		rec.LOPDays,
		rec.LOPAmount,
		rec.HalfDayCount,
		rec.HalfDayAmount,
		rec.Bonus,
		rec.NetSalary,
		rec.ComponentBreakdown,
		rec.Status,
		rec.GeneratedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

// GetRecordByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, e.full_name, e.employee_code
		FROM payroll_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by ID: %w", err)
	}

	return rec, nil
}

// GetRecordByEmployeeAndMonth implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetRecordByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records r
		WHERE r.employee_id = $1
		  AND r.month = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, month), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this month
		}
		return nil, fmt.Errorf("failed to get payroll record by employee and month: %w", err)
	}

	return &rec, nil
}

// ListRecords implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil && *filter.Month != "" {
		baseWhere += fmt.Sprintf(" AND r.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
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

	countQuery := "SELECT COUNT(*) FROM payroll_records r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code
		FROM payroll_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.month DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, recordColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListRecordsByMonth implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRecordsByMonth(ctx context.Context, month string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, e.full_name, e.employee_code
		FROM payroll_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.month = $1
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records by month: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListRecordsByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRecordsByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records r
		WHERE r.employee_id = $1
		ORDER BY r.month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records by employee: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// SetOverride implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SetOverride(ctx context.Context, id string, req payroll.OverrideRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET override_net_salary = $1, override_reason = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, req.NetSalary, req.Reason, id)
	if err != nil {
		return fmt.Errorf("failed to set payroll override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, ids []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, paid_at = NOW(), updated_at = NOW()
		WHERE id = ANY($2)
		  AND status <> $1
	`

	tag, err := q.Exec(ctx, query, payroll.StatusPaid, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark payroll records paid: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
