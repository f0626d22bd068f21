package payroll

import (
	"context"
)

// PayrollRepository defines data access for structures, templates and records.
type PayrollRepository interface {
	// UpsertStructure replaces the structure and its components atomically
	UpsertStructure(ctx context.Context, s SalaryStructure) (SalaryStructure, error)

	GetStructureByEmployeeID(ctx context.Context, employeeID string) (SalaryStructure, error)

	ListStructures(ctx context.Context) ([]SalaryStructure, error)

	DeleteStructure(ctx context.Context, employeeID string) error

	// ReplaceStructureComponents swaps an employee's components, keeping basic
	ReplaceStructureComponents(ctx context.Context, employeeID string, components []StructureComponent) error

	CreateTemplate(ctx context.Context, t StructureTemplate) (StructureTemplate, error)

	GetTemplateByID(ctx context.Context, id string) (StructureTemplate, error)

	ListTemplates(ctx context.Context) ([]StructureTemplate, error)

	DeleteTemplate(ctx context.Context, id string) error

	CreateRecord(ctx context.Context, r PayrollRecord) (PayrollRecord, error)

	GetRecordByID(ctx context.Context, id string) (PayrollRecord, error)

	// GetRecordByEmployeeAndMonth enforces the one-record-per-month rule.
	// Returns nil when no record exists.
	GetRecordByEmployeeAndMonth(ctx context.Context, employeeID string, month string) (*PayrollRecord, error)

	ListRecords(ctx context.Context, filter RecordFilter) ([]PayrollRecord, int64, error)

	ListRecordsByMonth(ctx context.Context, month string) ([]PayrollRecord, error)

	ListRecordsByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error)

	// SetOverride stores the override figures without touching computed ones
	SetOverride(ctx context.Context, id string, req OverrideRequest) error

	MarkPaid(ctx context.Context, ids []string) (int, error)
}
