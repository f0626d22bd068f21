package payroll

import (
	"context"
)

// PayrollService defines business logic for salary structures, templates
// and payroll records.
type PayrollService interface {
	// UpsertStructure creates or replaces an employee's salary structure (admin)
	UpsertStructure(ctx context.Context, req UpsertStructureRequest) (StructureResponse, error)

	// GetStructure retrieves an employee's salary structure (admin)
	GetStructure(ctx context.Context, employeeID string) (StructureResponse, error)

	// ListStructures retrieves all configured structures (admin)
	ListStructures(ctx context.Context) ([]StructureResponse, error)

	// DeleteStructure removes an employee's salary structure (admin)
	DeleteStructure(ctx context.Context, employeeID string) error

	// CreateTemplate saves a reusable component set (admin)
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)

	// ListTemplates retrieves saved templates (admin)
	ListTemplates(ctx context.Context) ([]TemplateResponse, error)

	// DeleteTemplate removes a template (admin)
	DeleteTemplate(ctx context.Context, id string) error

	// ApplyTemplate replaces the component sets of the given employees'
	// structures with the template's components; basic salary is kept (admin)
	ApplyTemplate(ctx context.Context, req ApplyTemplateRequest) (int, error)

	// Generate computes payroll records for a month (admin). One record per
	// employee per month; existing records are skipped, never recomputed.
	Generate(ctx context.Context, req GeneratePayrollRequest) (GenerateResultResponse, error)

	// ListRecords retrieves payroll records with filters (admin)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// GetRecord retrieves a single payroll record (admin)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)

	// Override stores an override net salary with a mandatory reason (admin).
	// Computed figures are retained for audit; paid records reject overrides.
	Override(ctx context.Context, req OverrideRequest) (RecordResponse, error)

	// MarkPaid marks records as paid, terminal per record (admin)
	MarkPaid(ctx context.Context, req MarkPaidRequest) (int, error)

	// BankTransferCSV renders a month's records as a bank transfer sheet (admin)
	BankTransferCSV(ctx context.Context, month string) ([]byte, error)

	// MySlips retrieves the authenticated employee's payroll records
	MySlips(ctx context.Context) ([]RecordResponse, error)

	// MySlip retrieves one of the authenticated employee's slips
	MySlip(ctx context.Context, id string) (RecordResponse, error)
}
