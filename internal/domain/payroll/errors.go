package payroll

import "errors"

var (
	ErrStructureNotFound      = errors.New("salary structure not found")
	ErrTemplateNotFound       = errors.New("salary structure template not found")
	ErrRecordNotFound         = errors.New("payroll record not found")
	ErrRecordAlreadyGenerated = errors.New("payroll has already been generated for this employee and month")
	ErrRecordAlreadyPaid      = errors.New("payroll record is already paid and frozen")
	ErrOverrideReasonRequired = errors.New("an override reason is required")
	ErrNoStructuresConfigured = errors.New("no employees have a salary structure configured")
)
