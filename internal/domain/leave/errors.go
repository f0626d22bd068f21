package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameTaken   = errors.New("a leave type with this name already exists")
	ErrLeaveTypeInUse       = errors.New("leave type has requests and cannot be deleted")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAlreadyDecided       = errors.New("leave request has already been decided")
	ErrOverlappingRequest   = errors.New("an overlapping leave request already exists")
	ErrCannotCancel         = errors.New("only pending requests can be cancelled")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
)
