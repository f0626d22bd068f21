package holiday

import "errors"

var (
	ErrHolidayNotFound    = errors.New("personal holiday request not found")
	ErrInsufficientQuota  = errors.New("insufficient personal holiday quota")
	ErrAlreadyDecided     = errors.New("personal holiday request has already been decided")
	ErrAlreadyRequested   = errors.New("a personal holiday request already exists for this date")
	ErrQuotaNotConfigured = errors.New("personal holiday quota is not configured for this employee")
)
