package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/domain/notification"
	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/emsuite/ems-backend-go/internal/domain/user"
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrResetTokenInvalid):
		BadRequest(w, "Password reset token is invalid or expired", nil)
	case errors.Is(err, auth.ErrWrongCurrentPassword):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOAuthNotEnabled):
		BadRequest(w, "Google login is not enabled", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is deactivated")
	case errors.Is(err, employee.ErrNoEmployeeProfile):
		Forbidden(w, "No employee profile linked to this account")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "You have not checked in yet")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		var geoErr *attendance.OutsideGeofenceError
		if errors.As(err, &geoErr) {
			ForbiddenWithDetails(w, "You are outside the allowed office radius", map[string]string{
				"distance_meters": strconv.Itoa(geoErr.DistanceMeters),
				"radius_meters":   strconv.Itoa(geoErr.RadiusMeters),
			})
			return
		}
		Forbidden(w, "You are outside the allowed office radius")
	case errors.Is(err, attendance.ErrMissingCoordinates):
		BadRequest(w, "Location coordinates are required for check-in", nil)
	case errors.Is(err, attendance.ErrNoOfficeConfigured):
		BadRequest(w, "No office location is configured", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrWFHRequestNotFound):
		NotFound(w, "Work-from-home request not found")
	case errors.Is(err, attendance.ErrWFHAlreadyRequested):
		Conflict(w, "A work-from-home request already exists for this date")
	case errors.Is(err, attendance.ErrWFHAlreadyDecided):
		Conflict(w, "Work-from-home request has already been decided")

	// Geofence domain errors
	case errors.Is(err, geofence.ErrOfficeNotFound):
		NotFound(w, "Office location not found")
	case errors.Is(err, geofence.ErrOfficeNameTaken):
		Conflict(w, "An office location with this name already exists")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrTemplateNotFound):
		NotFound(w, "Salary structure template not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordAlreadyGenerated):
		Conflict(w, "Payroll has already been generated for this employee and month")
	case errors.Is(err, payroll.ErrRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid and frozen")
	case errors.Is(err, payroll.ErrOverrideReasonRequired):
		BadRequest(w, "An override reason is required", nil)
	case errors.Is(err, payroll.ErrNoStructuresConfigured):
		BadRequest(w, "No employees have a salary structure configured", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameTaken):
		Conflict(w, "A leave type with this name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, "Leave type has requests and cannot be deleted")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request has already been decided")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrCannotCancel):
		Conflict(w, "Only pending requests can be cancelled")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Personal holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Personal holiday request not found")
	case errors.Is(err, holiday.ErrInsufficientQuota):
		BadRequest(w, "Insufficient personal holiday quota", nil)
	case errors.Is(err, holiday.ErrAlreadyDecided):
		Conflict(w, "Personal holiday request has already been decided")
	case errors.Is(err, holiday.ErrAlreadyRequested):
		Conflict(w, "A personal holiday request already exists for this date")
	case errors.Is(err, holiday.ErrQuotaNotConfigured):
		BadRequest(w, "Personal holiday quota is not configured", nil)

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrNotAssignee):
		Forbidden(w, "Task is not assigned to you")
	case errors.Is(err, task.ErrTaskCompleted):
		Conflict(w, "Task is already completed")
	case errors.Is(err, task.ErrInvalidProgress):
		BadRequest(w, "Progress must be between 0 and 100", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
