package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out today")
	ErrOutsideGeofence    = errors.New("you are outside the allowed office radius")
	ErrMissingCoordinates = errors.New("location coordinates are required for check-in")
	ErrNoOfficeConfigured = errors.New("no office location is configured")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// WFH errors
	ErrWFHRequestNotFound  = errors.New("work-from-home request not found")
	ErrWFHAlreadyRequested = errors.New("a work-from-home request already exists for this date")
	ErrWFHAlreadyDecided   = errors.New("work-from-home request has already been decided")
)

// OutsideGeofenceError carries the figures behind a rejected check-in so
// clients can show the employee how far outside the fence they were.
type OutsideGeofenceError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("you are %dm from the office; the allowed radius is %dm", e.DistanceMeters, e.RadiusMeters)
}

func (e *OutsideGeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}
