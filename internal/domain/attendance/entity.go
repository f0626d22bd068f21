package attendance

import (
	"time"
)

// Attendance status values
const (
	StatusPresent = "PRESENT"
	StatusHalfDay = "HALF_DAY"
	StatusAbsent  = "ABSENT"
	StatusOnLeave = "ON_LEAVE"
)

// Work mode values
const (
	ModeOffice = "OFFICE"
	ModeWFH    = "WFH"
)

type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	DistanceMeters    *int
	WorkMode          string
	Status            string
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

// OutOfRangeLog records a rejected check-in attempt outside the geofence.
type OutOfRangeLog struct {
	ID             string
	EmployeeID     string
	Latitude       float64
	Longitude      float64
	DistanceMeters int
	RadiusMeters   int
	OfficeID       *string
	AttemptedAt    time.Time

	// DTO / Join
	EmployeeName *string
}

// WFH request status values
const (
	WFHPending  = "PENDING"
	WFHApproved = "APPROVED"
	WFHRejected = "REJECTED"
)

type WFHRequest struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Reason     string
	Status     string
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}
