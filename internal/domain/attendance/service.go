package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn processes employee check-in with geofence validation
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut processes employee check-out
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// TodayStatus reports the authenticated employee's state machine position
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// MyAttendance retrieves attendance records for the authenticated employee
	MyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// MyMonthlySummary aggregates the authenticated employee's month
	MyMonthlySummary(ctx context.Context, month string) (MonthlySummaryResponse, error)

	// List retrieves attendance records with filters (admin)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ManualUpdate corrects an attendance record (admin)
	ManualUpdate(ctx context.Context, req ManualUpdateRequest) (AttendanceResponse, error)

	// OutOfRangeLogs lists rejected check-in attempts (admin)
	OutOfRangeLogs(ctx context.Context, startDate, endDate string) ([]OutOfRangeLogResponse, error)

	// RequestWFH files a work-from-home request for a date
	RequestWFH(ctx context.Context, req CreateWFHRequest) (WFHRequestResponse, error)

	// MyWFHRequests lists the authenticated employee's WFH requests
	MyWFHRequests(ctx context.Context) ([]WFHRequestResponse, error)

	// ListWFHRequests lists pending WFH requests (admin)
	ListWFHRequests(ctx context.Context, status string) ([]WFHRequestResponse, error)

	// DecideWFH approves or rejects a WFH request (admin)
	DecideWFH(ctx context.Context, req DecideWFHRequest) (WFHRequestResponse, error)
}
