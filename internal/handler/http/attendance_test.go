package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	listResp attendance.ListAttendanceResponse
}

func (s *stubAttendanceService) MyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.listResp, nil
}

func (s *stubAttendanceService) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.listResp, nil
}

func listResponseFixture() attendance.ListAttendanceResponse {
	return attendance.ListAttendanceResponse{
		TotalCount: 1,
		Page:       1,
		Limit:      20,
		TotalPages: 1,
		Records: []attendance.AttendanceResponse{
			{
				ID:         "att-001",
				EmployeeID: "emp-001",
				Date:       "2026-08-28",
				WorkMode:   attendance.ModeOffice,
				Status:     attendance.StatusPresent,
			},
		},
	}
}

type listEnvelope struct {
	Success bool                            `json:"success"`
	Data    []attendance.AttendanceResponse `json:"data"`
	Meta    struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func TestMyAttendance_ReturnsRecordsWithMeta(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{listResp: listResponseFixture()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/my", nil)
	handler.MyAttendance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "att-001", body.Data[0].ID)
	assert.Equal(t, int64(1), body.Meta.TotalItems)
	assert.Equal(t, 1, body.Meta.TotalPages)
}

func TestListAttendance_ReturnsRecordsWithMeta(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{listResp: listResponseFixture()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance?page=1&limit=20", nil)
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "emp-001", body.Data[0].EmployeeID)
}
