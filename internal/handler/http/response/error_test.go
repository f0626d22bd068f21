package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_OutsideGeofenceCarriesFigures(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &attendance.OutsideGeofenceError{DistanceMeters: 736, RadiusMeters: 500})

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "736", body.Error.Details["distance_meters"])
	assert.Equal(t, "500", body.Error.Details["radius_meters"])
}

func TestHandleError_OutsideGeofenceSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, attendance.ErrOutsideGeofence)

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Empty(t, body.Error.Details)
}
