package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emsuite/ems-backend-go/internal/config"
	"github.com/emsuite/ems-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopHandler satisfies every handler interface so routing behavior can be
// exercised without real services behind it.
type nopHandler struct{}

func (nopHandler) Activate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) AddComment(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Apply(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Attendance(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Balances(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) BankTransferCSV(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) BulkSetQuota(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Cancel(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CarryForward(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ChangePassword(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CheckIn(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CheckOut(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Counters(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Create(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CreateOffice(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) CreateType(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Deactivate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Decide(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) DecideWFH(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Delete(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) DeleteOffice(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) DeleteStructure(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) DeleteType(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Generate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Get(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) GetRecord(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) GetSettings(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) GetStructure(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Holidays(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) LOP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Leave(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) List(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListOffices(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListRecords(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListStructures(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListTemplates(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListTypes(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ListWFHRequests(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Login(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Logout(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ManualUpdate(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MarkPaid(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Me(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyAttendance(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyBalances(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyMonthlySummary(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyProfile(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyQuota(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyRequests(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MySlip(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MySlips(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyTasks(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) MyWFHRequests(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) OutOfRangeLogs(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Override(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Payroll(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Quotas(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) RefreshToken(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) RequestWFH(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) ResetPassword(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) SSEToken(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) SetQuota(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Stream(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Tasks(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) TodayStatus(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) Update(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) UpdateOffice(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) UpdateType(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (nopHandler) UpsertStructure(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"

	h := nopHandler{}
	return NewRouter(cfg, jwt.NewJWTService("test-secret", "15m", "168h"), h, h, h, h, h, h, h, h, h, h, h)
}

func TestRouter_RejectsNonJSONContentType(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("email=x"))
	req.Header.Set("Content-Type", "text/plain")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_AcceptsJSONContentType(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_OverrideUsesPatch(t *testing.T) {
	router := newTestRouter()

	// PATCH matches the route and proceeds into the auth stack
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/payroll/records/rec-001/override", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// PUT is not part of the contract
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/payroll/records/rec-001/override", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
