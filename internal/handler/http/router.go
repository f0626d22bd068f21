package http

import (
	"log/slog"
	"os"

	"github.com/emsuite/ems-backend-go/internal/config"
	"github.com/emsuite/ems-backend-go/internal/handler/http/middleware"
	"github.com/emsuite/ems-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	geofenceHandler GeofenceHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
	taskHandler TaskHandler,
	notificationHandler NotificationHandler,
	dashboardHandler DashboardHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	loginLimiter := middleware.NewRateLimiter(1, 5)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.With(loginLimiter.Handler).Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// The event stream authenticates with its own short-lived token
		r.Get("/stream", dashboardHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Post("/sse-token", authHandler.SSEToken)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/my", employeeHandler.MyProfile)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Get("/{id}", employeeHandler.Get)
					r.Put("/{id}", employeeHandler.Update)
					r.Post("/{id}/activate", employeeHandler.Activate)
					r.Post("/{id}/deactivate", employeeHandler.Deactivate)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.TodayStatus)
				r.Get("/my", attendanceHandler.MyAttendance)
				r.Get("/my/summary", attendanceHandler.MyMonthlySummary)

				r.Route("/wfh", func(r chi.Router) {
					r.Post("/", attendanceHandler.RequestWFH)
					r.Get("/my", attendanceHandler.MyWFHRequests)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", attendanceHandler.ListWFHRequests)
						r.Post("/{id}/decide", attendanceHandler.DecideWFH)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Put("/{id}", attendanceHandler.ManualUpdate)
					r.Get("/out-of-range", attendanceHandler.OutOfRangeLogs)
				})
			})

			r.Route("/geofence", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/offices", geofenceHandler.ListOffices)
				r.Post("/offices", geofenceHandler.CreateOffice)
				r.Put("/offices/{id}", geofenceHandler.UpdateOffice)
				r.Delete("/offices/{id}", geofenceHandler.DeleteOffice)
				r.Get("/settings", geofenceHandler.GetSettings)
				r.Put("/settings", geofenceHandler.UpdateSettings)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my/slips", payrollHandler.MySlips)
				r.Get("/my/slips/{id}", payrollHandler.MySlip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Route("/structures", func(r chi.Router) {
						r.Get("/", payrollHandler.ListStructures)
						r.Put("/", payrollHandler.UpsertStructure)
						r.Get("/{employeeID}", payrollHandler.GetStructure)
						r.Delete("/{employeeID}", payrollHandler.DeleteStructure)
					})

					r.Route("/templates", func(r chi.Router) {
						r.Get("/", payrollHandler.ListTemplates)
						r.Post("/", payrollHandler.CreateTemplate)
						r.Delete("/{id}", payrollHandler.DeleteTemplate)
						r.Post("/{id}/apply", payrollHandler.ApplyTemplate)
					})

					r.Route("/records", func(r chi.Router) {
						r.Get("/", payrollHandler.ListRecords)
						r.Post("/generate", payrollHandler.Generate)
						r.Post("/mark-paid", payrollHandler.MarkPaid)
						r.Get("/bank-transfer", payrollHandler.BankTransferCSV)
						r.Get("/{id}", payrollHandler.GetRecord)
						r.Patch("/{id}/override", payrollHandler.Override)
					})
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", leaveHandler.ListTypes)
				r.Post("/requests", leaveHandler.Apply)
				r.Get("/requests/my", leaveHandler.MyRequests)
				r.Post("/requests/{id}/cancel", leaveHandler.Cancel)
				r.Get("/balances/my", leaveHandler.MyBalances)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/types", leaveHandler.CreateType)
					r.Put("/types/{id}", leaveHandler.UpdateType)
					r.Delete("/types/{id}", leaveHandler.DeleteType)
					r.Get("/requests", leaveHandler.List)
					r.Post("/requests/{id}/decide", leaveHandler.Decide)
					r.Get("/balances/{employeeID}", leaveHandler.Balances)
					r.Post("/carry-forward", leaveHandler.CarryForward)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Post("/", holidayHandler.Apply)
				r.Get("/my", holidayHandler.MyRequests)
				r.Get("/quota/my", holidayHandler.MyQuota)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", holidayHandler.List)
					r.Post("/{id}/decide", holidayHandler.Decide)
					r.Get("/quotas", holidayHandler.Quotas)
					r.Put("/quotas", holidayHandler.SetQuota)
					r.Put("/quotas/bulk", holidayHandler.BulkSetQuota)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/my", taskHandler.MyTasks)
				r.Get("/{id}", taskHandler.Get)
				r.Put("/{id}/progress", taskHandler.UpdateProgress)
				r.Post("/{id}/comments", taskHandler.AddComment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", taskHandler.List)
					r.Post("/", taskHandler.Create)
					r.Delete("/{id}", taskHandler.Delete)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", notificationHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", notificationHandler.Create)
					r.Delete("/{id}", notificationHandler.Delete)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/counters", dashboardHandler.Counters)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/attendance", reportHandler.Attendance)
				r.Get("/leave", reportHandler.Leave)
				r.Get("/payroll", reportHandler.Payroll)
				r.Get("/lop", reportHandler.LOP)
				r.Get("/tasks", reportHandler.Tasks)
				r.Get("/holidays", reportHandler.Holidays)
			})
		})
	})

	return r
}
