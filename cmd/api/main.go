package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/emsuite/ems-backend-go/internal/config"
	appHTTP "github.com/emsuite/ems-backend-go/internal/handler/http"
	"github.com/emsuite/ems-backend-go/internal/pkg/cron"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/emsuite/ems-backend-go/internal/pkg/email"
	"github.com/emsuite/ems-backend-go/internal/pkg/jwt"
	"github.com/emsuite/ems-backend-go/internal/pkg/oauth"
	"github.com/emsuite/ems-backend-go/internal/pkg/sse"
	"github.com/emsuite/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/emsuite/ems-backend-go/internal/service/attendance"
	authService "github.com/emsuite/ems-backend-go/internal/service/auth"
	dashboardService "github.com/emsuite/ems-backend-go/internal/service/dashboard"
	employeeService "github.com/emsuite/ems-backend-go/internal/service/employee"
	geofenceService "github.com/emsuite/ems-backend-go/internal/service/geofence"
	holidayService "github.com/emsuite/ems-backend-go/internal/service/holiday"
	leaveService "github.com/emsuite/ems-backend-go/internal/service/leave"
	notificationService "github.com/emsuite/ems-backend-go/internal/service/notification"
	payrollService "github.com/emsuite/ems-backend-go/internal/service/payroll"
	reportService "github.com/emsuite/ems-backend-go/internal/service/report"
	taskService "github.com/emsuite/ems-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	geofenceRepo := postgresql.NewGeofenceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, jwtService, googleService, emailService, cfg.App.FrontendURL, cfg.OAuth2Google.Enabled)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, emailService, cfg.App.FrontendURL)
	geofenceSvc := geofenceService.NewGeofenceService(geofenceRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, leaveRepo, employeeRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, geofenceRepo, dashboardSvc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, leaveRepo, holidayRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, attendanceRepo, employeeRepo, emailService)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, employeeRepo)
	taskSvc := taskService.NewTaskService(taskRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	geofenceHandler := appHTTP.NewGeofenceHandler(geofenceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, jwtService, hub)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	// Keeps long-lived stream clients fresh even on quiet days
	scheduler := cron.NewScheduler()
	scheduler.AddJob("publish-dashboard-counters", time.Hour, func(ctx context.Context) error {
		return dashboardSvc.PublishCounters(ctx)
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		geofenceHandler,
		payrollHandler,
		leaveHandler,
		holidayHandler,
		taskHandler,
		notificationHandler,
		dashboardHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
