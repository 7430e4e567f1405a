package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/compliance-risk-go/internal/config"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	appHTTP "github.com/cmlabs-hris/compliance-risk-go/internal/handler/http"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/cron"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/database"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/sse"
	"github.com/cmlabs-hris/compliance-risk-go/internal/repository/postgresql"
	complianceService "github.com/cmlabs-hris/compliance-risk-go/internal/service/compliance"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	rulesLoader := staterules.NewFileLoader(cfg.Engine.StateRulesPath)
	resolver := complianceService.NewScopeResolver(payrollRepo)

	complianceSvc := complianceService.NewComplianceService(
		employeeRepo,
		attendanceRepo,
		payrollRepo,
		reportRepo,
		resolver,
		rulesLoader,
		hub,
		cfg.Engine,
	)
	coordinator := complianceService.NewCoordinator(complianceSvc, cfg.Engine.DebounceDelay)
	defer coordinator.Stop()

	scheduler := cron.NewScheduler()
	cron.NewComplianceJobs(coordinator).RegisterJobs(scheduler, cfg.Engine.ScanInterval)
	scheduler.Start()
	defer scheduler.Stop()

	complianceHandler := appHTTP.NewComplianceHandler(complianceSvc, coordinator)
	eventsHandler := appHTTP.NewEventsHandler(JWTService, hub)

	router := appHTTP.NewRouter(
		JWTService,
		complianceHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
