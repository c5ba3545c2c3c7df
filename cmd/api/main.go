package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mosala-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/mosala-hr/payroll-backend-go/internal/handler/http"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
	"github.com/mosala-hr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/mosala-hr/payroll-backend-go/internal/service/employee"
	financeService "github.com/mosala-hr/payroll-backend-go/internal/service/finance"
	leaveService "github.com/mosala-hr/payroll-backend-go/internal/service/leave"
	payrollService "github.com/mosala-hr/payroll-backend-go/internal/service/payroll"
	taxService "github.com/mosala-hr/payroll-backend-go/internal/service/tax"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	monthRepo := postgresql.NewMonthRepository(db)
	accrualRepo := postgresql.NewAccrualRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	bracketRepo := postgresql.NewBracketRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	creditRepo := postgresql.NewCreditRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	componentRepo := postgresql.NewComponentRepository(db)
	computationRepo := postgresql.NewComputationRepository(db)

	aggregator := attendanceService.NewAggregatorService(monthRepo)
	attendanceSvc := attendanceService.NewService(monthRepo)
	employeeSvc := employeeService.NewService(employeeRepo)
	taxSvc := taxService.NewService(bracketRepo)
	accrualEngine := leaveService.NewAccrualEngine(accrualRepo, settingsRepo, aggregator)
	leaveSvc := leaveService.NewService(accrualRepo, deductionRepo)
	ledger := financeService.NewResolver(advanceRepo, creditRepo)
	financeSvc := financeService.NewService(advanceRepo, creditRepo)
	payrollAdminSvc := payrollService.NewService(settingsRepo, componentRepo)
	engine := payrollService.NewEngine(
		employeeRepo,
		settingsRepo,
		componentRepo,
		computationRepo,
		deductionRepo,
		aggregator,
		taxSvc,
		ledger,
	)
	batchRunner := payrollService.NewBatchRunner(engine, employeeRepo)

	router := appHTTP.NewRouter(appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc, accrualEngine),
		Tax:        appHTTP.NewTaxHandler(taxSvc),
		Finance:    appHTTP.NewFinanceHandler(financeSvc, ledger),
		Payroll:    appHTTP.NewPayrollHandler(payrollAdminSvc, engine, batchRunner),
	}, cfg.App.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
