package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-hrpay/internal/compensation"
	"go-hrpay/internal/department"
	"go-hrpay/internal/employee"
	"go-hrpay/internal/leave"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/paycomponent"
	"go-hrpay/internal/payroll"
	"go-hrpay/internal/payrollconfig"
	"go-hrpay/internal/payslip"
	"go-hrpay/internal/rbac"
	"go-hrpay/internal/rbac/infra"
	"go-hrpay/internal/shared/counter"
	"go-hrpay/internal/tax"
	"go-hrpay/internal/timeentry"
	"go-hrpay/internal/timesheet"
	"go-hrpay/internal/workschedule"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payComponentRepo := paycomponent.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payrollConfigRepo := payrollconfig.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	taxRepo := tax.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	workScheduleRepo := workschedule.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	compensationService := compensation.NewService(db, compensationRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo)
	payComponentService := paycomponent.NewService(db, payComponentRepo)
	payrollConfigService := payrollconfig.NewService(db, payrollConfigRepo, rdb)
	taxService := tax.NewService(db, taxRepo, payrollConfigService)
	timeEntryService := timeentry.NewService(db, timeEntryRepo, outboxRepo)
	workScheduleService := workschedule.NewService(db, workScheduleRepo)
	timesheetService := timesheet.NewService(db, timesheetRepo, timeEntryRepo, workScheduleService)
	payslipService := payslip.NewService(
		db,
		payslipRepo,
		timesheetRepo,
		leaveRepo,
		payComponentRepo,
		counterRepo,
		outboxRepo,
		payrollConfigService,
		taxService,
	)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, payslipRepo, payslipService)

	// --- Handlers ---
	compensationHandler := compensation.NewHandler(compensationService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	payComponentHandler := paycomponent.NewHandler(payComponentService)
	payrollHandler := payroll.NewHandler(payrollService)
	payrollConfigHandler := payrollconfig.NewHandler(payrollConfigService)
	payslipHandler := payslip.NewHandler(payslipService)
	rbacHandler := rbac.NewHandler(rbacService)
	taxHandler := tax.NewHandler(taxService)
	timeEntryHandler := timeentry.NewHandler(timeEntryService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	workScheduleHandler := workschedule.NewHandler(workScheduleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		compensation.RegisterRoutes(api, compensationHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		paycomponent.RegisterRoutes(api, payComponentHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		payrollconfig.RegisterRoutes(api, payrollConfigHandler, rbacService)
		payslip.RegisterRoutes(api, payslipHandler, rbacService, rdb)
		tax.RegisterRoutes(api, taxHandler, rbacService)
		timeentry.RegisterRoutes(api, timeEntryHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		workschedule.RegisterRoutes(api, workScheduleHandler, rbacService)
	}

	rbac.RegisterRoutes(router, rbacHandler, rbacService)

	return nil
}
