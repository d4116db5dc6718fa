package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/config"
	"sige/internal/costs"
	"sige/internal/employee"
	"sige/internal/eventbus"
	"sige/internal/integration"
	"sige/internal/invoice"
	"sige/internal/kpi"
	"sige/internal/material"
	"sige/internal/messaging/kafka"
	"sige/internal/middleware"
	"sige/internal/payroll"
	"sige/internal/proposal"
	"sige/internal/punch"
	"sige/internal/rbac"
	"sige/internal/rdo"
	"sige/internal/receivable"
	"sige/internal/saga"
	"sige/internal/schedule"
	"sige/internal/tenant"
	"sige/internal/worksite"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	logger := zap.L()

	// --- Repositories ---
	accountingRepo := accounting.NewRepository(gormDB)
	costsRepo := costs.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	materialRepo := material.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	proposalRepo := proposal.NewRepository(gormDB)
	punchRepo := punch.NewRepository(gormDB)
	rdoRepo := rdo.NewRepository(gormDB)
	receivableRepo := receivable.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	worksiteRepo := worksite.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	sagaStore := saga.NewStore(gormDB)

	// --- Event bus ---
	bus := eventbus.New(logger)
	bus.SetOutbox(outboxRepo)

	// --- Services ---
	punchService := punch.NewService(gormDB, punchRepo, scheduleRepo, bus, logger)
	invoiceService := invoice.NewService(gormDB, invoiceRepo, bus, logger)
	proposalService := proposal.NewService(gormDB, proposalRepo, bus, logger)
	materialService := material.NewService(gormDB, materialRepo, worksiteRepo, bus, logger)
	kpiEngine := kpi.NewEngine(employeeRepo, punchRepo, scheduleRepo, costsRepo, kpi.DefaultOptions(), logger)
	payrollService := payroll.NewService(gormDB, payrollRepo, employeeRepo, kpiEngine, bus, logger)
	employeeService := employee.NewService(gormDB, employeeRepo, sagaStore, logger)
	rdoService := rdo.NewService(gormDB, rdoRepo, worksiteRepo, sagaStore, logger)

	// --- Accounting integration handlers ---
	integration.Register(bus, accountingRepo, receivableRepo, worksiteRepo,
		invoiceRepo, proposalRepo, employeeRepo, punchService, logger)

	// --- RBAC + tenant ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}
	resolver := tenant.NewResolver(gormDB, cfg.AllowTenantAutodetect, logger)

	// --- Handlers ---
	punchHandler := punch.NewHandler(punchService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	proposalHandler := proposal.NewHandler(proposalService)
	materialHandler := material.NewHandler(materialService)
	kpiHandler := kpi.NewHandler(kpiEngine)
	payrollHandler := payroll.NewHandler(payrollService)
	employeeHandler := employee.NewHandler(employeeService)
	rdoHandler := rdo.NewHandler(rdoService, sagaStore)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(50, 100),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.TenantMiddleware(resolver),
		middleware.ContextLogger(logger),
		middleware.Idempotency(rdb),
	)
	{
		punch.RegisterRoutes(api, punchHandler)
		invoice.RegisterRoutes(api, invoiceHandler)
		proposal.RegisterRoutes(api, proposalHandler)
		material.RegisterRoutes(api, materialHandler)
		kpi.RegisterRoutes(api, kpiHandler)
		rdo.RegisterRoutes(api, rdoHandler)
		payroll.RegisterRoutes(api, payrollHandler,
			middleware.Authorize(rbacService, "folha", "processar"),
			middleware.Authorize(rbacService, "folha", "fechar"),
		)
		employee.RegisterRoutes(api, employeeHandler,
			middleware.Authorize(rbacService, "funcionario", "salario"),
		)
	}

	return nil
}
