package routes

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/handlers"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	"github.com/BruksfildServices01/studio-manager/internal/infra/payments"
	infraRepo "github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/infra/storage"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/middleware"
	ucAccounting "github.com/BruksfildServices01/studio-manager/internal/usecase/accounting"
	ucAppointment "github.com/BruksfildServices01/studio-manager/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/studio-manager/internal/usecase/catalog"
	ucContract "github.com/BruksfildServices01/studio-manager/internal/usecase/contract"
	ucCustomer "github.com/BruksfildServices01/studio-manager/internal/usecase/customer"
	ucDashboard "github.com/BruksfildServices01/studio-manager/internal/usecase/dashboard"
	ucPayroll "github.com/BruksfildServices01/studio-manager/internal/usecase/payroll"
	ucRetouch "github.com/BruksfildServices01/studio-manager/internal/usecase/retouch"
)

// Deps are the process-wide singletons built by the serve command.
// Payments and Summarizer stay nil when their feature is not configured.
type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	Log        *slog.Logger
	Metrics    *metrics.Metrics
	Audit      *audit.Dispatcher
	Cache      cache.Cache
	Storage    storage.Storage
	Payments   payments.Gateway
	Summarizer customer.Summarizer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(logger.GinMiddleware(d.Log))
	r.Use(middleware.MetricsMiddleware(d.Metrics))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	contractRepo := infraRepo.NewContractGormRepository(d.DB)
	customerRepo := infraRepo.NewCustomerGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	retouchRepo := infraRepo.NewRetouchGormRepository(d.DB)
	payrollRepo := infraRepo.NewPayrollGormRepository(d.DB)
	transactionRepo := infraRepo.NewTransactionGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, d.Metrics),
		ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Metrics),
		ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Metrics),
		ucAppointment.NewMarkNoShow(appointmentRepo, d.Audit, d.Metrics),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
		ucAppointment.NewListUpcomingAppointments(appointmentRepo),
		availabilityUC,
	)

	// ======================================================
	// USE CASES: CONTRACTS
	// ======================================================
	contractHandler := handlers.NewContractHandler(
		ucContract.NewCreateContract(contractRepo, d.Audit),
		ucContract.NewGetContract(contractRepo),
		ucContract.NewListContracts(contractRepo),
		ucContract.NewUpdateContract(contractRepo, d.Audit),
		ucContract.NewChangeContractStatus(contractRepo, d.Audit, d.Metrics),
		ucContract.NewAddContractNote(contractRepo),
		ucContract.NewManageContractServices(contractRepo, d.Audit),
		ucContract.NewRecordContractPayment(contractRepo, d.Audit, d.Metrics),
		ucContract.NewCreatePaymentLink(contractRepo, d.Payments, cfg.PaymentNotificationURL, d.Audit),
	)
	webhookHandler := handlers.NewPaymentWebhookHandler(
		ucContract.NewHandlePaymentNotification(contractRepo, d.Payments, d.Audit, d.Metrics, d.Log),
	)

	// ======================================================
	// USE CASES: CRM, CATALOG, RETOUCH, STAFF, ACCOUNTING
	// ======================================================
	customerHandler := handlers.NewCustomerHandler(
		ucCustomer.NewListCustomers(customerRepo),
		ucCustomer.NewGetCustomer(customerRepo),
		ucCustomer.NewSaveCustomer(customerRepo, d.Audit),
		ucCustomer.NewAddCustomerNote(customerRepo),
		ucCustomer.NewSummarizeNotes(customerRepo, d.Summarizer, d.Audit, d.Metrics, d.Log),
	)

	catalogHandler := handlers.NewCatalogHandler(
		ucCatalog.NewCatalog(catalogRepo, d.Cache, cfg.CacheTTL, d.Audit, d.Metrics, d.Log),
	)

	retouchHandler := handlers.NewRetouchHandler(
		ucRetouch.NewListRetouchItems(retouchRepo),
		ucRetouch.NewGetRetouchItem(retouchRepo),
		ucRetouch.NewCreateRetouchItem(retouchRepo, d.Audit),
		ucRetouch.NewUpdateRetouchItem(retouchRepo, d.Audit),
		ucRetouch.NewChangeRetouchStatus(retouchRepo, d.Audit, d.Metrics),
		ucRetouch.NewAddRetouchNote(retouchRepo),
		ucRetouch.NewUploadRetouchImage(retouchRepo, d.Storage, d.Audit),
	)

	staffHandler := handlers.NewStaffHandler(
		ucPayroll.NewManageStaff(payrollRepo, d.Audit),
		ucPayroll.NewRecordAttendance(payrollRepo),
		ucPayroll.NewCalculatePayroll(payrollRepo),
	)

	accountingHandler := handlers.NewAccountingHandler(
		ucAccounting.NewManageTransactions(transactionRepo, d.Audit),
		ucAccounting.NewReports(transactionRepo),
	)

	dashboardHandler := handlers.NewDashboardHandler(
		ucDashboard.NewGetOverview(dashboardRepo, d.Cache, cfg.CacheTTL, d.Metrics, d.Log),
	)

	// ======================================================
	// DB-BACKED HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	studioHandler := handlers.NewStudioHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(d.DB, availabilityUC, createAppointmentUC)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if local, ok := d.Storage.(*storage.Local); ok && strings.HasPrefix(local.PublicURL(), "/") {
		r.Static(local.PublicURL(), local.Dir())
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/catalog", publicHandler.Catalog)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/consultations", publicHandler.RequestConsultation)
		}

		api.POST("/payments/webhook", webhookHandler.Notify)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/studio", studioHandler.Get)
			secured.PATCH("/studio", studioHandler.Update)

			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			secured.GET("/dashboard", dashboardHandler.Overview)

			// CUSTOMERS
			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PUT("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)
			secured.POST("/customers/:id/notes", customerHandler.AddNote)
			secured.POST("/customers/:id/summarize", customerHandler.Summarize)

			// CATALOG
			secured.GET("/catalog", catalogHandler.List)
			secured.POST("/catalog", catalogHandler.Create)
			secured.GET("/catalog/:id", catalogHandler.Get)
			secured.PUT("/catalog/:id", catalogHandler.Update)
			secured.DELETE("/catalog/:id", catalogHandler.Delete)

			// CONTRACTS
			secured.GET("/contracts/statuses", contractHandler.Statuses)
			secured.GET("/contracts", contractHandler.List)
			secured.POST("/contracts", contractHandler.Create)
			secured.GET("/contracts/:id", contractHandler.Get)
			secured.PATCH("/contracts/:id", contractHandler.Update)
			secured.POST("/contracts/:id/status", contractHandler.ChangeStatus)
			secured.POST("/contracts/:id/notes", contractHandler.AddNote)
			secured.POST("/contracts/:id/services", contractHandler.AddService)
			secured.DELETE("/contracts/:id/services/:lineId", contractHandler.RemoveService)
			secured.POST("/contracts/:id/payments", contractHandler.RecordPayment)
			secured.POST("/contracts/:id/payment-link", contractHandler.PaymentLink)

			// APPOINTMENTS
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/upcoming", appointmentHandler.ListUpcoming)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/statuses", appointmentHandler.Statuses)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

			// RETOUCH
			secured.GET("/retouch/statuses", retouchHandler.Statuses)
			secured.GET("/retouch", retouchHandler.List)
			secured.POST("/retouch", retouchHandler.Create)
			secured.GET("/retouch/:id", retouchHandler.Get)
			secured.PATCH("/retouch/:id", retouchHandler.Update)
			secured.POST("/retouch/:id/status", retouchHandler.ChangeStatus)
			secured.POST("/retouch/:id/notes", retouchHandler.AddNote)
			secured.POST("/retouch/:id/images/:slot", retouchHandler.Upload)

			// STAFF + PAYROLL
			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", staffHandler.Create)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.PUT("/staff/:id", staffHandler.Update)
			secured.DELETE("/staff/:id", staffHandler.Delete)
			secured.GET("/staff/:id/attendance", staffHandler.ListAttendance)
			secured.GET("/staff/:id/rewards", staffHandler.ListRewards)
			secured.GET("/staff/:id/payroll", staffHandler.Payslip)
			secured.POST("/attendance", staffHandler.RecordAttendance)
			secured.POST("/rewards", staffHandler.AddReward)
			secured.DELETE("/rewards/:id", staffHandler.DeleteReward)
			secured.GET("/payroll", staffHandler.Payroll)

			// ACCOUNTING
			secured.GET("/transactions", accountingHandler.List)
			secured.POST("/transactions", accountingHandler.Create)
			secured.GET("/transactions/:id", accountingHandler.Get)
			secured.PUT("/transactions/:id", accountingHandler.Update)
			secured.DELETE("/transactions/:id", accountingHandler.Delete)
			secured.GET("/reports/summary", accountingHandler.Summary)
			secured.GET("/reports/categories", accountingHandler.ByCategory)
			secured.GET("/reports/monthly", accountingHandler.Monthly)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
