package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-management-backend/internal/cache"
	"invoice-management-backend/internal/clock"
	handler "invoice-management-backend/internal/handlers"
	"invoice-management-backend/internal/repository"
	"invoice-management-backend/internal/services/invoices"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *zap.Logger) {
	views := cache.NewViewCache()
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	invoiceService := invoices.New(invoiceRepo, views, auditRepo, clock.System(), log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, views, log)

	r.Use(handler.FailureBoundary(log))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	dashboard := r.Group("/dashboard/invoices")
	{
		dashboard.GET("", invoiceHandler.List)
		dashboard.GET("/:id", invoiceHandler.Get)
		dashboard.POST("", invoiceHandler.Create)
		dashboard.PUT("/:id", invoiceHandler.Update)
		dashboard.DELETE("/:id", invoiceHandler.Delete)
	}
}
