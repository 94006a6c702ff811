package handler

import (
	"log"
	"net/http"
	"time"

	"cafe-billing/config"
	"cafe-billing/internal/ledger"
	"cafe-billing/internal/middleware"
	"cafe-billing/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// NewRouter wires every /api/v1 route onto a fresh engine.
func NewRouter(svc *ledger.Service, cfg *config.Config, errorLog *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", idempotencyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", idempotencyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	defaultTax, err := decimal.NewFromString(cfg.Ledger.DefaultTaxPercent)
	if err != nil {
		log.Printf("Invalid DEFAULT_TAX_PERCENT %q, using 0", cfg.Ledger.DefaultTaxPercent)
		defaultTax = decimal.Zero
	}

	api := r.Group("/api/v1")
	admin := middleware.AuthMiddleware(models.RoleAdmin)

	authHandler := NewAuthHandler(svc, errorLog)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.PUT("/password", admin, authHandler.ChangePassword)
	}

	portalHandler := NewPortalHandler(svc, errorLog)
	api.POST("/portal/login", authHandler.PortalLogin)
	portalRoutes := api.Group("/portal")
	portalRoutes.Use(middleware.AuthMiddleware(models.RoleCustomer))
	{
		portalRoutes.GET("/me", portalHandler.Me)
		portalRoutes.GET("/bills", portalHandler.Bills)
		portalRoutes.GET("/payments", portalHandler.Payments)
	}

	customerHandler := NewCustomerHandler(svc, errorLog)
	customerRoutes := api.Group("/customers", admin)
	{
		customerRoutes.GET("", customerHandler.ListCustomers)
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("/:id", customerHandler.GetCustomer)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
		customerRoutes.PUT("/:id/credentials", customerHandler.SetCredentials)
	}

	inventoryHandler := NewInventoryHandler(svc, errorLog)
	productRoutes := api.Group("/products", admin)
	{
		productRoutes.GET("", inventoryHandler.ListProducts)
		productRoutes.POST("", inventoryHandler.CreateProduct)
		productRoutes.GET("/:id", inventoryHandler.GetProduct)
		productRoutes.PUT("/:id", inventoryHandler.UpdateProduct)
		productRoutes.DELETE("/:id", inventoryHandler.DeleteProduct)
		productRoutes.POST("/:id/stock", inventoryHandler.AddStock)
	}
	api.GET("/inventory/alerts", admin, inventoryHandler.GetLowStockAlerts)

	supplierHandler := NewSupplierHandler(svc, errorLog)
	supplierRoutes := api.Group("/suppliers", admin)
	{
		supplierRoutes.GET("", supplierHandler.ListSuppliers)
		supplierRoutes.POST("", supplierHandler.CreateSupplier)
		supplierRoutes.GET("/:id", supplierHandler.GetSupplier)
		supplierRoutes.PUT("/:id", supplierHandler.UpdateSupplier)
		supplierRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
	}

	billingHandler := NewBillingHandler(svc, cfg.Site, defaultTax, errorLog)
	billingRoutes := api.Group("/billing", admin)
	{
		billingRoutes.POST("/quote", billingHandler.Quote)
		billingRoutes.POST("/bills", billingHandler.CreateBill)
		billingRoutes.GET("/bills", billingHandler.ListBills)
		billingRoutes.GET("/bills/:id", billingHandler.GetBill)
		billingRoutes.GET("/bills/:id/pdf", billingHandler.BillPDF)
		billingRoutes.GET("/bills/:id/share", billingHandler.ShareBill)
		billingRoutes.GET("/next-bill-no", billingHandler.GetNextBillNo)
	}

	paymentHandler := NewPaymentHandler(svc, errorLog)
	api.GET("/payments", admin, paymentHandler.ListPayments)
	api.POST("/payments", admin, paymentHandler.RecordPayment)

	adminHandler := NewAdminHandler(svc, errorLog)
	api.GET("/dashboard", admin, adminHandler.GetDashboardStats)
	api.GET("/login-history", admin, adminHandler.GetLoginHistory)

	managerHandler := NewManagerHandler(svc, errorLog)
	reportRoutes := api.Group("/reports", admin)
	{
		reportRoutes.GET("/sales", managerHandler.GetSalesReport)
		reportRoutes.GET("/:file", managerHandler.DownloadReport)
	}

	publicHandler := NewPublicHandler(cfg.Site)
	api.GET("/public/site-info", publicHandler.GetSiteInfo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}
