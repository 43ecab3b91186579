// Package router assembles the gin engine: services, handlers, middleware and
// the /api/v1 route table.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/chart"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/statement"

	_ "fintrack/internal/docs" // swagger docs
)

// Options are the collaborators the engine needs besides the database.
// Zero values are usable: no cache, built-in bank schemas, PNG charts and
// no upload limit.
type Options struct {
	SummaryCache   *services.SummaryCache
	Registry       *statement.Registry
	Renderer       chart.Renderer
	ImportMaxBytes int64
}

// New builds the application engine on top of db.
func New(db *gorm.DB, opts Options) *gin.Engine {
	if opts.Renderer == nil {
		opts.Renderer = chart.NewPNG()
	}

	// Services
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db, opts.SummaryCache)
	incomeService := services.NewIncomeService(db, opts.SummaryCache)
	summaryService := services.NewSummaryService(db, opts.SummaryCache)
	reportService := services.NewReportService(db, opts.Renderer)
	importService := services.NewImportService(db, opts.Registry, opts.SummaryCache)
	budgetAlertService := services.NewBudgetAlertService(db, userService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	reportHandler := handlers.NewReportHandler(summaryService, reportService)
	importHandler := handlers.NewImportHandler(importService, auditService)
	budgetAlertHandler := handlers.NewBudgetAlertHandler(budgetAlertService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/budget", authHandler.SetBudgetLimit)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/history", expenseHandler.ListExpenseHistory)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.ListIncomes)
	incomes.GET("/history", incomeHandler.ListIncomeHistory)
	incomes.GET("/:id", incomeHandler.GetIncome)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	protected.GET("/summary", reportHandler.GetSummary)
	protected.GET("/expense-trends", reportHandler.GetExpenseTrends)
	protected.GET("/analysis", reportHandler.GetAnalysis)
	protected.GET("/export/:format", reportHandler.Export)

	protected.POST("/import-transactions", middleware.BodyLimit(opts.ImportMaxBytes), importHandler.ImportTransactions)
	protected.GET("/budget-alert", budgetAlertHandler.GetBudgetAlert)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
