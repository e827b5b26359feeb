package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cashbook/internal/access"
	"cashbook/internal/config"
	"cashbook/internal/database"
	"cashbook/internal/handlers"
	"cashbook/internal/logger"
	"cashbook/internal/middleware"
	"cashbook/internal/services"
	"cashbook/internal/validator"

	_ "cashbook/internal/docs" // Import swagger docs
)

// @title           Cashbook API
// @version         1.0
// @description     Multi-campus cash ledger. Tracks cash-in and cash-out entries per cash book, with campus-scoped access control and downloadable running-balance reports.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	resolver := access.NewResolver(db)
	userService := services.NewUserService(db)
	roleService := services.NewRoleService(db)
	campusService := services.NewCampusService(db)
	categoryService := services.NewCategoryService(db)
	paymentModeService := services.NewPaymentModeService(db)
	partyService := services.NewPartyService(db)
	cashBookService := services.NewCashBookService(db)
	transactionService := services.NewTransactionService(db)
	openingBalanceService := services.NewOpeningBalanceService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService)
	campusHandler := handlers.NewCampusHandler(campusService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	paymentModeHandler := handlers.NewPaymentModeHandler(paymentModeService)
	partyHandler := handlers.NewPartyHandler(partyService)
	cashBookHandler := handlers.NewCashBookHandler(cashBookService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	openingBalanceHandler := handlers.NewOpeningBalanceHandler(openingBalanceService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes: authentication plus one scope resolution per request
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.ScopeMiddleware(resolver))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.GetMe)

	users := protected.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.GetUsers)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	roles := protected.Group("/roles")
	roles.POST("", roleHandler.CreateRole)
	roles.GET("", roleHandler.GetRoles)
	roles.GET("/:id", roleHandler.GetRole)
	roles.PUT("/:id", roleHandler.UpdateRole)
	roles.DELETE("/:id", roleHandler.DeleteRole)

	campuses := protected.Group("/campuses")
	campuses.POST("", campusHandler.CreateCampus)
	campuses.GET("", campusHandler.GetCampuses)
	campuses.GET("/:id", campusHandler.GetCampus)
	campuses.PUT("/:id", campusHandler.UpdateCampus)
	campuses.DELETE("/:id", campusHandler.DeleteCampus)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	paymentModes := protected.Group("/payment-modes")
	paymentModes.POST("", paymentModeHandler.CreatePaymentMode)
	paymentModes.GET("", paymentModeHandler.GetPaymentModes)
	paymentModes.GET("/:id", paymentModeHandler.GetPaymentMode)
	paymentModes.PUT("/:id", paymentModeHandler.UpdatePaymentMode)
	paymentModes.DELETE("/:id", paymentModeHandler.DeletePaymentMode)

	parties := protected.Group("/parties")
	parties.POST("", partyHandler.CreateParty)
	parties.GET("", partyHandler.GetParties)
	parties.GET("/:id", partyHandler.GetParty)
	parties.PUT("/:id", partyHandler.UpdateParty)
	parties.DELETE("/:id", partyHandler.DeleteParty)

	cashBooks := protected.Group("/cash-books")
	cashBooks.POST("", cashBookHandler.CreateCashBook)
	cashBooks.GET("", cashBookHandler.GetCashBooks)
	cashBooks.GET("/:id", cashBookHandler.GetCashBook)
	cashBooks.PUT("/:id", cashBookHandler.UpdateCashBook)
	cashBooks.DELETE("/:id", cashBookHandler.DeleteCashBook)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	// Registered before /:id so the literal path wins
	transactions.GET("/parties", transactionHandler.GetDistinctParties)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	openingBalances := protected.Group("/opening-balances")
	openingBalances.POST("", openingBalanceHandler.CreateOpeningBalance)
	openingBalances.GET("", openingBalanceHandler.GetOpeningBalances)
	openingBalances.GET("/:id", openingBalanceHandler.GetOpeningBalance)
	openingBalances.PUT("/:id", openingBalanceHandler.UpdateOpeningBalance)
	openingBalances.DELETE("/:id", openingBalanceHandler.DeleteOpeningBalance)

	protected.POST("/reports", reportHandler.GenerateReport)

	log.Infof("Starting Cashbook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
