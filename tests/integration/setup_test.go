package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashbook/internal/access"
	"cashbook/internal/handlers"
	"cashbook/internal/logger"
	"cashbook/internal/middleware"
	"cashbook/internal/models"
	"cashbook/internal/services"
	"cashbook/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// userCounter makes seeded mobiles unique.
var userCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Role{},
		&models.Campus{},
		&models.User{},
		&models.Category{},
		&models.PaymentMode{},
		&models.Party{},
		&models.CashBook{},
		&models.Transaction{},
		&models.OpeningBalance{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
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

	// Handlers
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

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

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

	campuses := protected.Group("/campuses")
	campuses.POST("", campusHandler.CreateCampus)
	campuses.GET("", campusHandler.GetCampuses)
	campuses.GET("/:id", campusHandler.GetCampus)
	campuses.DELETE("/:id", campusHandler.DeleteCampus)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)

	paymentModes := protected.Group("/payment-modes")
	paymentModes.POST("", paymentModeHandler.CreatePaymentMode)
	paymentModes.GET("", paymentModeHandler.GetPaymentModes)

	parties := protected.Group("/parties")
	parties.POST("", partyHandler.CreateParty)
	parties.GET("", partyHandler.GetParties)

	cashBooks := protected.Group("/cash-books")
	cashBooks.POST("", cashBookHandler.CreateCashBook)
	cashBooks.GET("", cashBookHandler.GetCashBooks)
	cashBooks.GET("/:id", cashBookHandler.GetCashBook)
	cashBooks.PUT("/:id", cashBookHandler.UpdateCashBook)
	cashBooks.DELETE("/:id", cashBookHandler.DeleteCashBook)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/parties", transactionHandler.GetDistinctParties)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	openingBalances := protected.Group("/opening-balances")
	openingBalances.POST("", openingBalanceHandler.CreateOpeningBalance)
	openingBalances.GET("", openingBalanceHandler.GetOpeningBalances)
	openingBalances.PUT("/:id", openingBalanceHandler.UpdateOpeningBalance)

	protected.POST("/reports", reportHandler.GenerateReport)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// seedUser inserts a user directly, bypassing the API. Login password is
// "password123". Campus assignments are optional.
func (app *testApp) seedUser(t *testing.T, roleName string, campusIDs ...uint) *models.User {
	t.Helper()

	var role models.Role
	if err := app.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		role = models.Role{Name: roleName}
		if err := app.DB.Create(&role).Error; err != nil {
			t.Fatalf("failed to seed role: %v", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := userCounter.Add(1)
	user := &models.User{
		Name:     fmt.Sprintf("Seed User %d", n),
		Mobile:   fmt.Sprintf("+6012%07d", n),
		Password: string(hash),
		RoleID:   &role.ID,
		IsActive: true,
	}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	for _, id := range campusIDs {
		var campus models.Campus
		if err := app.DB.First(&campus, id).Error; err != nil {
			t.Fatalf("failed to load campus %d: %v", id, err)
		}
		if err := app.DB.Model(user).Association("Campuses").Append(&campus); err != nil {
			t.Fatalf("failed to assign campus: %v", err)
		}
	}
	return user
}

// seedCampus inserts a campus directly.
func (app *testApp) seedCampus(t *testing.T, name string) *models.Campus {
	t.Helper()
	campus := &models.Campus{Name: name, IsActive: true}
	if err := app.DB.Create(campus).Error; err != nil {
		t.Fatalf("failed to seed campus: %v", err)
	}
	return campus
}

// login authenticates a seeded user and returns the token pair.
func (app *testApp) login(t *testing.T, mobile, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"mobile":%q,"password":%q}`, mobile, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// loginAdmin seeds an admin user and logs in as them.
func (app *testApp) loginAdmin(t *testing.T) string {
	t.Helper()
	admin := app.seedUser(t, "Admin")
	token, _ := app.login(t, admin.Mobile, "password123")
	return token
}
