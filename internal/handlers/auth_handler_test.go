package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/middleware"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
	"cashbook/internal/services"
	"cashbook/internal/validator"
)

// --- mock user service ---

type mockUserService struct {
	attemptLoginFn          func(mobile, password string) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	storeRefreshTokenHashFn func(userID uint, tokenHash string) error
	getRefreshTokenHashFn   func(userID uint) (string, error)
	createUserFn            func(scope *access.Scope, input services.UserInput) (*models.User, error)
	listUsersFn             func(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	getUserFn               func(scope *access.Scope, id uint) (*models.User, error)
	updateUserFn            func(scope *access.Scope, id uint, input services.UserUpdate) (*models.User, error)
	deleteUserFn            func(scope *access.Scope, id uint) error
}

func (m *mockUserService) AttemptLogin(mobile, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(mobile, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID uint) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) CreateUser(scope *access.Scope, input services.UserInput) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(scope, input)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUsers(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(scope, page)
	}
	resp := pagination.NewPageResponse([]models.User{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockUserService) GetUser(scope *access.Scope, id uint) (*models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(scope, id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) UpdateUser(scope *access.Scope, id uint, input services.UserUpdate) (*models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(scope, id, input)
	}
	return &models.User{}, nil
}

func (m *mockUserService) DeleteUser(scope *access.Scope, id uint) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(scope, id)
	}
	return nil
}

var _ services.UserServicer = (*mockUserService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func injectScope(scope *access.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", scope.UserID)
		c.Set("scope", scope)
		c.Next()
	}
}

func adminScope() *access.Scope {
	return &access.Scope{UserID: 1, Kind: access.RoleAdmin}
}

func staffScope(campusIDs ...uint) *access.Scope {
	return &access.Scope{UserID: 2, Kind: access.RoleStaff, CampusIDs: campusIDs}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.RefreshToken)
	r.POST("/auth/logout", injectUserID(1), handler.Logout)
	r.GET("/auth/me", injectUserID(1), handler.GetMe)
	return r
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns token pair on success", func(t *testing.T) {
		var storedHash string
		userSvc := &mockUserService{
			attemptLoginFn: func(mobile, password string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 1}, Mobile: mobile, Name: "Admin"}, nil
			},
			storeRefreshTokenHashFn: func(_ uint, tokenHash string) error {
				storedHash = tokenHash
				return nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"mobile":"+60123456789","password":"secret"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == "" || result["access_token"] == nil {
			t.Error("expected access token in response")
		}
		refreshToken, _ := result["refresh_token"].(string)
		if refreshToken == "" {
			t.Fatal("expected refresh token in response")
		}
		if storedHash != middleware.HashToken(refreshToken) {
			t.Error("stored hash does not match issued refresh token")
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"mobile":"+60123456789","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 423 when account locked", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrAccountLocked
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"mobile":"+60123456789","password":"secret"}`)

		if rec.Code != http.StatusLocked {
			t.Fatalf("expected 423, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed mobile", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"mobile":"not-a-number","password":"secret"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"mobile":"+60123456789"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("rotates tokens on success", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 1}, Mobile: "+60123456789"}
		refreshToken, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		var newHash string
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(_ uint) (string, error) {
				return middleware.HashToken(refreshToken), nil
			},
			getUserByIDFn: func(id uint) (*models.User, error) {
				return user, nil
			},
			storeRefreshTokenHashFn: func(_ uint, tokenHash string) error {
				newHash = tokenHash
				return nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refresh_token":"`+refreshToken+`"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if newHash == "" {
			t.Error("expected new refresh token hash to be stored")
		}
	})

	t.Run("returns 401 when token does not match stored hash", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 1}, Mobile: "+60123456789"}
		refreshToken, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(_ uint) (string, error) {
				return "some-other-hash", nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refresh_token":"`+refreshToken+`"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 on garbage token", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refresh_token":"garbage"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects access token presented as refresh token", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 1}, Mobile: "+60123456789"}
		accessToken, err := middleware.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refresh_token":"`+accessToken+`"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("clears stored refresh token hash", func(t *testing.T) {
		cleared := false
		userSvc := &mockUserService{
			storeRefreshTokenHashFn: func(userID uint, tokenHash string) error {
				if tokenHash == "" {
					cleared = true
				}
				return nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/logout", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !cleared {
			t.Error("expected refresh token hash to be cleared")
		}
	})
}

func TestAuthHandler_GetMe(t *testing.T) {
	t.Run("returns the current user", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Name: "Admin", Mobile: "+60123456789"}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["name"] != "Admin" {
			t.Errorf("expected Admin, got %v", user["name"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := gin.New()
		r.GET("/auth/me", handler.GetMe)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
