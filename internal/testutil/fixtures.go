package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashbook/internal/access"
	"cashbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestRole creates a role with the given name.
func CreateTestRole(t *testing.T, db *gorm.DB, name string) *models.Role {
	t.Helper()

	role := &models.Role{Name: name}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to create test role: %v", err)
	}
	return role
}

// CreateTestCampus creates a campus with a unique name.
func CreateTestCampus(t *testing.T, db *gorm.DB) *models.Campus {
	t.Helper()

	campus := &models.Campus{
		Name:     fmt.Sprintf("Test Campus %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(campus).Error; err != nil {
		t.Fatalf("failed to create test campus: %v", err)
	}
	return campus
}

// CreateTestUser creates an active user with a hashed password, the given
// role, and the given campus assignments. The login password is "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, role *models.Role, campuses ...*models.Campus) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Mobile:   fmt.Sprintf("+6010%07d", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if role != nil {
		user.RoleID = &role.ID
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	for _, campus := range campuses {
		if err := db.Model(user).Association("Campuses").Append(campus); err != nil {
			t.Fatalf("failed to assign test campus: %v", err)
		}
	}
	return user
}

// CreateTestAdmin creates a user with an admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	var role models.Role
	if err := db.Where("name = ?", "Admin").First(&role).Error; err != nil {
		role = *CreateTestRole(t, db, "Admin")
	}
	return CreateTestUser(t, db, &role)
}

// ScopeFor resolves the access scope for a user, reloading role and campuses.
func ScopeFor(t *testing.T, db *gorm.DB, userID uint) *access.Scope {
	t.Helper()

	scope, err := access.NewResolver(db).Resolve(userID)
	if err != nil {
		t.Fatalf("failed to resolve scope: %v", err)
	}
	return scope
}

// CreateTestCategory creates an active category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPaymentMode creates an active payment mode with a unique name.
func CreateTestPaymentMode(t *testing.T, db *gorm.DB) *models.PaymentMode {
	t.Helper()

	mode := &models.PaymentMode{
		Name:     fmt.Sprintf("Test Payment Mode %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(mode).Error; err != nil {
		t.Fatalf("failed to create test payment mode: %v", err)
	}
	return mode
}

// CreateTestParty creates a party with a unique name.
func CreateTestParty(t *testing.T, db *gorm.DB) *models.Party {
	t.Helper()

	party := &models.Party{
		Name:         fmt.Sprintf("Test Party %d", nextID()),
		MobileNumber: fmt.Sprintf("+6011%07d", nextID()),
	}
	if err := db.Create(party).Error; err != nil {
		t.Fatalf("failed to create test party: %v", err)
	}
	return party
}

// CreateTestCashBook creates an active cash book under the given campus.
func CreateTestCashBook(t *testing.T, db *gorm.DB, campusID uint) *models.CashBook {
	t.Helper()

	book := &models.CashBook{
		Name:     fmt.Sprintf("Test Cash Book %d", nextID()),
		CampusID: campusID,
		IsActive: true,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create test cash book: %v", err)
	}
	return book
}

// CreateTestTransaction creates a ledger entry dated today.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, cashBookID uint, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()

	now := time.Now()
	txn := &models.Transaction{
		UserID:     userID,
		Type:       txType,
		CashBookID: cashBookID,
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Time:       now.Format("15:04:05"),
		Amount:     amount,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestOpeningBalance creates an opening balance dated today.
func CreateTestOpeningBalance(t *testing.T, db *gorm.DB, cashBookID, createdBy uint, amount int64) *models.OpeningBalance {
	t.Helper()

	now := time.Now()
	balance := &models.OpeningBalance{
		CashBookID: cashBookID,
		Amount:     amount,
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		CreatedBy:  createdBy,
	}
	if err := db.Create(balance).Error; err != nil {
		t.Fatalf("failed to create test opening balance: %v", err)
	}
	return balance
}
