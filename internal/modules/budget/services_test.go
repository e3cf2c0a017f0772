package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*BudgetService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&pets.Pet{}, &Expense{}, &Budget{}))
	return NewBudgetService(db), db
}

func addExpense(t *testing.T, svc *BudgetService, userID uuid.UUID, amount float64, date time.Time) {
	t.Helper()
	_, err := svc.CreateExpense(userID, CreateExpenseRequest{
		Amount:   amount,
		Category: "food",
		Date:     &date,
	})
	require.NoError(t, err)
}

func TestCreateExpense_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	_, err := svc.CreateExpense(userID, CreateExpenseRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateExpense(userID, CreateExpenseRequest{Amount: 10, Currency: "DOLLARS"})
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = svc.CreateExpense(userID, CreateExpenseRequest{Amount: 10, Category: "yachts"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// Defaults apply when currency and category are omitted.
	expense, err := svc.CreateExpense(userID, CreateExpenseRequest{Amount: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "USD", expense.Currency)
	assert.Equal(t, "other", expense.Category)
}

func TestCreateExpense_PetMustBeOwned(t *testing.T) {
	svc, db := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	pet := pets.Pet{UserID: owner, Name: "Mochi", Species: "cat"}
	require.NoError(t, db.Create(&pet).Error)

	_, err := svc.CreateExpense(owner, CreateExpenseRequest{Amount: 10, PetID: &pet.ID})
	require.NoError(t, err)

	_, err = svc.CreateExpense(stranger, CreateExpenseRequest{Amount: 10, PetID: &pet.ID})
	assert.Error(t, err)
}

func TestExpenses_OwnershipIsolation(t *testing.T) {
	svc, _ := newTestService(t)
	alice := uuid.New()
	bob := uuid.New()

	expense, err := svc.CreateExpense(alice, CreateExpenseRequest{Amount: 50, Category: "vet"})
	require.NoError(t, err)

	_, err = svc.GetExpense(bob, expense.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteExpense(bob, expense.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	list, total, err := svc.ListExpenses(bob, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestSetBudget_Upserts(t *testing.T) {
	svc, db := newTestService(t)
	userID := uuid.New()

	threshold := 0.5
	_, err := svc.SetBudget(userID, SetBudgetRequest{Amount: 100, AlertThreshold: &threshold})
	require.NoError(t, err)

	b, err := svc.SetBudget(userID, SetBudgetRequest{Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, float64(200), b.Amount)
	assert.Equal(t, 0.8, b.AlertThreshold)

	var count int64
	db.Model(&Budget{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)

	bad := 1.5
	_, err = svc.SetBudget(userID, SetBudgetRequest{Amount: 100, AlertThreshold: &bad})
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestGetBudgetStatus(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	_, err := svc.SetBudget(userID, SetBudgetRequest{Amount: 100})
	require.NoError(t, err)

	addExpense(t, svc, userID, 60, now.Add(-24*time.Hour))
	addExpense(t, svc, userID, 25, now.Add(-48*time.Hour))

	status, err := svc.GetBudgetStatus(userID, now)
	require.NoError(t, err)

	assert.Equal(t, float64(100), status.BudgetAmount)
	assert.Equal(t, float64(85), status.Spent)
	assert.Equal(t, float64(15), status.Remaining)
	assert.InDelta(t, 85.0, status.Percentage, 0.001)
	assert.True(t, status.IsAlert)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), status.PeriodStart)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), status.PeriodEnd)
}

func TestGetBudgetStatus_IgnoresOtherMonthsAndCurrencies(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	_, err := svc.SetBudget(userID, SetBudgetRequest{Amount: 100})
	require.NoError(t, err)

	// Last month and next month fall outside the window.
	addExpense(t, svc, userID, 40, time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC))
	addExpense(t, svc, userID, 40, time.Date(2026, time.April, 1, 0, 0, 1, 0, time.UTC))

	// Different currency is not summed against a USD budget.
	eurDate := now.Add(-time.Hour)
	_, err = svc.CreateExpense(userID, CreateExpenseRequest{Amount: 40, Currency: "EUR", Date: &eurDate})
	require.NoError(t, err)

	addExpense(t, svc, userID, 30, now.Add(-time.Hour))

	status, err := svc.GetBudgetStatus(userID, now)
	require.NoError(t, err)
	assert.Equal(t, float64(30), status.Spent)
	assert.False(t, status.IsAlert)
}

func TestGetBudgetStatus_NoBudget(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBudgetStatus(uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}
