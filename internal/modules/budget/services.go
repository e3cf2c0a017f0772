package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBudgetNotFound   = errors.New("no budget configured")
	ErrNotOwner         = errors.New("you do not own this expense")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrInvalidCategory  = errors.New("invalid expense category")
	ErrInvalidThreshold = errors.New("alert_threshold must be between 0 and 1")
)

type BudgetService struct {
	db *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{db: db}
}

func (s *BudgetService) CreateExpense(userID uuid.UUID, req CreateExpenseRequest) (*Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	category := req.Category
	if category == "" {
		category = "other"
	}
	if !isValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if req.PetID != nil {
		if err := pets.EnsureOwned(s.db, userID, *req.PetID); err != nil {
			return nil, err
		}
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	expense := Expense{
		ID:       uuid.New(),
		UserID:   userID,
		PetID:    req.PetID,
		Amount:   req.Amount,
		Currency: currency,
		Category: category,
		Date:     date,
		Notes:    req.Notes,
	}

	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *BudgetService) ListExpenses(userID uuid.UUID, category string, limit, offset int) ([]Expense, int64, error) {
	query := s.db.Model(&Expense{}).Scopes(auth.ForUser(userID))
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	var expenses []Expense
	err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&expenses).Error
	return expenses, total, err
}

func (s *BudgetService) GetExpense(userID, expenseID uuid.UUID) (*Expense, error) {
	var expense Expense
	if err := s.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	if expense.UserID != userID {
		return nil, ErrNotOwner
	}
	return &expense, nil
}

func (s *BudgetService) UpdateExpense(userID, expenseID uuid.UUID, req UpdateExpenseRequest) (*Expense, error) {
	expense, err := s.GetExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		if len(*req.Currency) != 3 {
			return nil, ErrInvalidCurrency
		}
		expense.Currency = *req.Currency
	}
	if req.Category != nil {
		if !isValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = req.Date.UTC()
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *BudgetService) DeleteExpense(userID, expenseID uuid.UUID) error {
	expense, err := s.GetExpense(userID, expenseID)
	if err != nil {
		return err
	}
	return s.db.Delete(expense).Error
}

// SetBudget upserts the user's single budget row.
func (s *BudgetService) SetBudget(userID uuid.UUID, req SetBudgetRequest) (*Budget, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	threshold := 0.8
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, ErrInvalidThreshold
	}

	var existing Budget
	err := s.db.Scopes(auth.ForUser(userID)).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b := Budget{
			ID:             uuid.New(),
			UserID:         userID,
			Amount:         req.Amount,
			Currency:       currency,
			AlertThreshold: threshold,
		}
		if err := s.db.Create(&b).Error; err != nil {
			return nil, err
		}
		return &b, nil
	}
	if err != nil {
		return nil, err
	}

	existing.Amount = req.Amount
	existing.Currency = currency
	existing.AlertThreshold = threshold
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *BudgetService) GetBudget(userID uuid.UUID) (*Budget, error) {
	var b Budget
	if err := s.db.Scopes(auth.ForUser(userID)).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetBudgetStatus sums the user's matching-currency expenses for the current
// UTC calendar month and compares them to the budget's alert threshold.
// Period boundaries are computed in UTC so "this month" does not drift with
// the server timezone.
func (s *BudgetService) GetBudgetStatus(userID uuid.UUID, now time.Time) (*BudgetStatusResponse, error) {
	b, err := s.GetBudget(userID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	var spent float64
	err = s.db.Model(&Expense{}).
		Scopes(auth.ForUser(userID)).
		Where("currency = ? AND date >= ? AND date < ?", b.Currency, periodStart, periodEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if b.Amount > 0 {
		percentage = spent / b.Amount * 100
	}

	return &BudgetStatusResponse{
		BudgetAmount: b.Amount,
		Spent:        spent,
		Remaining:    b.Amount - spent,
		Percentage:   percentage,
		IsAlert:      spent >= b.Amount*b.AlertThreshold,
		Currency:     b.Currency,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	}, nil
}

func isValidCategory(category string) bool {
	for _, valid := range Categories {
		if category == valid {
			return true
		}
	}
	return false
}
