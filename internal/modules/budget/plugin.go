package budget

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"gorm.io/gorm"
)

type BudgetPlugin struct{}

func New() *BudgetPlugin {
	return &BudgetPlugin{}
}

func (p *BudgetPlugin) ID() string { return "budget" }

func (p *BudgetPlugin) Models() []interface{} {
	return []interface{}{
		&Expense{},
		&Budget{},
	}
}

func (p *BudgetPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewBudgetService(db)
	handler := NewBudgetHandler(svc)

	router.Post("/expenses", handler.CreateExpense)
	router.Get("/expenses", handler.ListExpenses)
	router.Get("/expenses/:id", handler.GetExpense)
	router.Put("/expenses/:id", handler.UpdateExpense)
	router.Delete("/expenses/:id", handler.DeleteExpense)

	router.Put("/budget", handler.SetBudget)
	router.Get("/budget", handler.GetBudget)
	router.Get("/budget/status", handler.GetBudgetStatus)
}
