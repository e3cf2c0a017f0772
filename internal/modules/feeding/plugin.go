package feeding

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"gorm.io/gorm"
)

type FeedingPlugin struct{}

func New() *FeedingPlugin {
	return &FeedingPlugin{}
}

func (p *FeedingPlugin) ID() string { return "feeding" }

func (p *FeedingPlugin) Models() []interface{} {
	return []interface{}{
		&FeedingSchedule{},
	}
}

func (p *FeedingPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewScheduleService(db)
	handler := NewScheduleHandler(svc)

	router.Post("/pets/:petId/feeding", handler.Create)
	router.Get("/pets/:petId/feeding", handler.ListByPet)
	router.Get("/feeding/:id", handler.Get)
	router.Put("/feeding/:id", handler.Update)
	router.Delete("/feeding/:id", handler.Delete)
}
