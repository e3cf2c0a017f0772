package pets

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"gorm.io/gorm"
)

type PetsPlugin struct{}

func New() *PetsPlugin {
	return &PetsPlugin{}
}

func (p *PetsPlugin) ID() string { return "pets" }

func (p *PetsPlugin) Models() []interface{} {
	return []interface{}{
		&Pet{},
	}
}

func (p *PetsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewPetService(db)
	handler := NewPetHandler(svc)

	router.Post("/pets", handler.Create)
	router.Get("/pets", handler.List)
	router.Get("/pets/:id", handler.Get)
	router.Put("/pets/:id", handler.Update)
	router.Delete("/pets/:id", handler.Delete)
}
