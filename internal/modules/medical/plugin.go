package medical

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"gorm.io/gorm"
)

type MedicalPlugin struct{}

func New() *MedicalPlugin {
	return &MedicalPlugin{}
}

func (p *MedicalPlugin) ID() string { return "medical" }

func (p *MedicalPlugin) Models() []interface{} {
	return []interface{}{
		&HealthRecord{},
	}
}

func (p *MedicalPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewRecordService(db)
	handler := NewRecordHandler(svc)

	router.Post("/pets/:petId/records", handler.Create)
	router.Get("/pets/:petId/records", handler.ListByPet)
	router.Get("/records/:id", handler.Get)
	router.Put("/records/:id", handler.Update)
	router.Delete("/records/:id", handler.Delete)
}
