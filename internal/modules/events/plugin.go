package events

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"gorm.io/gorm"
)

type EventsPlugin struct{}

func New() *EventsPlugin {
	return &EventsPlugin{}
}

func (p *EventsPlugin) ID() string { return "events" }

func (p *EventsPlugin) Models() []interface{} {
	return []interface{}{
		&Event{},
	}
}

func (p *EventsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewEventService(db)
	handler := NewEventHandler(svc)

	router.Post("/events", handler.Create)
	router.Get("/events", handler.List)
	router.Get("/events/upcoming", handler.Upcoming)
	router.Get("/events/:id", handler.Get)
	router.Put("/events/:id", handler.Update)
	router.Delete("/events/:id", handler.Delete)
}
