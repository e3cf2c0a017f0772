package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/services"
)

type WebhookHandler struct {
	subscriptionService *services.SubscriptionService
	cfg                 *config.Config
}

func NewWebhookHandler(subscriptionService *services.SubscriptionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

// HandleRevenueCat receives RevenueCat webhook deliveries. After the shared
// secret is verified the endpoint always answers 200: a non-2xx would make the
// provider retry the event, and processing failures carry no information the
// provider can act on. The outcome is encoded in the body instead.
func (h *WebhookHandler) HandleRevenueCat(c *fiber.Ctx) error {
	if h.cfg.RevenueCatWebhookAuth == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	expectedAuth := "Bearer " + h.cfg.RevenueCatWebhookAuth
	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(expectedAuth)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var webhook dto.RevenueCatWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.subscriptionService.HandleWebhookEvent(&webhook.Event); err != nil {
		reason := "processing failed"
		switch {
		case errors.Is(err, services.ErrUnknownAppUser):
			reason = "unknown app_user_id"
		case errors.Is(err, services.ErrSubscriptionNotFound):
			reason = "subscription not found"
		}
		slog.Error("webhook processing failed",
			"event_type", webhook.Event.Type,
			"event_id", webhook.Event.ID,
			"error", err)
		return c.JSON(dto.WebhookResponse{Received: true, Processed: false, Reason: reason})
	}

	slog.Info("webhook processed", "event_type", webhook.Event.Type, "event_id", webhook.Event.ID)
	return c.JSON(dto.WebhookResponse{Received: true, Processed: true})
}
