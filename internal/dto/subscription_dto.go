package dto

import "time"

type StartTrialRequest struct {
	DeviceID string `json:"device_id"`
}

type SubscriptionResponse struct {
	Provider  string    `json:"provider"`
	Tier      string    `json:"tier"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SubscriptionStatusResponse struct {
	HasActiveSubscription bool       `json:"has_active_subscription"`
	SubscriptionType      string     `json:"subscription_type"` // none, trial, paid
	Tier                  string     `json:"tier,omitempty"`
	Provider              string     `json:"provider,omitempty"`
	Status                string     `json:"status,omitempty"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	DaysRemaining         int        `json:"days_remaining"`
	IsExpired             bool       `json:"is_expired"`
	IsCancelled           bool       `json:"is_cancelled"`
	CanStartTrial         bool       `json:"can_start_trial"`
}
