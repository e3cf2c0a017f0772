package dto

type RevenueCatWebhook struct {
	APIVersion string          `json:"api_version"`
	Event      RevenueCatEvent `json:"event"`
}

type RevenueCatEvent struct {
	Type                     string   `json:"type"`
	ID                       string   `json:"id"`
	AppUserID                string   `json:"app_user_id"`
	ProductID                string   `json:"product_id"`
	EntitlementIDs           []string `json:"entitlement_ids"`
	PeriodType               string   `json:"period_type"`
	PurchasedAtMs            int64    `json:"purchased_at_ms"`
	ExpirationAtMs           int64    `json:"expiration_at_ms"`
	Environment              string   `json:"environment"`
	Store                    string   `json:"store"`
	OriginalAppUserID        string   `json:"original_app_user_id"`
	TransactionID            string   `json:"transaction_id"`
	OriginalTransactionID    string   `json:"original_transaction_id"`
	IsTrialConversion        bool     `json:"is_trial_conversion"`
	CountryCode              string   `json:"country_code"`
	Currency                 string   `json:"currency"`
	Price                    float64  `json:"price"`
	PriceInPurchasedCurrency float64  `json:"price_in_purchased_currency"`
}

// ExternalID returns the provider transaction identifier for the event,
// preferring the original transaction so renewals key to the same subscription.
func (e *RevenueCatEvent) ExternalID() string {
	if e.OriginalTransactionID != "" {
		return e.OriginalTransactionID
	}
	return e.TransactionID
}

type WebhookResponse struct {
	Received  bool   `json:"received"`
	Processed bool   `json:"processed"`
	Reason    string `json:"reason,omitempty"`
}
