package dto

// StripeEvent is the subset of a Stripe webhook event this service reads
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object StripeSubscription `json:"object"`
	} `json:"data"`
}

type StripeSubscription struct {
	ID         string            `json:"id"`
	Customer   string            `json:"customer"`
	Status     string            `json:"status"`
	CanceledAt *int64            `json:"canceled_at"`
	Metadata   map[string]string `json:"metadata"`
}

type WebhookResult struct {
	EventID string `json:"eventId"`
	Handled bool   `json:"handled"`
}
