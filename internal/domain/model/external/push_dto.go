package external

type PushNotificationRequest struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`

	// IdempotencyKey travels as a header so retried sends are delivered once
	IdempotencyKey string `json:"-"`
}

type PushErrorResponse struct {
	Message string `json:"message"`
}

type PushResponse struct {
	ID string `json:"id"`
}
