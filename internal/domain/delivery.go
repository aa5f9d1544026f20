package domain

import "time"

const (
	DeliveryNotApplicable = "NOT_APPLICABLE"
	DeliveryCompleted     = "COMPLETED"
	DeliveryFailed        = "FAILED"
)

type Delivery struct {
	ID         string    `json:"delivery_id"`
	Owner      string    `json:"repository_owner"`
	Repo       string    `json:"repository_name"`
	Number     int       `json:"number"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}
