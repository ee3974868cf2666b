package models

import "time"

// Invoice statuses. An invoice starts pending and may transition to paid
// exactly once; there is no transition out of paid.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice is a billable request to a named client for a fixed amount.
// Id and CreatedAt are immutable after creation; Amount never changes.
// PaidAt is set exactly once, when the status flips to paid.
type Invoice struct {
	Id         string     `json:"id"`
	ClientName string     `json:"clientName"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// Paid reports whether the invoice has completed its lifecycle.
func (inv *Invoice) Paid() bool {
	return inv.Status == StatusPaid
}
