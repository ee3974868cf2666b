package models

// Account is the single billing-tool user. HasPaid flips true only after the
// onboarding checkout completes (real or simulated) and gates the invoice
// surface.
type Account struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	HasPaid bool   `json:"hasPaid"`
}
