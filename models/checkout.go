package models

// Checkout request kinds. Each request maps to exactly one payment-session
// creation call.
const (
	CheckoutOnboarding     = "onboarding"
	CheckoutInvoicePayment = "invoicePayment"
)

// CheckoutRequest is the ephemeral input to the checkout orchestrator.
// Kind selects which fields are meaningful: onboarding uses Name/Email,
// invoicePayment uses Email plus the invoice fields. It is never persisted.
type CheckoutRequest struct {
	Kind       string  `json:"kind"`
	Name       string  `json:"name,omitempty"`
	Email      string  `json:"email,omitempty"`
	InvoiceId  string  `json:"invoiceId,omitempty"`
	ClientName string  `json:"clientName,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}
