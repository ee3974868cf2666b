package invoices

import "paynapple-backend/models"

// Stats are the derived aggregates shown on the dashboard.
type Stats struct {
	TotalCount    int     `json:"totalCount"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`
	// PaidPercent is the whole-number completion rate, 0 for an empty or
	// zero-total collection.
	PaidPercent int `json:"paidPercent"`
}

// ComputeStats is pure: it never touches the manager's state. For every
// collection, PendingAmount + PaidAmount == TotalAmount.
func ComputeStats(collection []models.Invoice) Stats {
	var s Stats
	s.TotalCount = len(collection)
	for _, inv := range collection {
		s.TotalAmount += inv.Amount
		if inv.Paid() {
			s.PaidAmount += inv.Amount
			s.PaidCount++
		} else {
			s.PendingCount++
		}
	}
	s.PendingAmount = s.TotalAmount - s.PaidAmount
	if s.TotalAmount > 0 {
		s.PaidPercent = int(s.PaidAmount/s.TotalAmount*100 + 0.5)
	}
	return s
}
