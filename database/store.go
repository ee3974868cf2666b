package database

import (
	"context"

	"paynapple-backend/models"
)

// Store is the persistence contract shared by the local and remote backends.
// Reads never fail from the caller's point of view: a backend that cannot
// read returns an empty collection (or absent account) so the caller always
// holds a valid, if stale, view. Writes return errors for the caller to
// surface; nothing is rolled back automatically.
//
// The backend is chosen once at startup by configuration (see Open in db.go),
// never by inspecting data shapes at runtime.
type Store interface {
	// List returns the account's invoices. The remote backend orders by
	// creation time descending; the local backend keeps stored order.
	List(ctx context.Context, accountID string) []models.Invoice

	// Create persists a new invoice for the account.
	Create(ctx context.Context, inv models.Invoice, accountID string) error

	// Update persists a status/paidAt change for one invoice. Only those two
	// fields ever change after creation.
	Update(ctx context.Context, inv models.Invoice) error

	// Remove deletes one invoice by id.
	Remove(ctx context.Context, invoiceID string) error

	// LoadAccount returns the stored account, or nil when absent.
	LoadAccount(ctx context.Context) *models.Account

	// SaveAccount persists the account record.
	SaveAccount(ctx context.Context, acct models.Account) error

	// Close releases the backend's resources.
	Close() error
}
