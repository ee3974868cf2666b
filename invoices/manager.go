package invoices

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"paynapple-backend/database"
	"paynapple-backend/models"
)

// ErrInvalidInvoice marks a rejected Add: the collection is untouched and
// nothing was persisted. How (or whether) to tell the user is the caller's
// call.
var ErrInvalidInvoice = errors.New("invalid invoice input")

// ErrNoAccount is returned by account operations before signup.
var ErrNoAccount = errors.New("no account")

// Manager owns the invoice lifecycle and the account gate. It mutates its
// in-memory state first and then persists through the Store; a failed write
// is reported but not rolled back, so the caller keeps a consistent view and
// decides whether to retry. The mutex protects the slice under concurrent
// handlers; persistence itself stays last-write-wins with no per-invoice
// lock.
type Manager struct {
	mu       sync.Mutex
	store    database.Store
	invoices []models.Invoice
	account  *models.Account
}

// NewManager loads the account and its invoice collection from the store.
// Store reads degrade to empty rather than failing, so construction cannot
// fail.
func NewManager(ctx context.Context, store database.Store) *Manager {
	m := &Manager{store: store}
	m.account = store.LoadAccount(ctx)
	accountID := ""
	if m.account != nil {
		accountID = m.account.Id
	}
	m.invoices = store.List(ctx, accountID)
	return m
}

// Add creates a pending invoice for clientName over amount. Inputs that trim
// to an empty name, or amounts that are not finite and positive, are
// rejected with ErrInvalidInvoice and leave the collection unchanged.
func (m *Manager) Add(ctx context.Context, clientName string, amount float64) (models.Invoice, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Invoice{}, ErrInvalidInvoice
	}

	inv := models.Invoice{
		Id:         uuid.NewString(),
		ClientName: clientName,
		Amount:     amount,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
	}

	m.mu.Lock()
	m.invoices = append(m.invoices, inv)
	m.mu.Unlock()

	if err := m.store.Create(ctx, inv, m.accountID()); err != nil {
		return inv, fmt.Errorf("persist invoice: %w", err)
	}
	return inv, nil
}

// MarkPaid transitions a pending invoice to paid and stamps PaidAt. Missing
// or already-paid invoices are a silent no-op; there is no transition out of
// paid.
func (m *Manager) MarkPaid(ctx context.Context, invoiceID string) error {
	m.mu.Lock()
	var updated *models.Invoice
	for i := range m.invoices {
		if m.invoices[i].Id == invoiceID && m.invoices[i].Status == models.StatusPending {
			now := time.Now()
			m.invoices[i].Status = models.StatusPaid
			m.invoices[i].PaidAt = &now
			inv := m.invoices[i]
			updated = &inv
			break
		}
	}
	m.mu.Unlock()

	if updated == nil {
		return nil
	}
	if err := m.store.Update(ctx, *updated); err != nil {
		return fmt.Errorf("persist paid status: %w", err)
	}
	return nil
}

// Delete removes the invoice regardless of status. Unknown ids are a no-op.
func (m *Manager) Delete(ctx context.Context, invoiceID string) error {
	m.mu.Lock()
	found := false
	kept := m.invoices[:0]
	for _, inv := range m.invoices {
		if inv.Id == invoiceID {
			found = true
			continue
		}
		kept = append(kept, inv)
	}
	m.invoices = kept
	m.mu.Unlock()

	if !found {
		return nil
	}
	if err := m.store.Remove(ctx, invoiceID); err != nil {
		return fmt.Errorf("persist deletion: %w", err)
	}
	return nil
}

// List returns a snapshot copy of the collection in creation order.
func (m *Manager) List() []models.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Invoice, len(m.invoices))
	copy(out, m.invoices)
	return out
}

// Get returns the invoice with the given id.
func (m *Manager) Get(invoiceID string) (models.Invoice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invoices {
		if inv.Id == invoiceID {
			return inv, true
		}
	}
	return models.Invoice{}, false
}

// Signup creates the account record with the paid gate closed.
func (m *Manager) Signup(ctx context.Context, name, email string) (models.Account, error) {
	acct := models.Account{
		Id:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}

	m.mu.Lock()
	m.account = &acct
	m.mu.Unlock()

	if err := m.store.SaveAccount(ctx, acct); err != nil {
		return acct, fmt.Errorf("persist account: %w", err)
	}
	return acct, nil
}

// Account returns a copy of the account record, or nil before signup.
func (m *Manager) Account() *models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == nil {
		return nil
	}
	acct := *m.account
	return &acct
}

// MarkAccountPaid opens the paid gate. It is how both the real post-redirect
// confirmation and the simulated onboarding flow complete.
func (m *Manager) MarkAccountPaid(ctx context.Context) error {
	m.mu.Lock()
	if m.account == nil {
		m.mu.Unlock()
		return ErrNoAccount
	}
	m.account.HasPaid = true
	acct := *m.account
	m.mu.Unlock()

	if err := m.store.SaveAccount(ctx, acct); err != nil {
		return fmt.Errorf("persist account: %w", err)
	}
	return nil
}

func (m *Manager) accountID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == nil {
		return ""
	}
	return m.account.Id
}
