package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"paynapple-backend/models"
)

// Storage keys for the local backend. The whole invoice collection lives
// under one key, the account record under the other.
const (
	keyInvoices = "paynapple_invoices"
	keyAccount  = "paynapple_user"
)

// LocalStore is the single-account backend: an embedded SQLite file used as a
// two-key key/value table holding JSON serializations of the data model.
// Absent or malformed values read as "no data", never as an error.
type LocalStore struct {
	db *sql.DB
}

// OpenLocal opens (creating if needed) the key/value store at path.
func OpenLocal(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) get(ctx context.Context, key string) ([]byte, bool) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("local store: read %q: %v", key, err)
		return nil, false
	}
	return []byte(raw), true
}

func (s *LocalStore) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(raw))
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// List ignores accountID: the local backend holds exactly one account.
func (s *LocalStore) List(ctx context.Context, _ string) []models.Invoice {
	raw, ok := s.get(ctx, keyInvoices)
	if !ok {
		return []models.Invoice{}
	}
	var invoices []models.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		log.Printf("local store: malformed invoice collection, treating as empty: %v", err)
		return []models.Invoice{}
	}
	return invoices
}

func (s *LocalStore) Create(ctx context.Context, inv models.Invoice, accountID string) error {
	invoices := s.List(ctx, accountID)
	invoices = append(invoices, inv)
	return s.put(ctx, keyInvoices, invoices)
}

func (s *LocalStore) Update(ctx context.Context, inv models.Invoice) error {
	invoices := s.List(ctx, "")
	for i := range invoices {
		if invoices[i].Id == inv.Id {
			invoices[i].Status = inv.Status
			invoices[i].PaidAt = inv.PaidAt
			break
		}
	}
	return s.put(ctx, keyInvoices, invoices)
}

func (s *LocalStore) Remove(ctx context.Context, invoiceID string) error {
	invoices := s.List(ctx, "")
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.Id != invoiceID {
			kept = append(kept, inv)
		}
	}
	return s.put(ctx, keyInvoices, kept)
}

func (s *LocalStore) LoadAccount(ctx context.Context) *models.Account {
	raw, ok := s.get(ctx, keyAccount)
	if !ok {
		return nil
	}
	var acct models.Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		log.Printf("local store: malformed account record, treating as absent: %v", err)
		return nil
	}
	return &acct
}

func (s *LocalStore) SaveAccount(ctx context.Context, acct models.Account) error {
	return s.put(ctx, keyAccount, acct)
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}
