package database

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"paynapple-backend/models"
)

// invoiceRow is the remote table shape. Column names are snake_case and
// differ from the in-memory model; the translation below is part of the
// store contract, not incidental glue.
type invoiceRow struct {
	Id         string     `gorm:"primaryKey;column:id"`
	UserId     string     `gorm:"column:user_id;index"`
	ClientName string     `gorm:"column:client_name"`
	Amount     float64    `gorm:"column:amount;type:numeric(12,2)"`
	Status     string     `gorm:"column:status"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	PaidAt     *time.Time `gorm:"column:paid_at"`
}

func (invoiceRow) TableName() string { return "invoices" }

type accountRow struct {
	Id      string `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	Email   string `gorm:"column:email"`
	HasPaid bool   `gorm:"column:has_paid"`
}

func (accountRow) TableName() string { return "accounts" }

func rowFromInvoice(inv models.Invoice, accountID string) invoiceRow {
	return invoiceRow{
		Id:         inv.Id,
		UserId:     accountID,
		ClientName: inv.ClientName,
		Amount:     inv.Amount,
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
		PaidAt:     inv.PaidAt,
	}
}

func (r invoiceRow) toInvoice() models.Invoice {
	return models.Invoice{
		Id:         r.Id,
		ClientName: r.ClientName,
		Amount:     r.Amount,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		PaidAt:     r.PaidAt,
	}
}

// RemoteStore is the multi-account backend over a shared relational service.
// One row per invoice, keyed by a generated id plus the owning account id.
// Row-level consistency is the remote service's job; this layer issues one
// logical statement per operation.
type RemoteStore struct {
	db *gorm.DB
}

// NewRemoteStore wraps an explicitly connected handle (see Connect). The
// handle is passed in rather than read from a package global so tests can
// substitute it.
func NewRemoteStore(db *gorm.DB) *RemoteStore {
	return &RemoteStore{db: db}
}

func (s *RemoteStore) List(ctx context.Context, accountID string) []models.Invoice {
	var rows []invoiceRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		log.Printf("remote store: list invoices: %v", err)
		return []models.Invoice{}
	}
	invoices := make([]models.Invoice, 0, len(rows))
	for _, r := range rows {
		invoices = append(invoices, r.toInvoice())
	}
	return invoices
}

func (s *RemoteStore) Create(ctx context.Context, inv models.Invoice, accountID string) error {
	row := rowFromInvoice(inv, accountID)
	return s.db.WithContext(ctx).Create(&row).Error
}

// Update touches only the two mutable columns.
func (s *RemoteStore) Update(ctx context.Context, inv models.Invoice) error {
	return s.db.WithContext(ctx).
		Model(&invoiceRow{}).
		Where("id = ?", inv.Id).
		Updates(map[string]any{
			"status":  inv.Status,
			"paid_at": inv.PaidAt,
		}).Error
}

func (s *RemoteStore) Remove(ctx context.Context, invoiceID string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", invoiceID).
		Delete(&invoiceRow{}).Error
}

func (s *RemoteStore) LoadAccount(ctx context.Context) *models.Account {
	var row accountRow
	err := s.db.WithContext(ctx).First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("remote store: load account: %v", err)
		}
		return nil
	}
	return &models.Account{
		Id:      row.Id,
		Name:    row.Name,
		Email:   row.Email,
		HasPaid: row.HasPaid,
	}
}

func (s *RemoteStore) SaveAccount(ctx context.Context, acct models.Account) error {
	row := accountRow{
		Id:      acct.Id,
		Name:    acct.Name,
		Email:   acct.Email,
		HasPaid: acct.HasPaid,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *RemoteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
