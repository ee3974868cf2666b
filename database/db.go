package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the remote relational service and migrates the invoice and
// account tables. The handle is returned, not stored in a package global.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&invoiceRow{}, &accountRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Open selects the backend from configuration: a non-empty dsn picks the
// remote multi-account service, otherwise the embedded local store at
// localPath is used.
func Open(dsn, localPath string) (Store, error) {
	if dsn != "" {
		db, err := Connect(dsn)
		if err != nil {
			return nil, err
		}
		return NewRemoteStore(db), nil
	}
	return OpenLocal(localPath)
}
