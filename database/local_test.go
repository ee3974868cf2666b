package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"paynapple-backend/models"
)

func newLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := OpenLocal(filepath.Join(t.TempDir(), "paynapple.db"))
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLocalStoreInvoiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newLocalStore(t)

	if got := s.List(ctx, ""); len(got) != 0 {
		t.Fatalf("fresh store must read empty, got %d", len(got))
	}

	created := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	inv := models.Invoice{
		Id:         "inv-1",
		ClientName: "Acme",
		Amount:     150.5,
		Status:     models.StatusPending,
		CreatedAt:  created,
	}
	if err := s.Create(ctx, inv, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, models.Invoice{Id: "inv-2", ClientName: "Beta", Amount: 49.99, Status: models.StatusPending, CreatedAt: created}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got := s.List(ctx, "")
	if len(got) != 2 {
		t.Fatalf("List length = %d, want 2", len(got))
	}
	// Stored order is kept.
	if got[0].Id != "inv-1" || got[1].Id != "inv-2" {
		t.Errorf("order = %s, %s", got[0].Id, got[1].Id)
	}
	if got[0].ClientName != "Acme" || got[0].Amount != 150.5 || !got[0].CreatedAt.Equal(created) {
		t.Errorf("round trip lost fields: %+v", got[0])
	}

	paid := created.Add(24 * time.Hour)
	inv.Status = models.StatusPaid
	inv.PaidAt = &paid
	if err := s.Update(ctx, inv); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got = s.List(ctx, "")
	if got[0].Status != models.StatusPaid || got[0].PaidAt == nil || !got[0].PaidAt.Equal(paid) {
		t.Errorf("update not persisted: %+v", got[0])
	}

	if err := s.Remove(ctx, "inv-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got = s.List(ctx, "")
	if len(got) != 1 || got[0].Id != "inv-2" {
		t.Errorf("remove left %+v", got)
	}
}

func TestLocalStoreAccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newLocalStore(t)

	if acct := s.LoadAccount(ctx); acct != nil {
		t.Fatalf("fresh store must have no account, got %+v", acct)
	}

	want := models.Account{Id: "a1", Name: "Ana", Email: "ana@example.com", HasPaid: true}
	if err := s.SaveAccount(ctx, want); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}
	got := s.LoadAccount(ctx)
	if got == nil || *got != want {
		t.Errorf("LoadAccount = %+v, want %+v", got, want)
	}
}

func TestLocalStoreMalformedValuesReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newLocalStore(t)

	for _, key := range []string{keyInvoices, keyAccount} {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)`, key, "{not json"); err != nil {
			t.Fatalf("seed malformed value: %v", err)
		}
	}

	if got := s.List(ctx, ""); len(got) != 0 {
		t.Errorf("malformed collection must read empty, got %d", len(got))
	}
	if acct := s.LoadAccount(ctx); acct != nil {
		t.Errorf("malformed account must read absent, got %+v", acct)
	}

	// A write straight after recovers the key.
	if err := s.SaveAccount(ctx, models.Account{Id: "a1", Name: "Ana", Email: "a@b.c"}); err != nil {
		t.Fatalf("SaveAccount after malformed read: %v", err)
	}
	if acct := s.LoadAccount(ctx); acct == nil || acct.Id != "a1" {
		t.Errorf("recovery write failed: %+v", acct)
	}
}

func TestLocalStoreUpdateTouchesOnlyStatusFields(t *testing.T) {
	ctx := context.Background()
	s := newLocalStore(t)

	created := time.Now().UTC().Truncate(time.Second)
	if err := s.Create(ctx, models.Invoice{Id: "inv-1", ClientName: "Acme", Amount: 10, Status: models.StatusPending, CreatedAt: created}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	paid := created.Add(time.Hour)
	// Amount and name changes ride along in the struct but must not land.
	if err := s.Update(ctx, models.Invoice{Id: "inv-1", ClientName: "Other", Amount: 999, Status: models.StatusPaid, PaidAt: &paid}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := s.List(ctx, "")[0]
	if got.ClientName != "Acme" || got.Amount != 10 {
		t.Errorf("update must only change status/paidAt: %+v", got)
	}
	if got.Status != models.StatusPaid || got.PaidAt == nil {
		t.Errorf("status change lost: %+v", got)
	}
}
