package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
	"github.com/shopspring/decimal"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUserRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	u := models.NewUser("Owner@Example.com", "Dana Owner", "hash")
	u.BusinessName = "Dana's Bakery"
	u.EntityType = "llc"
	u.AccountType = "business_checking"
	u.MonthlyRevenue = decimal.NewFromInt(42000)
	u.MonthlyBankingFees = decimal.NewFromFloat(118.50)
	u.ZipCode = "30301"
	u.CashDeposits = true

	if err := repo.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail("OWNER@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.Email != "owner@example.com" {
		t.Errorf("email should be stored normalized, got %q", got.Email)
	}
	if !got.MonthlyRevenue.Equal(decimal.NewFromInt(42000)) {
		t.Errorf("revenue = %s, want 42000", got.MonthlyRevenue)
	}
	if !got.MonthlyBankingFees.Equal(decimal.NewFromFloat(118.50)) {
		t.Errorf("fees = %s, want 118.5", got.MonthlyBankingFees)
	}
	if !got.CashDeposits || got.IsVeteran {
		t.Error("flags not round-tripped")
	}

	exists, err := repo.EmailExists("owner@EXAMPLE.com")
	if err != nil || !exists {
		t.Errorf("EmailExists = %v, %v; want true", exists, err)
	}

	missing, err := repo.GetByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("missing user should be nil, nil; got %v, %v", missing, err)
	}
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	if err := repo.Create(models.NewUser("a@b.com", "First", "h1")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(models.NewUser("A@B.com", "Second", "h2")); err == nil {
		t.Error("unique index should reject the same email in different casing")
	}
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	u := models.NewUser("a@b.com", "Dana", "hash")
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}

	s := &models.Session{
		ID:         uuid.New(),
		UserID:     u.ID,
		Token:      "tok-1",
		Remembered: true,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
		CreatedAt:  time.Now().UTC(),
	}
	if err := sessions.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := sessions.GetByToken("tok-1")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if got == nil || got.UserID != u.ID || !got.Remembered {
		t.Fatalf("session not round-tripped: %+v", got)
	}

	if err := sessions.DeleteByUserID(u.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	got, err = sessions.GetByToken("tok-1")
	if err != nil || got != nil {
		t.Errorf("deleted session should read as nil, got %v, %v", got, err)
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	u := models.NewUser("a@b.com", "Dana", "hash")
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	expired := &models.Session{ID: uuid.New(), UserID: u.ID, Token: "old", ExpiresAt: now.Add(-time.Minute), CreatedAt: now}
	live := &models.Session{ID: uuid.New(), UserID: u.ID, Token: "new", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	if err := sessions.Create(expired); err != nil {
		t.Fatal(err)
	}
	if err := sessions.Create(live); err != nil {
		t.Fatal(err)
	}

	if err := sessions.DeleteExpired(); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if got, _ := sessions.GetByToken("old"); got != nil {
		t.Error("expired session should be swept")
	}
	if got, _ := sessions.GetByToken("new"); got == nil {
		t.Error("live session should survive")
	}
}

func TestReportRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	reports := NewReportRepository(db)

	u := models.NewUser("a@b.com", "Dana", "hash")
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}

	r := models.NewReport(u.ID, "September audit")
	r.MonthlyRevenue = decimal.NewFromInt(42000)
	r.MonthlyBankingFees = decimal.NewFromFloat(118.50)
	r.AnnualFees = decimal.NewFromInt(1422)
	r.EstimatedSavings = decimal.NewFromInt(600)
	r.Grade = "C"

	if err := reports.Create(r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := reports.GetByID(r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Title != "September audit" || got.Grade != "C" {
		t.Fatalf("report not round-tripped: %+v", got)
	}
	if !got.EstimatedSavings.Equal(decimal.NewFromInt(600)) {
		t.Errorf("savings = %s, want 600", got.EstimatedSavings)
	}

	list, err := reports.GetByUserID(u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("GetByUserID = %d reports, %v; want 1", len(list), err)
	}

	if err := reports.Delete(r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := reports.GetByID(r.ID); got != nil {
		t.Error("deleted report should read as nil")
	}
}
