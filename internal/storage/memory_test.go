package storage

import (
	"testing"

	"github.com/olibranch/platform/internal/models"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Owner@Example.COM", "owner@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"already@example.com", "already@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemoryUserStore_CreateAndLookup(t *testing.T) {
	store := NewMemoryUserStore()

	u := models.NewUser("Owner@Example.com", "Dana", "hash")
	if err := store.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "owner@example.com" {
		t.Errorf("email should be normalized at creation, got %q", u.Email)
	}

	// Lookup with different casing must hit the same record.
	got, err := store.GetByEmail("OWNER@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatal("case-insensitive lookup should find the user")
	}

	byID, err := store.GetByID(u.ID)
	if err != nil || byID == nil || byID.Email != "owner@example.com" {
		t.Fatalf("GetByID = %v, %v", byID, err)
	}
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryUserStore()

	if err := store.Create(models.NewUser("a@b.com", "First", "h1")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := store.Create(models.NewUser("A@B.com", "Second", "h2")); err == nil {
		t.Error("duplicate email with different casing should be rejected")
	}

	exists, err := store.EmailExists("a@B.COM")
	if err != nil || !exists {
		t.Errorf("EmailExists = %v, %v; want true", exists, err)
	}
}

func TestMemoryUserStore_MissingUser(t *testing.T) {
	store := NewMemoryUserStore()

	got, err := store.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got != nil {
		t.Error("missing user should be nil, not an error")
	}
}

func TestMemoryUserStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryUserStore()
	u := models.NewUser("a@b.com", "Dana", "hash")
	if err := store.Create(u); err != nil {
		t.Fatal(err)
	}

	first, _ := store.GetByEmail("a@b.com")
	first.Name = "Mutated"

	second, _ := store.GetByEmail("a@b.com")
	if second.Name != "Dana" {
		t.Error("mutating a returned record must not alter the store")
	}
}

func TestMemoryUserStore_Update(t *testing.T) {
	store := NewMemoryUserStore()
	u := models.NewUser("a@b.com", "Dana", "hash")
	if err := store.Create(u); err != nil {
		t.Fatal(err)
	}

	u.PasswordHash = "newhash"
	if err := store.Update(u); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.GetByEmail("a@b.com")
	if got.PasswordHash != "newhash" {
		t.Error("update should persist the new hash")
	}

	stranger := models.NewUser("x@y.com", "X", "h")
	if err := store.Update(stranger); err == nil {
		t.Error("updating an unknown user should fail")
	}
}
