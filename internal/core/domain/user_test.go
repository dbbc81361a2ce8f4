package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUser_Public_StripsPassword(t *testing.T) {
	u := NewUser("id-1", "a@b.com", "xyz", "A", "", time.Now().UTC())

	raw, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := body["password"]; ok {
		t.Fatalf("password must not be serialized: %s", raw)
	}
	if body["_id"] != "id-1" || body["email"] != "a@b.com" {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if cart, ok := body["cart"].([]any); !ok || len(cart) != 0 {
		t.Fatalf("expected empty cart array, got %v", body["cart"])
	}
	if wl, ok := body["wishlist"].([]any); !ok || len(wl) != 0 {
		t.Fatalf("expected empty wishlist array, got %v", body["wishlist"])
	}
}

func TestUser_Public_NilCollections(t *testing.T) {
	u := &User{ID: "id-2", Email: "c@d.com"}
	p := u.Public()
	if p.Cart == nil || p.Wishlist == nil {
		t.Fatalf("expected non-nil collections, got %+v", p)
	}
}

func TestNewUser_TimestampsInMilliseconds(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 123456789, time.FixedZone("X", 3600))
	u := NewUser("id", "a@b.com", "xyz", "A", "", at)

	want := time.Date(2026, 3, 1, 11, 30, 0, 123000000, time.UTC)
	if !u.CreatedAt.Equal(want) || u.CreatedAt.Location() != time.UTC {
		t.Fatalf("unexpected createdAt %v", u.CreatedAt)
	}
	if !u.UpdatedAt.Equal(u.CreatedAt) {
		t.Fatalf("updatedAt must equal createdAt")
	}
}
