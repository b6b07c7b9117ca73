package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mlakar/inventar/internal/db"
	"github.com/mlakar/inventar/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	item, err := CreateItem(ctx, database, owner.ID, "Widget", 5, "a widget")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated item id")
	}
	if item.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", item.Quantity)
	}

	got, err := GetItem(ctx, database, owner.ID, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Name != "Widget" || got.Description != "a widget" {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.UserID != owner.ID {
		t.Errorf("expected owner %q, got %q", owner.ID, got.UserID)
	}
}

func TestCreateItemDuplicateNamePerOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u1 := testUser(t, database, "u1@example.com")
	u2 := testUser(t, database, "u2@example.com")

	if _, err := CreateItem(ctx, database, u1.ID, "Widget", 5, ""); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Same name, same owner: rejected.
	_, err := CreateItem(ctx, database, u1.ID, "Widget", 1, "")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// Same name, different owner: fine.
	if _, err := CreateItem(ctx, database, u2.ID, "Widget", 1, ""); err != nil {
		t.Errorf("expected cross-owner create to succeed, got %v", err)
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	for _, name := range []string{"A", "B", "C"} {
		if _, err := CreateItem(ctx, database, owner.ID, name, 1, ""); err != nil {
			t.Fatalf("CreateItem(%q): %v", name, err)
		}
	}

	items, err := ListItems(ctx, database, owner.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"C", "B", "A"} {
		if items[i].Name != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, want)
		}
	}
}

func TestListItemsScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u1 := testUser(t, database, "u1@example.com")
	u2 := testUser(t, database, "u2@example.com")

	CreateItem(ctx, database, u1.ID, "Mine", 1, "")

	items, err := ListItems(ctx, database, u2.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items for other user, got %d", len(items))
	}
}

func TestUpdateItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	item, _ := CreateItem(ctx, database, owner.ID, "Widget", 5, "original")

	updated, err := UpdateItem(ctx, database, owner.ID, item.ID, model.ItemPatch{
		Quantity: intPtr(10),
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", updated.Quantity)
	}
	if updated.Name != "Widget" || updated.Description != "original" {
		t.Errorf("omitted fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(item.UpdatedAt) {
		t.Error("expected updated_at to be refreshed")
	}
	if updated.UserID != owner.ID {
		t.Errorf("owner changed on update: %q", updated.UserID)
	}
}

func TestUpdateItemDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	CreateItem(ctx, database, owner.ID, "First", 1, "")
	second, _ := CreateItem(ctx, database, owner.ID, "Second", 1, "")

	_, err := UpdateItem(ctx, database, owner.ID, second.ID, model.ItemPatch{
		Name: strPtr("First"),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateItemWrongOwnerIsNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u1 := testUser(t, database, "u1@example.com")
	u2 := testUser(t, database, "u2@example.com")

	item, _ := CreateItem(ctx, database, u1.ID, "Widget", 5, "")

	_, err := UpdateItem(ctx, database, u2.ID, item.ID, model.ItemPatch{
		Quantity: intPtr(1),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign item, got %v", err)
	}

	// Item unchanged for the real owner.
	got, _ := GetItem(ctx, database, u1.ID, item.ID)
	if got.Quantity != 5 {
		t.Errorf("foreign update modified item: quantity %d", got.Quantity)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	item, _ := CreateItem(ctx, database, owner.ID, "Delete Me", 1, "")

	if err := DeleteItem(ctx, database, owner.ID, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := GetItem(ctx, database, owner.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is the same NotFound, not a fault.
	if err := DeleteItem(ctx, database, owner.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteItemWrongOwnerIsNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u1 := testUser(t, database, "u1@example.com")
	u2 := testUser(t, database, "u2@example.com")

	item, _ := CreateItem(ctx, database, u1.ID, "Widget", 1, "")

	if err := DeleteItem(ctx, database, u2.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := GetItem(ctx, database, u1.ID, item.ID); err != nil {
		t.Errorf("item should survive foreign delete, got %v", err)
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "owner@example.com")

	item, _ := CreateItem(ctx, database, owner.ID, "Photo Item", 1, "")

	imageData := []byte("fake image data")
	if err := SetItemImage(ctx, database, owner.ID, item.ID, imageData); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, err := GetItemImage(ctx, database, owner.ID, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}

	got, _ := GetItem(ctx, database, owner.ID, item.ID)
	if !got.HasImage {
		t.Error("expected HasImage after upload")
	}
}
