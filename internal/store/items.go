package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlakar/inventar/internal/model"
)

const itemColumns = `id, user_id, name, quantity, description, image IS NOT NULL, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity,
		&item.Description, &item.HasImage, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem inserts a new item owned by userID. Returns ErrDuplicate if the
// user already has an item with this name.
func CreateItem(ctx context.Context, db *sql.DB, userID, name string, quantity int64, description string) (*model.Item, error) {
	now := time.Now().UTC()
	item := &model.Item{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, user_id, name, quantity, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Quantity, item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return item, nil
}

// GetItem returns an item by id, scoped to its owner. A foreign owner's item
// yields ErrNotFound just like a missing id.
func GetItem(ctx context.Context, db *sql.DB, userID, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND user_id = ?`, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items owned by userID, newest first.
func ListItems(ctx context.Context, db *sql.DB, userID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem applies only the fields supplied in patch, scoped by id and
// owner, and refreshes updated_at. Returns ErrNotFound when no row matches
// and ErrDuplicate when the new name collides with another item of the
// same owner.
func UpdateItem(ctx context.Context, db *sql.DB, userID, id string, patch model.ItemPatch) (*model.Item, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Quantity != nil {
		set = append(set, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	args = append(args, id, userID)

	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(set, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return GetItem(ctx, db, userID, id)
}

// DeleteItem removes an item, scoped by id and owner. Deletion is permanent.
func DeleteItem(ctx context.Context, db *sql.DB, userID, id string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetItemImage stores an item's photo, scoped by id and owner.
func SetItemImage(ctx context.Context, db *sql.DB, userID, id string, image []byte) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		image, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemImage returns an item's photo, scoped by id and owner. Returns
// ErrNotFound for a missing item and nil data for an item without a photo.
func GetItemImage(ctx context.Context, db *sql.DB, userID, id string) ([]byte, error) {
	var image []byte
	err := db.QueryRowContext(ctx,
		`SELECT image FROM items WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&image)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item image: %w", err)
	}
	return image, nil
}
