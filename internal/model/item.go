package model

import (
	"fmt"
	"strings"
	"time"
)

// Item represents a single inventory entry owned by a user.
type Item struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	HasImage    bool      `json:"has_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch holds candidate item fields. A nil pointer means the field was
// not supplied, which matters for partial updates.
type ItemPatch struct {
	Name        *string `json:"name"`
	Quantity    *int64  `json:"quantity"`
	Description *string `json:"description"`
}

// NormalizeCreate validates a patch as item-creation input and returns the
// normalized field values. Name and quantity are required; description
// defaults to the empty string.
func (p ItemPatch) NormalizeCreate() (name string, quantity int64, description string, err error) {
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return "", 0, "", fmt.Errorf("Name is required")
	}
	name = strings.TrimSpace(*p.Name)

	if p.Quantity == nil || *p.Quantity < 0 {
		return "", 0, "", fmt.Errorf("Quantity must be a non-negative number")
	}
	quantity = *p.Quantity

	if p.Description != nil {
		description = *p.Description
	}
	return name, quantity, description, nil
}

// NormalizeUpdate validates a patch as partial-update input, trimming the
// name in place. Omitted fields stay nil and leave the stored value alone.
func (p *ItemPatch) NormalizeUpdate() error {
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return fmt.Errorf("Name cannot be empty")
		}
		*p.Name = trimmed
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("Quantity must be a non-negative number")
	}
	return nil
}

// Empty reports whether the patch supplies no fields at all.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Description == nil
}
