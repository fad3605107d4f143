package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages catalog item persistence
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// GetByNameKey returns the first item whose normalized name equals key,
	// or nil without error when no item matches.
	GetByNameKey(ctx context.Context, key string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrItemNotFound indicates missing catalog item
type ErrItemNotFound struct {
	ItemID uuid.UUID
}

func (e ErrItemNotFound) Error() string {
	return "catalog item not found: " + e.ItemID.String()
}

// Is implements the errors.Is interface for ErrItemNotFound
func (e ErrItemNotFound) Is(target error) bool {
	t, ok := target.(ErrItemNotFound)
	if !ok {
		return false
	}
	// If the target ItemID is empty, consider it a match for any ErrItemNotFound
	if t.ItemID == uuid.Nil {
		return true
	}
	// Otherwise, match on ItemID
	return e.ItemID == t.ItemID
}
