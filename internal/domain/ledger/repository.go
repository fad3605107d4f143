package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages ledger transaction persistence. List and GetByNameKey
// return rows sorted by date descending with creation time as the
// deterministic tie-break within a date.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByNameKey(ctx context.Context, key string) ([]*Transaction, error)
	List(ctx context.Context) ([]*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RenameItem rewrites the stored item name on every row whose item_name
	// exactly equals oldName, returning the number of rows matched.
	RenameItem(ctx context.Context, oldName, newName string) (int64, error)
	// DeleteByItemName removes every row whose item_name exactly equals name,
	// returning the number of rows deleted.
	DeleteByItemName(ctx context.Context, name string) (int64, error)
}

// ErrTransactionNotFound indicates missing ledger transaction
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "ledger transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	// If the target TransactionID is empty, consider it a match for any ErrTransactionNotFound
	if t.TransactionID == uuid.Nil {
		return true
	}
	// Otherwise, match on TransactionID
	return e.TransactionID == t.TransactionID
}
