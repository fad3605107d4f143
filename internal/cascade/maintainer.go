package cascade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inventory-stock-ledger/internal/domain/ledger"
)

// Op identifies which catalog change a cascade was propagating.
type Op string

const (
	OpRename Op = "rename"
	OpDelete Op = "delete"
)

// Error reports a cascade that did not reach the ledger: the catalog change
// it was propagating has already been applied, so callers must surface the
// partial result rather than roll anything back.
type Error struct {
	Op       Op
	ItemName string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cascade %s for item %q failed: %v", e.Op, e.ItemName, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Maintainer propagates catalog renames and deletes to the ledger rows that
// reference the item by name. The two writes are not atomic; a failed
// propagation leaves the catalog change in place and the ledger untouched.
type Maintainer struct {
	ledgerRepo ledger.Repository
	logger     *slog.Logger
}

func NewMaintainer(logger *slog.Logger, ledgerRepo ledger.Repository) *Maintainer {
	return &Maintainer{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Rename rewrites the stored item name on every transaction that matches the
// old name exactly, and returns how many rows were rewritten. Rows whose
// free-text name differs in spacing or casing are left untouched; they keep
// their original spelling and their own name key.
func (m *Maintainer) Rename(ctx context.Context, oldName, newName string) (int64, error) {
	renamed, err := m.ledgerRepo.RenameItem(ctx, oldName, newName)
	if err != nil {
		m.logger.Error("Failed to cascade rename to ledger",
			"old_name", oldName,
			"new_name", newName,
			"error", err)
		return 0, &Error{Op: OpRename, ItemName: oldName, Err: err}
	}

	m.logger.Info("Cascaded item rename to ledger",
		"old_name", oldName,
		"new_name", newName,
		"renamed_transactions", renamed)
	return renamed, nil
}

// DeleteFor removes every transaction that references the named item and
// returns how many rows went with it. Zero matches is a success.
func (m *Maintainer) DeleteFor(ctx context.Context, name string) (int64, error) {
	deleted, err := m.ledgerRepo.DeleteByItemName(ctx, name)
	if err != nil {
		m.logger.Error("Failed to cascade delete to ledger",
			"item_name", name,
			"error", err)
		return 0, &Error{Op: OpDelete, ItemName: name, Err: err}
	}

	m.logger.Info("Cascaded item delete to ledger",
		"item_name", name,
		"deleted_transactions", deleted)
	return deleted, nil
}
