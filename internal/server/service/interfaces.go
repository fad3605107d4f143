package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inventory-stock-ledger/internal/domain/catalog"
	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/domain/shared"
	"github.com/inventory-stock-ledger/internal/reconcile"
)

// ItemFields carries the submitted catalog attributes of an item write.
type ItemFields struct {
	Name     string
	Unit     string
	AltUnit  string
	Factor   string
	AlertQty shared.NumericText
}

// ItemWithStock pairs a catalog item with its derived stock levels.
type ItemWithStock struct {
	Item        *catalog.Item
	Quantity    decimal.Decimal
	AltQuantity decimal.Decimal
}

// ItemService defines the interface for catalog item operations
type ItemService interface {
	// CreateItem registers a new catalog item
	// A new item starts with zero derived quantities; no history lookup is made
	CreateItem(ctx context.Context, fields ItemFields) (*catalog.Item, error)

	// GetItemByID retrieves an item together with its derived stock levels
	// Returns ErrItemNotFound if the item doesn't exist
	GetItemByID(ctx context.Context, id uuid.UUID) (*ItemWithStock, error)

	// ListItems retrieves all items, each with derived stock levels
	ListItems(ctx context.Context) ([]*ItemWithStock, error)

	// UpdateItem replaces the item's catalog fields; a changed name cascades
	// the rename to matching ledger rows. When the catalog write applied but
	// the cascade failed, the updated item is returned together with a
	// *cascade.Error
	UpdateItem(ctx context.Context, id uuid.UUID, fields ItemFields) (*ItemWithStock, error)

	// DeleteItem removes the item and cascades the delete to matching ledger
	// rows, returning how many transactions went with it. When the catalog
	// delete applied but the cascade failed, the error is a *cascade.Error
	DeleteItem(ctx context.Context, id uuid.UUID) (int64, error)

	// ItemTransactions retrieves the item, its derived stock levels, and the
	// ledger rows the derivation folded
	ItemTransactions(ctx context.Context, id uuid.UUID) (*ItemWithStock, []*ledger.Transaction, error)
}

// TransactionService defines the interface for ledger transaction operations
type TransactionService interface {
	// CreateTransaction appends a movement to the ledger, applying the
	// alternate-quantity fill. The named item is not required to exist.
	// requestID ties the emitted low-stock advisory back to the HTTP request
	CreateTransaction(ctx context.Context, fields ledger.Fields, requestID string) (*ledger.Transaction, error)

	// GetTransactionByID retrieves a transaction by its ID
	// Returns ErrTransactionNotFound if the transaction doesn't exist
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)

	// ListTransactions retrieves all transactions, newest date first
	ListTransactions(ctx context.Context) ([]*ledger.Transaction, error)

	// UpdateTransaction replaces a row's submitted fields and re-applies the
	// alternate-quantity fill
	UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.Fields, requestID string) (*ledger.Transaction, error)

	// DeleteTransaction removes a single ledger row
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// StockDeriver computes derived stock levels from the ledger. Implemented by
// the reconcile engine.
type StockDeriver interface {
	Fold(item *catalog.Item, rows []*ledger.Transaction) reconcile.Summary
	Derive(ctx context.Context, item *catalog.Item) (reconcile.Summary, error)
	DeriveAll(ctx context.Context, items []*catalog.Item) ([]reconcile.Summary, error)
	DeriveByNameKey(ctx context.Context, key string) (*catalog.Item, reconcile.Summary, error)
	FillAltQty(ctx context.Context, fields ledger.Fields) (shared.NumericText, error)
}

// CascadeMaintainer propagates catalog renames and deletes to the ledger rows
// that reference the item by name.
type CascadeMaintainer interface {
	Rename(ctx context.Context, oldName, newName string) (int64, error)
	DeleteFor(ctx context.Context, name string) (int64, error)
}
