package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/inventory-stock-ledger/internal/domain/catalog"
	"github.com/inventory-stock-ledger/internal/domain/ledger"
)

// ItemServiceImpl implements the ItemService interface
type ItemServiceImpl struct {
	catalogRepo catalog.Repository
	ledgerRepo  ledger.Repository
	deriver     StockDeriver
	maintainer  CascadeMaintainer
	logger      *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(logger *slog.Logger, catalogRepo catalog.Repository, ledgerRepo ledger.Repository, deriver StockDeriver, maintainer CascadeMaintainer) ItemService {
	return &ItemServiceImpl{
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		deriver:     deriver,
		maintainer:  maintainer,
		logger:      logger,
	}
}

// CreateItem registers a new catalog item. Duplicate names are allowed; the
// matcher pairs history with whichever item carries the key.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, fields ItemFields) (*catalog.Item, error) {
	item, err := catalog.NewItem(fields.Name, fields.Unit, fields.AltUnit, fields.Factor, fields.AlertQty)
	if err != nil {
		return nil, err
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create item", "name", fields.Name, "error", err)
		return nil, err
	}

	return item, nil
}

// GetItemByID retrieves an item together with its derived stock levels
func (s *ItemServiceImpl) GetItemByID(ctx context.Context, id uuid.UUID) (*ItemWithStock, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.deriver.Derive(ctx, item)
	if err != nil {
		s.logger.Error("Failed to derive stock for item", "item_id", id.String(), "error", err)
		return nil, err
	}

	return &ItemWithStock{Item: item, Quantity: summary.Quantity, AltQuantity: summary.AltQuantity}, nil
}

// ListItems retrieves all items with their derived stock levels
func (s *ItemServiceImpl) ListItems(ctx context.Context) ([]*ItemWithStock, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.deriver.DeriveAll(ctx, items)
	if err != nil {
		s.logger.Error("Failed to derive stock for item listing", "items", len(items), "error", err)
		return nil, err
	}

	listing := make([]*ItemWithStock, len(items))
	for i, item := range items {
		listing[i] = &ItemWithStock{
			Item:        item,
			Quantity:    summaries[i].Quantity,
			AltQuantity: summaries[i].AltQuantity,
		}
	}
	return listing, nil
}

// UpdateItem replaces the item's catalog fields and cascades a rename to the
// ledger. The catalog write commits before the cascade runs; when the cascade
// fails the updated item is returned together with the cascade error so the
// caller can report partial success.
func (s *ItemServiceImpl) UpdateItem(ctx context.Context, id uuid.UUID, fields ItemFields) (*ItemWithStock, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := item.Name
	if err := item.Apply(fields.Name, fields.Unit, fields.AltUnit, fields.Factor, fields.AlertQty); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item", "item_id", id.String(), "error", err)
		return nil, err
	}

	var cascadeErr error
	if oldName != item.Name {
		if _, err := s.maintainer.Rename(ctx, oldName, item.Name); err != nil {
			cascadeErr = err
		}
	}

	summary, err := s.deriver.Derive(ctx, item)
	if err != nil {
		if cascadeErr != nil {
			// The catalog change applied; report the incomplete cascade over
			// the derivation failure.
			s.logger.Error("Failed to derive stock after incomplete cascade", "item_id", id.String(), "error", err)
			return &ItemWithStock{Item: item}, cascadeErr
		}
		s.logger.Error("Failed to derive stock for updated item", "item_id", id.String(), "error", err)
		return nil, err
	}

	result := &ItemWithStock{Item: item, Quantity: summary.Quantity, AltQuantity: summary.AltQuantity}
	return result, cascadeErr
}

// DeleteItem removes the item and cascades the delete to matching ledger
// rows. The catalog delete commits first; a cascade failure surfaces as a
// cascade error with the item already gone.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, id uuid.UUID) (int64, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete item", "item_id", id.String(), "error", err)
		return 0, err
	}

	deleted, err := s.maintainer.DeleteFor(ctx, item.Name)
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// ItemTransactions retrieves the item, its matched ledger rows, and the
// stock levels folded from exactly those rows
func (s *ItemServiceImpl) ItemTransactions(ctx context.Context, id uuid.UUID) (*ItemWithStock, []*ledger.Transaction, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.ledgerRepo.GetByNameKey(ctx, item.NameKey)
	if err != nil {
		s.logger.Error("Failed to load transactions for item", "item_id", id.String(), "error", err)
		return nil, nil, err
	}

	summary := s.deriver.Fold(item, rows)
	result := &ItemWithStock{Item: item, Quantity: summary.Quantity, AltQuantity: summary.AltQuantity}
	return result, rows, nil
}
