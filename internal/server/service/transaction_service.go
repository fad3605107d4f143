package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/domain/shared"
	"github.com/inventory-stock-ledger/internal/platform/messaging/producers"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	ledgerRepo ledger.Repository
	deriver    StockDeriver
	producer   producers.MessagePublisher // nil when the advisory producer is disabled
	logger     *slog.Logger
}

// NewTransactionService creates a new transaction service. producer may be
// nil, which disables low-stock advisories.
func NewTransactionService(logger *slog.Logger, ledgerRepo ledger.Repository, deriver StockDeriver, producer producers.MessagePublisher) TransactionService {
	return &TransactionServiceImpl{
		ledgerRepo: ledgerRepo,
		deriver:    deriver,
		producer:   producer,
		logger:     logger,
	}
}

// CreateTransaction appends a movement to the ledger. The named item is never
// required to exist; rows written ahead of their item stay inert until a
// matching catalog entry appears.
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, fields ledger.Fields, requestID string) (*ledger.Transaction, error) {
	tx, err := ledger.NewTransaction(fields)
	if err != nil {
		return nil, err
	}

	filled, err := s.deriver.FillAltQty(ctx, fields)
	if err != nil {
		s.logger.Error("Failed to fill alternate quantity", "item_name", fields.ItemName, "error", err)
		return nil, err
	}
	tx.AltQty = filled

	if err := s.ledgerRepo.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to create transaction", "item_name", fields.ItemName, "error", err)
		return nil, err
	}

	s.notifyLowStock(ctx, tx, requestID)

	return tx, nil
}

// GetTransactionByID retrieves a transaction by its ID
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return s.ledgerRepo.GetByID(ctx, id)
}

// ListTransactions retrieves all transactions, newest date first
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	return s.ledgerRepo.List(ctx)
}

// UpdateTransaction replaces a row's submitted fields, re-applies the
// alternate-quantity fill, and persists the result
func (s *TransactionServiceImpl) UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.Fields, requestID string) (*ledger.Transaction, error) {
	tx, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Apply(fields); err != nil {
		return nil, err
	}

	filled, err := s.deriver.FillAltQty(ctx, fields)
	if err != nil {
		s.logger.Error("Failed to fill alternate quantity", "item_name", fields.ItemName, "error", err)
		return nil, err
	}
	tx.AltQty = filled

	if err := s.ledgerRepo.Update(ctx, tx); err != nil {
		s.logger.Error("Failed to update transaction", "transaction_id", id.String(), "error", err)
		return nil, err
	}

	s.notifyLowStock(ctx, tx, requestID)

	return tx, nil
}

// DeleteTransaction removes a single ledger row. Nothing in the catalog is
// touched.
func (s *TransactionServiceImpl) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.ledgerRepo.Delete(ctx, id)
}

// notifyLowStock publishes a low-stock advisory when the written row's item
// exists, has alerting enabled, and its derived quantity sits strictly below
// the threshold. Advisories are best-effort: failures are logged and never
// surfaced to the caller.
func (s *TransactionServiceImpl) notifyLowStock(ctx context.Context, tx *ledger.Transaction, requestID string) {
	if s.producer == nil {
		return
	}

	item, summary, err := s.deriver.DeriveByNameKey(ctx, tx.NameKey)
	if err != nil {
		s.logger.Error("Failed to derive stock for low stock check",
			"item_name", tx.ItemName,
			"error", err)
		return
	}
	if item == nil {
		return
	}

	threshold, enabled := item.AlertThreshold()
	if !enabled || summary.Quantity.GreaterThanOrEqual(threshold) {
		return
	}

	alert := shared.LowStockAlert{
		ItemID:     item.ID,
		ItemName:   item.Name,
		Unit:       item.Unit,
		Quantity:   summary.Quantity,
		AlertQty:   threshold,
		RequestID:  requestID,
		ObservedAt: time.Now(),
	}

	if err := s.producer.Publish(ctx, item.ID.String(), alert); err != nil {
		s.logger.Error("Failed to publish low stock alert",
			"item_id", item.ID.String(),
			"item_name", item.Name,
			"error", err)
		return
	}

	s.logger.Info("Low stock alert published",
		"item_id", item.ID.String(),
		"item_name", item.Name,
		"quantity", summary.Quantity.String(),
		"alert_qty", threshold.String())
}
