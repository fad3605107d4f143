// Package reconcile derives current stock levels from the transaction
// ledger. Nothing in the system stores a running total: every quantity the
// API reports is computed here by folding an item's matched movements.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/inventory-stock-ledger/internal/domain/catalog"
	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/domain/shared"
)

// Summary holds the derived stock levels for one item: the signed sum of
// matched movements in the primary unit and the corresponding alternate-unit
// total.
type Summary struct {
	Quantity    decimal.Decimal
	AltQuantity decimal.Decimal
}

// Engine computes stock summaries against the catalog and ledger stores.
// Derivations are read-only and hold no state between requests; listing
// fan-out runs on a bounded worker pool owned by the engine.
type Engine struct {
	catalogRepo catalog.Repository
	ledgerRepo  ledger.Repository
	pool        *ants.Pool
	logger      *slog.Logger
}

// NewEngine creates a reconciliation engine with a worker pool of the given
// size for listing fan-out.
func NewEngine(logger *slog.Logger, catalogRepo catalog.Repository, ledgerRepo ledger.Repository, poolSize int) (*Engine, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create derivation worker pool: %w", err)
	}

	return &Engine{
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		pool:        pool,
		logger:      logger,
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	e.logger.Info("Releasing stock derivation worker pool", "running_workers", e.pool.Running())
	e.pool.Release()
}

// Fold computes an item's summary from already-loaded ledger rows.
//
// Primary quantity is the order-independent signed sum of each row's
// quantity: added for IN movements, subtracted for OUT. Unparsable
// quantities contribute zero; the result may be negative (overdraw is
// reported, never clamped).
//
// Alternate quantity applies one strategy everywhere: summed history with
// factor fallback. The alternate quantities recorded on the rows are summed
// with the same sign convention. Only when no matched row carries a non-zero
// alternate quantity (history predating the write-time fill) and the item's
// factor is a numeric ratio, the sum is replaced by quantity times factor.
// Offsetting alternate entries that sum to zero are real data and stay
// summed.
func (e *Engine) Fold(item *catalog.Item, rows []*ledger.Transaction) Summary {
	quantity := decimal.Zero
	altQuantity := decimal.Zero
	altRecorded := false

	for _, row := range rows {
		quantity = quantity.Add(row.SignedQuantity())
		if !row.AltQty.Decimal().IsZero() {
			altRecorded = true
		}
		altQuantity = altQuantity.Add(row.SignedAltQty())
	}

	if !altRecorded {
		if factor, kind := item.ConversionFactor(); kind == catalog.FactorRatio {
			altQuantity = quantity.Mul(factor)
		}
	}

	return Summary{Quantity: quantity, AltQuantity: altQuantity}
}

// Derive loads the item's matched ledger rows and folds them into a summary.
// An item with no matching rows derives to zero quantities.
func (e *Engine) Derive(ctx context.Context, item *catalog.Item) (Summary, error) {
	rows, err := e.ledgerRepo.GetByNameKey(ctx, item.NameKey)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load ledger rows for item %q: %w", item.Name, err)
	}
	return e.Fold(item, rows), nil
}

// DeriveAll computes every item's summary concurrently on the worker pool.
// Results are returned in item order regardless of completion order. Any
// failed derivation fails the whole listing; there are no partial results.
func (e *Engine) DeriveAll(ctx context.Context, items []*catalog.Item) ([]Summary, error) {
	summaries := make([]Summary, len(items))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			summary, err := e.Derive(ctx, item)
			if err != nil {
				setErr(err)
				return
			}
			summaries[i] = summary
		})
		if err != nil {
			wg.Done()
			setErr(fmt.Errorf("failed to submit derivation for item %q: %w", item.Name, err))
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return summaries, nil
}

// DeriveByNameKey resolves the first catalog item with the given name key
// and derives its summary. A missing item returns nil without error, since
// ledger rows legitimately reference names the catalog does not hold.
func (e *Engine) DeriveByNameKey(ctx context.Context, key string) (*catalog.Item, Summary, error) {
	item, err := e.catalogRepo.GetByNameKey(ctx, key)
	if err != nil {
		return nil, Summary{}, err
	}
	if item == nil {
		return nil, Summary{}, nil
	}

	summary, err := e.Derive(ctx, item)
	if err != nil {
		return nil, Summary{}, err
	}
	return item, summary, nil
}

// FillAltQty computes the alternate quantity to persist on a ledger write.
// A submitted value that coerces non-zero is kept verbatim. Otherwise the
// named item's factor fills quantity times factor when it is a numeric
// ratio; in every other case (no item, Manual, no conversion) the stored
// value is "0". The fill never rejects a write; only a store failure aborts.
func (e *Engine) FillAltQty(ctx context.Context, f ledger.Fields) (shared.NumericText, error) {
	if !f.AltQty.Decimal().IsZero() {
		return f.AltQty, nil
	}

	item, err := e.catalogRepo.GetByNameKey(ctx, shared.NameKey(f.ItemName))
	if err != nil {
		return "", fmt.Errorf("failed to look up item %q for alternate quantity fill: %w", f.ItemName, err)
	}
	if item == nil {
		return "0", nil
	}

	factor, kind := item.ConversionFactor()
	if kind != catalog.FactorRatio {
		return "0", nil
	}

	return shared.NumericText(f.Quantity.Decimal().Mul(factor).String()), nil
}
