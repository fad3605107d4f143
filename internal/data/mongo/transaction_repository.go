package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/domain/shared"
)

const (
	// TransactionCollectionName is the name of the ledger collection in MongoDB
	TransactionCollectionName = "transactions"
)

// transactionSort orders rows by business date descending, then creation
// time descending as the deterministic tie-break within a date. Dates are
// YYYY-MM-DD strings, so lexicographic order is chronological order.
var transactionSort = bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}

// TransactionRepository implements the ledger.Repository interface for MongoDB
type TransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB ledger repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new ledger transaction. The referenced item name is not
// validated against the catalog; orphan rows are legal writes.
func (r *TransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	_, err := collection.InsertOne(ctx, tx)
	if err != nil {
		r.logger.Error("Failed to create ledger transaction",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create ledger transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger transaction by its ID.
// Returns ErrTransactionNotFound if no transaction exists.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"_id": id}
	var tx ledger.Transaction
	err := collection.FindOne(ctx, filter).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get ledger transaction",
			"transaction_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger transaction: %w", err)
	}

	return &tx, nil
}

// GetByNameKey retrieves every transaction whose normalized item name equals
// key, sorted date descending with creation time as the tie-break.
func (r *TransactionRepository) GetByNameKey(ctx context.Context, key string) ([]*ledger.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"name_key": key}
	opts := options.Find().SetSort(transactionSort)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger transactions by name key",
			"name_key", key,
			"error", err)
		return nil, fmt.Errorf("failed to get ledger transactions by name key: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*ledger.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		r.logger.Error("Failed to decode ledger transactions",
			"name_key", key,
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger transactions: %w", err)
	}

	return txs, nil
}

// List retrieves all ledger transactions sorted date descending with
// creation time as the tie-break.
func (r *TransactionRepository) List(ctx context.Context) ([]*ledger.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	opts := options.Find().SetSort(transactionSort)

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list ledger transactions", "error", err)
		return nil, fmt.Errorf("failed to list ledger transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*ledger.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		r.logger.Error("Failed to decode ledger transactions", "error", err)
		return nil, fmt.Errorf("failed to decode ledger transactions: %w", err)
	}

	return txs, nil
}

// Update replaces the stored transaction document.
// Returns ErrTransactionNotFound if the transaction doesn't exist.
func (r *TransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"_id": tx.ID}
	result, err := collection.ReplaceOne(ctx, filter, tx)
	if err != nil {
		r.logger.Error("Failed to update ledger transaction",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update ledger transaction: %w", err)
	}

	if result.MatchedCount == 0 {
		return ledger.ErrTransactionNotFound{TransactionID: tx.ID}
	}

	return nil
}

// Delete removes a ledger transaction by its ID.
// Returns ErrTransactionNotFound if the transaction doesn't exist.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"_id": id}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete ledger transaction",
			"transaction_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete ledger transaction: %w", err)
	}

	if result.DeletedCount == 0 {
		return ledger.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

// RenameItem rewrites the stored item name on every row whose item_name
// exactly equals oldName. Rows that match the old item only through the
// normalized key keep their text untouched.
func (r *TransactionRepository) RenameItem(ctx context.Context, oldName, newName string) (int64, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"item_name": oldName}
	update := bson.M{
		"$set": bson.M{
			"item_name":  newName,
			"name_key":   shared.NameKey(newName),
			"updated_at": time.Now(),
		},
	}

	result, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to rename item on ledger transactions",
			"old_name", oldName,
			"new_name", newName,
			"error", err)
		return 0, fmt.Errorf("failed to rename item on ledger transactions: %w", err)
	}

	return result.MatchedCount, nil
}

// DeleteByItemName removes every row whose item_name exactly equals name,
// returning the number of rows deleted. Zero is a successful outcome.
func (r *TransactionRepository) DeleteByItemName(ctx context.Context, name string) (int64, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"item_name": name}
	result, err := collection.DeleteMany(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete ledger transactions by item name",
			"item_name", name,
			"error", err)
		return 0, fmt.Errorf("failed to delete ledger transactions by item name: %w", err)
	}

	return result.DeletedCount, nil
}
