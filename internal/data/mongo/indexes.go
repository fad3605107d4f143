package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the lookup and sort indexes both collections rely on.
// The name_key indexes are deliberately non-unique: duplicate item names are
// tolerated data, not an error. Index creation is idempotent, so this runs on
// every start.
func EnsureIndexes(ctx context.Context, logger *slog.Logger, db *mongo.Database) error {
	itemIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_key", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := db.Collection(ItemCollectionName).Indexes().CreateMany(ctx, itemIndexes); err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}

	transactionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_key", Value: 1}}},
		{Keys: bson.D{{Key: "item_name", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(TransactionCollectionName).Indexes().CreateMany(ctx, transactionIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	logger.Info("MongoDB indexes ensured",
		"items_collection", ItemCollectionName,
		"transactions_collection", TransactionCollectionName)

	return nil
}
