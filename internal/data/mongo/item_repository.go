package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inventory-stock-ledger/internal/domain/catalog"
)

const (
	// ItemCollectionName is the name of the catalog collection in MongoDB
	ItemCollectionName = "items"
)

// ItemRepository implements the catalog.Repository interface for MongoDB
type ItemRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewItemRepository creates a new MongoDB catalog repository
func NewItemRepository(logger *slog.Logger, db *mongo.Database) catalog.Repository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new catalog item. Names are deliberately not checked for
// uniqueness; two items sharing a name key both match the same ledger rows.
func (r *ItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	collection := r.db.Collection(ItemCollectionName)

	_, err := collection.InsertOne(ctx, item)
	if err != nil {
		r.logger.Error("Failed to create catalog item",
			"item_id", item.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create catalog item: %w", err)
	}

	return nil
}

// GetByID retrieves a catalog item by its ID.
// Returns ErrItemNotFound if no item exists.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"_id": id}
	var item catalog.Item
	err := collection.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrItemNotFound{ItemID: id}
		}
		r.logger.Error("Failed to get catalog item",
			"item_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return &item, nil
}

// GetByNameKey retrieves the first item whose normalized name equals key.
// Returns nil without error when no item matches, since absence is an
// ordinary outcome for ledger rows referencing unknown items.
func (r *ItemRepository) GetByNameKey(ctx context.Context, key string) (*catalog.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"name_key": key}
	var item catalog.Item
	err := collection.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // No item carries this name key
		}
		r.logger.Error("Failed to get catalog item by name key",
			"name_key", key,
			"error", err)
		return nil, fmt.Errorf("failed to get catalog item by name key: %w", err)
	}

	return &item, nil
}

// List retrieves all catalog items sorted by name ascending, creation time
// as the tie-break.
func (r *ItemRepository) List(ctx context.Context) ([]*catalog.Item, error) {
	collection := r.db.Collection(ItemCollectionName)

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list catalog items", "error", err)
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*catalog.Item
	if err := cursor.All(ctx, &items); err != nil {
		r.logger.Error("Failed to decode catalog items", "error", err)
		return nil, fmt.Errorf("failed to decode catalog items: %w", err)
	}

	return items, nil
}

// Update replaces the stored item document.
// Returns ErrItemNotFound if the item doesn't exist.
func (r *ItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"_id": item.ID}
	result, err := collection.ReplaceOne(ctx, filter, item)
	if err != nil {
		r.logger.Error("Failed to update catalog item",
			"item_id", item.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update catalog item: %w", err)
	}

	if result.MatchedCount == 0 {
		return catalog.ErrItemNotFound{ItemID: item.ID}
	}

	return nil
}

// Delete removes a catalog item by its ID.
// Returns ErrItemNotFound if the item doesn't exist.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ItemCollectionName)

	filter := bson.M{"_id": id}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete catalog item",
			"item_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}

	if result.DeletedCount == 0 {
		return catalog.ErrItemNotFound{ItemID: id}
	}

	return nil
}
