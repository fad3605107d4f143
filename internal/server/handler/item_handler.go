package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inventory-stock-ledger/internal/cascade"
	"github.com/inventory-stock-ledger/internal/domain/catalog"
	"github.com/inventory-stock-ledger/internal/server/service"
)

// ItemHandler handles HTTP requests for catalog item operations
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(logger *slog.Logger, itemService service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// Create handles creation of a new catalog item. The response reports zero
// quantities; a freshly created item may still match pre-existing ledger rows
// on its next read.
func (h *ItemHandler) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), service.ItemFields{
		Name:     req.Name,
		Unit:     req.Unit,
		AltUnit:  req.AltUnit,
		Factor:   req.Factor,
		AlertQty: req.AlertQty,
	})
	if err != nil {
		if isItemValidationError(err) {
			RespondValidationError(c, err.Error())
			return
		}
		h.logger.Error("Failed to create item", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapItemToResponse(item, decimal.Zero, decimal.Zero))
}

// GetByID retrieves an item with its derived stock levels, returning 404 if
// not found
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	result, err := h.itemService.GetItemByID(c.Request.Context(), id)
	if err != nil {
		var notFound catalog.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to get item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapItemWithStockToResponse(result))
}

// List retrieves all catalog items with derived stock levels
func (h *ItemHandler) List(c *gin.Context) {
	listing, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list items", "error", err)
		RespondInternalError(c)
		return
	}

	items := make([]ItemResponse, 0, len(listing))
	for _, entry := range listing {
		items = append(items, mapItemWithStockToResponse(entry))
	}

	RespondOK(c, items)
}

// Update replaces the item's catalog fields. A cascade failure after the
// committed catalog write responds with both the updated item and a
// CASCADE_INCOMPLETE error.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.itemService.UpdateItem(c.Request.Context(), id, service.ItemFields{
		Name:     req.Name,
		Unit:     req.Unit,
		AltUnit:  req.AltUnit,
		Factor:   req.Factor,
		AlertQty: req.AlertQty,
	})
	if err != nil {
		var cascadeErr *cascade.Error
		if errors.As(err, &cascadeErr) && result != nil {
			RespondCascadeIncomplete(c, mapItemWithStockToResponse(result),
				"The item was updated but renaming its ledger transactions failed; retry the update to finish the rename")
			return
		}
		var notFound catalog.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		if isItemValidationError(err) {
			RespondValidationError(c, err.Error())
			return
		}
		h.logger.Error("Failed to update item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapItemWithStockToResponse(result))
}

// Delete removes the item and its matching ledger transactions. A cascade
// failure responds with CASCADE_INCOMPLETE; the item itself is already gone.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	deleted, err := h.itemService.DeleteItem(c.Request.Context(), id)
	if err != nil {
		var cascadeErr *cascade.Error
		if errors.As(err, &cascadeErr) {
			RespondCascadeIncomplete(c, DeleteItemResponse{DeletedTransactions: deleted},
				"The item was deleted but removing its ledger transactions failed; retry the delete to finish the cleanup")
			return
		}
		var notFound catalog.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to delete item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, DeleteItemResponse{DeletedTransactions: deleted})
}

// ListTransactions retrieves the item's matched ledger rows together with the
// stock levels folded from them
func (h *ItemHandler) ListTransactions(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	result, rows, err := h.itemService.ItemTransactions(c.Request.Context(), id)
	if err != nil {
		var notFound catalog.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to list item transactions", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, ItemTransactionsResponse{
		Item:         mapItemWithStockToResponse(result),
		Transactions: mapTransactionsToResponse(rows),
	})
}

func (h *ItemHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid item ID", "id", idParam, "error", err)
		RespondInvalidID(c, "Invalid item ID")
		return uuid.Nil, false
	}
	return id, true
}

func isItemValidationError(err error) bool {
	return errors.Is(err, catalog.ErrEmptyName) || errors.Is(err, catalog.ErrEmptyUnit)
}

// mapItemToResponse maps an item entity and its derived stock levels to a
// response DTO
func mapItemToResponse(item *catalog.Item, quantity, altQuantity decimal.Decimal) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Unit:        item.Unit,
		AltUnit:     item.AltUnit,
		Factor:      item.Factor,
		AlertQty:    string(item.AlertQty),
		Quantity:    quantity.String(),
		AltQuantity: altQuantity.String(),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapItemWithStockToResponse(result *service.ItemWithStock) ItemResponse {
	return mapItemToResponse(result.Item, result.Quantity, result.AltQuantity)
}
