package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/server/middleware"
	"github.com/inventory-stock-ledger/internal/server/service"
)

// TransactionHandler handles HTTP requests for ledger transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create appends a movement to the ledger. The named item is not validated
// against the catalog; orphan rows are accepted.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), mapRequestToFields(req), middleware.GetRequestID(c))
	if err != nil {
		if isTransactionValidationError(err) {
			RespondValidationError(c, err.Error())
			return
		}
		h.logger.Error("Failed to create transaction", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// GetByID retrieves a transaction by its ID, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		var notFound ledger.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "transaction_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// List retrieves all transactions, newest date first
func (h *TransactionHandler) List(c *gin.Context) {
	rows, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionsToResponse(rows))
}

// Update replaces a transaction's submitted fields
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, mapRequestToFields(req), middleware.GetRequestID(c))
	if err != nil {
		var notFound ledger.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		if isTransactionValidationError(err) {
			RespondValidationError(c, err.Error())
			return
		}
		h.logger.Error("Failed to update transaction", "transaction_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// Delete removes a single transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		var notFound ledger.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to delete transaction", "transaction_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"id": id.String()})
}

func (h *TransactionHandler) transactionID(c *gin.Context) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondInvalidID(c, "Invalid transaction ID")
		return uuid.Nil, false
	}
	return id, true
}

func isTransactionValidationError(err error) bool {
	return errors.Is(err, ledger.ErrEmptyDate) || errors.Is(err, ledger.ErrEmptyItemName)
}

func mapRequestToFields(req TransactionRequest) ledger.Fields {
	return ledger.Fields{
		Date:     req.Date,
		Type:     req.Type,
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		AltQty:   req.AltQty,
		Unit:     req.Unit,
		AltUnit:  req.AltUnit,
		Rate:     req.Rate,
		Remarks:  req.Remarks,
	}
}

// mapTransactionToResponse maps a ledger transaction to a response DTO
func mapTransactionToResponse(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		Date:      tx.Date,
		Type:      tx.Type,
		ItemName:  tx.ItemName,
		Quantity:  string(tx.Quantity),
		AltQty:    string(tx.AltQty),
		Unit:      tx.Unit,
		AltUnit:   tx.AltUnit,
		Rate:      string(tx.Rate),
		Remarks:   tx.Remarks,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tx.UpdatedAt.Format(time.RFC3339),
	}
}

func mapTransactionsToResponse(rows []*ledger.Transaction) []TransactionResponse {
	transactions := make([]TransactionResponse, 0, len(rows))
	for _, tx := range rows {
		transactions = append(transactions, mapTransactionToResponse(tx))
	}
	return transactions
}
