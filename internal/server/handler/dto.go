package handler

import (
	"github.com/inventory-stock-ledger/internal/domain/shared"
)

// ItemRequest represents the body of item create and update calls. Numeric
// fields accept JSON strings or numbers; free text is kept as submitted.
type ItemRequest struct {
	Name     string             `json:"name" binding:"required"`
	Unit     string             `json:"unit" binding:"required"`
	AltUnit  string             `json:"alt_unit"`
	Factor   string             `json:"factor"`
	AlertQty shared.NumericText `json:"alert_qty"`
}

// ItemResponse represents a catalog item in API responses. quantity and
// alt_quantity carry the stock levels derived from the ledger at read time.
type ItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	AltUnit     string `json:"alt_unit"`
	Factor      string `json:"factor"`
	AlertQty    string `json:"alert_qty"`
	Quantity    string `json:"quantity"`
	AltQuantity string `json:"alt_quantity"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TransactionRequest represents the body of transaction create and update
// calls. item_name is free text; the referenced item does not have to exist.
type TransactionRequest struct {
	Date     string             `json:"date" binding:"required"`
	Type     string             `json:"type"`
	ItemName string             `json:"item_name" binding:"required"`
	Quantity shared.NumericText `json:"quantity"`
	AltQty   shared.NumericText `json:"alt_qty"`
	Unit     string             `json:"unit"`
	AltUnit  string             `json:"alt_unit"`
	Rate     shared.NumericText `json:"rate"`
	Remarks  string             `json:"remarks"`
}

// TransactionResponse represents a ledger transaction in API responses.
// Submitted fields are reported verbatim, the way they were stored.
type TransactionResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	ItemName  string `json:"item_name"`
	Quantity  string `json:"quantity"`
	AltQty    string `json:"alt_qty"`
	Unit      string `json:"unit,omitempty"`
	AltUnit   string `json:"alt_unit,omitempty"`
	Rate      string `json:"rate,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// DeleteItemResponse reports the outcome of an item delete, including how
// many ledger transactions the cascade removed
type DeleteItemResponse struct {
	DeletedTransactions int64 `json:"deleted_transactions"`
}

// ItemTransactionsResponse pairs an item with the ledger rows its derivation
// folds
type ItemTransactionsResponse struct {
	Item         ItemResponse          `json:"item"`
	Transactions []TransactionResponse `json:"transactions"`
}
