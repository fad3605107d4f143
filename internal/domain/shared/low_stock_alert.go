package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockAlert defines a Kafka message published when a ledger write leaves
// an item's derived quantity below its alert threshold
type LowStockAlert struct {
	ItemID     uuid.UUID       `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	AlertQty   decimal.Decimal `json:"alert_qty"`
	RequestID  string          `json:"request_id"`
	ObservedAt time.Time       `json:"observed_at"`
}
