package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inventory-stock-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrEmptyDate     = errors.New("transaction date cannot be empty")
	ErrEmptyItemName = errors.New("transaction item name cannot be empty")
)

// Fields carries the submitted attributes of a ledger write.
type Fields struct {
	Date     string
	Type     string
	ItemName string
	Quantity shared.NumericText
	AltQty   shared.NumericText
	Unit     string
	AltUnit  string
	Rate     shared.NumericText
	Remarks  string
}

// Transaction represents one dated stock movement. It references its item by
// free-text name only; the catalog is never consulted on write, so rows may
// be orphans until a matching item appears.
type Transaction struct {
	ID        uuid.UUID          `json:"id" bson:"_id"`
	Date      string             `json:"date" bson:"date"`
	Type      string             `json:"type" bson:"type"`
	ItemName  string             `json:"item_name" bson:"item_name"`
	NameKey   string             `json:"name_key" bson:"name_key"`
	Quantity  shared.NumericText `json:"quantity" bson:"quantity"`
	AltQty    shared.NumericText `json:"alt_qty" bson:"alt_qty"`
	Unit      string             `json:"unit,omitempty" bson:"unit,omitempty"`
	AltUnit   string             `json:"alt_unit,omitempty" bson:"alt_unit,omitempty"`
	Rate      shared.NumericText `json:"rate,omitempty" bson:"rate,omitempty"`
	Remarks   string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewTransaction creates a ledger transaction from submitted fields. Date and
// item name are required after trimming; everything else is stored as
// submitted. The alternate quantity fill happens in the service layer before
// the row is persisted.
func NewTransaction(f Fields) (*Transaction, error) {
	if strings.TrimSpace(f.Date) == "" {
		return nil, ErrEmptyDate
	}
	if strings.TrimSpace(f.ItemName) == "" {
		return nil, ErrEmptyItemName
	}

	now := time.Now()
	return &Transaction{
		ID:        uuid.New(),
		Date:      f.Date,
		Type:      f.Type,
		ItemName:  f.ItemName,
		NameKey:   shared.NameKey(f.ItemName),
		Quantity:  f.Quantity,
		AltQty:    f.AltQty,
		Unit:      f.Unit,
		AltUnit:   f.AltUnit,
		Rate:      f.Rate,
		Remarks:   f.Remarks,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply replaces the submitted fields on an existing row, recomputing the
// name key. Validation matches NewTransaction.
func (t *Transaction) Apply(f Fields) error {
	if strings.TrimSpace(f.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(f.ItemName) == "" {
		return ErrEmptyItemName
	}

	t.Date = f.Date
	t.Type = f.Type
	t.ItemName = f.ItemName
	t.NameKey = shared.NameKey(f.ItemName)
	t.Quantity = f.Quantity
	t.AltQty = f.AltQty
	t.Unit = f.Unit
	t.AltUnit = f.AltUnit
	t.Rate = f.Rate
	t.Remarks = f.Remarks
	t.UpdatedAt = time.Now()
	return nil
}

// Movement normalizes the stored type. Unrecognized and absent types read as
// inbound movements.
func (t *Transaction) Movement() shared.MovementType {
	return shared.ParseMovementType(t.Type)
}

// SignedQuantity is the row's contribution to the derived primary quantity:
// the leniently parsed quantity, negated for outbound movements.
func (t *Transaction) SignedQuantity() decimal.Decimal {
	return t.sign(t.Quantity.Decimal())
}

// SignedAltQty is the row's contribution to the derived alternate quantity.
func (t *Transaction) SignedAltQty() decimal.Decimal {
	return t.sign(t.AltQty.Decimal())
}

func (t *Transaction) sign(d decimal.Decimal) decimal.Decimal {
	if t.Movement() == shared.MovementOut {
		return d.Neg()
	}
	return d
}
