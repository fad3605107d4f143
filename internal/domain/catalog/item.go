package catalog

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
	ErrEmptyName = errors.New("item name cannot be empty")
	ErrEmptyUnit = errors.New("item unit cannot be empty")
)

// ManualFactor marks items whose alternate quantity is maintained by hand
// rather than derived from the primary quantity.
const ManualFactor = "Manual"

// FactorKind classifies how an item's conversion factor text can be used
type FactorKind int

const (
	FactorNone FactorKind = iota
	FactorManual
	FactorRatio
)

// Item represents a catalog entry describing one stocked good. Current stock
// is never stored on the item; it is derived from the transaction ledger on
// demand.
type Item struct {
	ID        uuid.UUID          `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	NameKey   string             `json:"name_key" bson:"name_key"`
	Unit      string             `json:"unit" bson:"unit"`
	AltUnit   string             `json:"alt_unit" bson:"alt_unit"`
	Factor    string             `json:"factor" bson:"factor"`
	AlertQty  shared.NumericText `json:"alert_qty" bson:"alert_qty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewItem creates a catalog item from submitted fields. Name and unit are
// required after trimming; blank alternate unit and factor are stored as the
// "-" sentinel. Names are not checked for uniqueness.
func NewItem(name, unit, altUnit, factor string, alertQty shared.NumericText) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return nil, ErrEmptyUnit
	}

	now := time.Now()
	return &Item{
		ID:        uuid.New(),
		Name:      name,
		NameKey:   shared.NameKey(name),
		Unit:      unit,
		AltUnit:   normalizeOptional(altUnit),
		Factor:    normalizeOptional(factor),
		AlertQty:  alertQty,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply replaces the catalog fields with the submitted ones, recomputing the
// name key. Validation matches NewItem.
func (i *Item) Apply(name, unit, altUnit, factor string, alertQty shared.NumericText) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return ErrEmptyUnit
	}

	i.Name = name
	i.NameKey = shared.NameKey(name)
	i.Unit = unit
	i.AltUnit = normalizeOptional(altUnit)
	i.Factor = normalizeOptional(factor)
	i.AlertQty = alertQty
	i.UpdatedAt = time.Now()
	return nil
}

// HasAltUnit reports whether the item tracks a second unit of measure.
func (i *Item) HasAltUnit() bool {
	alt := strings.TrimSpace(i.AltUnit)
	return alt != "" && alt != shared.NoValue
}

// ConversionFactor parses the factor text. Ratio carries the units-per-
// alternate-unit number and is the only kind usable for derivation; Manual
// marks hand-maintained conversions; None covers "-", empty, and text with
// no leading number.
func (i *Item) ConversionFactor() (decimal.Decimal, FactorKind) {
	f := strings.TrimSpace(i.Factor)
	if f == "" || f == shared.NoValue {
		return decimal.Zero, FactorNone
	}
	if strings.EqualFold(f, ManualFactor) {
		return decimal.Zero, FactorManual
	}
	d, ok := shared.LeadingDecimal(f)
	if !ok {
		return decimal.Zero, FactorNone
	}
	return d, FactorRatio
}

// AlertThreshold reports the low-stock threshold and whether alerting is
// enabled for the item. Zero, negative, and junk thresholds disable it.
func (i *Item) AlertThreshold() (decimal.Decimal, bool) {
	alert := i.AlertQty.Decimal()
	return alert, alert.IsPositive()
}

func normalizeOptional(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return shared.NoValue
	}
	return v
}
