package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderItem is a single order line. Invariants hold at construction and
// across every mutator: units strictly positive, discount non-negative and
// never above the undiscounted line total. A failed mutator leaves the item
// unchanged.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   int64     `gorm:"column:product_id;not null;index" json:"product_id"`
	ProductName string    `gorm:"column:product_name;not null" json:"product_name"`
	UnitPrice   float64   `gorm:"column:unit_price;not null" json:"unit_price"`
	Discount    float64   `gorm:"column:discount;not null;default:0" json:"discount"`
	PictureURL  string    `gorm:"column:picture_url" json:"picture_url"`
	Units       int       `gorm:"column:units;not null" json:"units"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// NewOrderItem validates the line invariants and returns the item.
func NewOrderItem(productID int64, productName string, unitPrice, discount float64, pictureURL string, units int) (*OrderItem, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, ValidationError("product name is required")
	}
	if unitPrice < 0 {
		return nil, ValidationError("unit price cannot be negative")
	}
	if err := validateLine(units, unitPrice, discount); err != nil {
		return nil, err
	}
	return &OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Discount:    discount,
		PictureURL:  pictureURL,
		Units:       units,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// SetNewDiscount replaces the discount, re-validating the line invariants.
func (i *OrderItem) SetNewDiscount(discount float64) error {
	if err := validateLine(i.Units, i.UnitPrice, discount); err != nil {
		return err
	}
	i.Discount = discount
	return nil
}

// AddUnits increases the line quantity. The delta must be positive; the
// resulting line is re-validated before the item is touched.
func (i *OrderItem) AddUnits(units int) error {
	if units <= 0 {
		return ValidationError("invalid units: delta must be positive")
	}
	if err := validateLine(i.Units+units, i.UnitPrice, i.Discount); err != nil {
		return err
	}
	i.Units += units
	return nil
}

// LineTotal is units * unit price minus the discount.
func (i *OrderItem) LineTotal() float64 {
	return float64(i.Units)*i.UnitPrice - i.Discount
}

func validateLine(units int, unitPrice, discount float64) error {
	if units <= 0 {
		return ValidationError("invalid number of units: must be positive")
	}
	if discount < 0 {
		return ValidationError("discount cannot be negative")
	}
	if discount > float64(units)*unitPrice {
		return ValidationError("discount exceeds item total")
	}
	return nil
}
