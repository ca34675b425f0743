package commands

import (
	"time"

	"github.com/google/uuid"
)

type OrderItemDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	PictureURL  string  `json:"picture_url"`
	Units       int     `json:"units"`
}

// CreateOrderCommand places a new order for the authenticated buyer.
// The buyer fields come from the caller's identity, never the request body.
type CreateOrderCommand struct {
	BuyerIdentity string `json:"-"`
	BuyerName     string `json:"-"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`

	CardTypeID         int       `json:"card_type_id"`
	CardNumber         string    `json:"card_number"`
	CardSecurityNumber string    `json:"card_security_number"`
	CardHolderName     string    `json:"card_holder_name"`
	CardExpiration     time.Time `json:"card_expiration"`

	Items []OrderItemDTO `json:"items"`
}

func (CreateOrderCommand) CommandName() string { return "CreateOrderCommand" }

type CancelOrderCommand struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (CancelOrderCommand) CommandName() string { return "CancelOrderCommand" }

type ShipOrderCommand struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (ShipOrderCommand) CommandName() string { return "ShipOrderCommand" }

type SetStockConfirmedCommand struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (SetStockConfirmedCommand) CommandName() string { return "SetStockConfirmedCommand" }

type SetStockRejectedCommand struct {
	OrderID            uuid.UUID `json:"order_id"`
	RejectedProductIDs []int64   `json:"rejected_product_ids"`
}

func (SetStockRejectedCommand) CommandName() string { return "SetStockRejectedCommand" }

type SetPaidCommand struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (SetPaidCommand) CommandName() string { return "SetPaidCommand" }
