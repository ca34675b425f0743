package commands

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// CreateOrderHandler delegates order placement to the order aggregate.
type CreateOrderHandler struct {
	Orders domainagg.OrderAggregate
	Log    *logger.Logger
}

func (h CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand, requestID uuid.UUID) (domainagg.CreateOrderResult, error) {
	items := make([]domainagg.OrderItemInput, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		items = append(items, domainagg.OrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			PictureURL:  it.PictureURL,
			Units:       it.Units,
		})
	}
	out, err := h.Orders.CreateOrder(ctx, domainagg.CreateOrderInput{
		RequestID:          requestID,
		BuyerIdentity:      cmd.BuyerIdentity,
		BuyerName:          cmd.BuyerName,
		Street:             cmd.Street,
		City:               cmd.City,
		State:              cmd.State,
		Country:            cmd.Country,
		ZipCode:            cmd.ZipCode,
		CardTypeID:         cmd.CardTypeID,
		CardNumber:         cmd.CardNumber,
		CardSecurityNumber: cmd.CardSecurityNumber,
		CardHolderName:     cmd.CardHolderName,
		CardExpiration:     cmd.CardExpiration,
		Items:              items,
	})
	if err != nil {
		return domainagg.CreateOrderResult{}, err
	}
	if h.Log != nil {
		h.Log.Info("order created", "order_id", out.OrderID, "buyer_id", out.BuyerID, "total", out.Total)
	}
	return out, nil
}

// CancelOrderHandler delegates cancellation to the order aggregate.
type CancelOrderHandler struct {
	Orders domainagg.OrderAggregate
}

func (h CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
	return h.Orders.CancelOrder(ctx, domainagg.OrderTransitionInput{
		RequestID: requestID,
		OrderID:   cmd.OrderID,
	})
}

// ShipOrderHandler delegates shipping to the order aggregate.
type ShipOrderHandler struct {
	Orders domainagg.OrderAggregate
}

func (h ShipOrderHandler) Handle(ctx context.Context, cmd ShipOrderCommand, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
	return h.Orders.ShipOrder(ctx, domainagg.OrderTransitionInput{
		RequestID: requestID,
		OrderID:   cmd.OrderID,
	})
}

// SetStockConfirmedHandler applies the stock-confirmed signal.
type SetStockConfirmedHandler struct {
	Orders domainagg.OrderAggregate
}

func (h SetStockConfirmedHandler) Handle(ctx context.Context, cmd SetStockConfirmedCommand, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
	return h.Orders.ConfirmStock(ctx, domainagg.OrderTransitionInput{
		RequestID: requestID,
		OrderID:   cmd.OrderID,
	})
}

// SetStockRejectedHandler applies the stock-rejected signal.
type SetStockRejectedHandler struct {
	Orders domainagg.OrderAggregate
}

func (h SetStockRejectedHandler) Handle(ctx context.Context, cmd SetStockRejectedCommand, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
	return h.Orders.RejectStock(ctx, domainagg.RejectStockInput{
		RequestID:          requestID,
		OrderID:            cmd.OrderID,
		RejectedProductIDs: cmd.RejectedProductIDs,
	})
}

// SetPaidHandler applies the payment-success signal.
type SetPaidHandler struct {
	Orders domainagg.OrderAggregate
}

func (h SetPaidHandler) Handle(ctx context.Context, cmd SetPaidCommand, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
	return h.Orders.ConfirmPayment(ctx, domainagg.OrderTransitionInput{
		RequestID: requestID,
		OrderID:   cmd.OrderID,
	})
}
