package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/events"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
)

type OrderAggregateDeps struct {
	Base BaseDeps

	Orders   repos.OrderRepo
	Buyers   repos.BuyerRepo
	Requests repos.ClientRequestRepo
	Outbox   repos.IntegrationEventRepo
}

type orderAggregate struct {
	deps OrderAggregateDeps
}

func NewOrderAggregate(deps OrderAggregateDeps) domainagg.OrderAggregate {
	deps.Base = deps.Base.withDefaults()
	return &orderAggregate{deps: deps}
}

func (a *orderAggregate) Contract() domainagg.Contract {
	return domainagg.OrderAggregateContract
}

func (a *orderAggregate) CreateOrder(ctx context.Context, in domainagg.CreateOrderInput) (domainagg.CreateOrderResult, error) {
	const op = "Ordering.Order.CreateOrder"
	var out domainagg.CreateOrderResult
	if strings.TrimSpace(in.BuyerIdentity) == "" {
		return out, domainagg.NewError(domainagg.CodeUnauthorized, op, "missing buyer identity", nil)
	}
	if len(in.Items) == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "order has no items", nil)
	}
	if a.deps.Orders == nil || a.deps.Buyers == nil || a.deps.Outbox == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	address := ordering.NewAddress(in.Street, in.City, in.State, in.Country, in.ZipCode)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := ordering.NewOrder(
			in.BuyerIdentity, in.BuyerName, address,
			in.CardTypeID, in.CardNumber, in.CardSecurityNumber, in.CardHolderName,
			in.CardExpiration, now,
		)
		if err != nil {
			return err
		}
		for _, item := range in.Items {
			if err := order.AddItem(item.ProductID, item.ProductName, item.UnitPrice, item.Discount, item.PictureURL, item.Units); err != nil {
				return err
			}
		}

		buyer, err := a.deps.Buyers.LockByIdentity(dbc, in.BuyerIdentity)
		if err != nil {
			return err
		}
		if buyer == nil {
			buyer, err = ordering.NewBuyer(in.BuyerIdentity, in.BuyerName)
			if err != nil {
				return err
			}
			if err := a.deps.Buyers.Create(dbc, buyer); err != nil {
				return err
			}
		}

		method, added, err := buyer.VerifyOrAddPaymentMethod(
			in.CardTypeID, "", in.CardNumber, in.CardSecurityNumber, in.CardHolderName,
			in.CardExpiration, order.ID, now,
		)
		if err != nil {
			return err
		}
		if added {
			if err := a.deps.Buyers.CreatePaymentMethods(dbc, []*ordering.PaymentMethod{method}); err != nil {
				return err
			}
			ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "buyers", buyer.ID, buyer.Version, map[string]any{
				"version":    buyer.Version + 1,
				"updated_at": now,
			})
			if err != nil {
				return err
			}
			if err := RequireCASSuccess(ok, "buyer changed while verifying payment method"); err != nil {
				return err
			}
		}

		if err := order.AttachBuyerAndPayment(buyer.ID, method, now); err != nil {
			return err
		}
		if err := a.deps.Orders.Create(dbc, order); err != nil {
			return err
		}

		rows, err := events.FromDomainEvents(events.AggregateOrder, order.ID, order.DomainEvents())
		if err != nil {
			return err
		}
		buyerRows, err := events.FromDomainEvents(events.AggregateBuyer, buyer.ID, buyer.DomainEvents())
		if err != nil {
			return err
		}
		if err := a.deps.Outbox.Create(dbc, append(rows, buyerRows...)); err != nil {
			return err
		}

		if err := recordClientRequest(dbc, a.deps.Requests, in.RequestID, "CreateOrderCommand", map[string]any{
			"order_id": order.ID.String(),
		}); err != nil {
			return err
		}

		order.ClearDomainEvents()
		buyer.ClearDomainEvents()
		out = domainagg.CreateOrderResult{
			OrderID: order.ID,
			BuyerID: buyer.ID,
			Status:  order.Status,
			Total:   order.Total(),
		}
		return nil
	})
	return out, err
}

func (a *orderAggregate) CancelOrder(ctx context.Context, in domainagg.OrderTransitionInput) (domainagg.OrderStatusResult, error) {
	const op = "Ordering.Order.CancelOrder"
	return a.transition(ctx, op, "CancelOrderCommand", in, func(o *ordering.Order, now time.Time) error {
		return o.SetCancelled(now)
	})
}

func (a *orderAggregate) ShipOrder(ctx context.Context, in domainagg.OrderTransitionInput) (domainagg.OrderStatusResult, error) {
	const op = "Ordering.Order.ShipOrder"
	return a.transition(ctx, op, "ShipOrderCommand", in, func(o *ordering.Order, now time.Time) error {
		return o.SetShipped(now)
	})
}

func (a *orderAggregate) ConfirmStock(ctx context.Context, in domainagg.OrderTransitionInput) (domainagg.OrderStatusResult, error) {
	const op = "Ordering.Order.ConfirmStock"
	return a.transition(ctx, op, "SetStockConfirmedCommand", in, func(o *ordering.Order, now time.Time) error {
		return o.SetStockConfirmed(now)
	})
}

func (a *orderAggregate) ConfirmPayment(ctx context.Context, in domainagg.OrderTransitionInput) (domainagg.OrderStatusResult, error) {
	const op = "Ordering.Order.ConfirmPayment"
	return a.transition(ctx, op, "SetPaidCommand", in, func(o *ordering.Order, now time.Time) error {
		return o.SetPaid(now)
	})
}

func (a *orderAggregate) RejectStock(ctx context.Context, in domainagg.RejectStockInput) (domainagg.OrderStatusResult, error) {
	const op = "Ordering.Order.RejectStock"
	if len(in.RejectedProductIDs) == 0 {
		return domainagg.OrderStatusResult{}, domainagg.NewError(domainagg.CodeValidation, op, "missing rejected product ids", nil)
	}
	return a.transition(ctx, op, "SetStockRejectedCommand", domainagg.OrderTransitionInput{
		RequestID: in.RequestID,
		OrderID:   in.OrderID,
	}, func(o *ordering.Order, now time.Time) error {
		return o.SetStockRejected(in.RejectedProductIDs, now)
	})
}

// transition runs one status edge as a unit of work: lock, apply the domain
// rule, compare-and-set the row on version, append outbox rows, record the
// request id.
func (a *orderAggregate) transition(ctx context.Context, op, commandName string, in domainagg.OrderTransitionInput, apply func(*ordering.Order, time.Time) error) (domainagg.OrderStatusResult, error) {
	var out domainagg.OrderStatusResult
	if in.OrderID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing order_id", nil)
	}
	if a.deps.Orders == nil || a.deps.Outbox == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.LockByID(dbc, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil || order.ID == uuid.Nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("order not found: %s", in.OrderID.String()), nil)
		}

		if err := apply(order, now); err != nil {
			return err
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "orders", order.ID, order.Version, map[string]any{
			"status":      string(order.Status),
			"description": order.Description,
			"version":     order.Version + 1,
			"updated_at":  now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "order changed while applying status transition"); err != nil {
			return err
		}

		rows, err := events.FromDomainEvents(events.AggregateOrder, order.ID, order.DomainEvents())
		if err != nil {
			return err
		}
		if err := a.deps.Outbox.Create(dbc, rows); err != nil {
			return err
		}

		if err := recordClientRequest(dbc, a.deps.Requests, in.RequestID, commandName, map[string]any{
			"order_id": order.ID.String(),
			"status":   string(order.Status),
		}); err != nil {
			return err
		}

		order.ClearDomainEvents()
		out = domainagg.OrderStatusResult{OrderID: order.ID, Status: order.Status}
		return nil
	})
	return out, err
}
