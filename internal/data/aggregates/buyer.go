package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/events"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
)

type BuyerAggregateDeps struct {
	Base BaseDeps

	Buyers   repos.BuyerRepo
	Requests repos.ClientRequestRepo
	Outbox   repos.IntegrationEventRepo
}

type buyerAggregate struct {
	deps BuyerAggregateDeps
}

func NewBuyerAggregate(deps BuyerAggregateDeps) domainagg.BuyerAggregate {
	deps.Base = deps.Base.withDefaults()
	return &buyerAggregate{deps: deps}
}

func (a *buyerAggregate) Contract() domainagg.Contract {
	return domainagg.BuyerAggregateContract
}

func (a *buyerAggregate) VerifyOrAddPaymentMethod(ctx context.Context, in domainagg.VerifyPaymentMethodInput) (domainagg.VerifyPaymentMethodResult, error) {
	const op = "Ordering.Buyer.VerifyOrAddPaymentMethod"
	var out domainagg.VerifyPaymentMethodResult
	if strings.TrimSpace(in.BuyerIdentity) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing buyer identity", nil)
	}
	if a.deps.Buyers == nil || a.deps.Outbox == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "buyer aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
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
			in.CardTypeID, in.Alias, in.CardNumber, in.CardSecurityNumber, in.CardHolderName,
			in.CardExpiration, in.OrderID, now,
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

			rows, err := events.FromDomainEvents(events.AggregateBuyer, buyer.ID, buyer.DomainEvents())
			if err != nil {
				return err
			}
			if err := a.deps.Outbox.Create(dbc, rows); err != nil {
				return err
			}
		}

		if err := recordClientRequest(dbc, a.deps.Requests, in.RequestID, "VerifyPaymentMethodCommand", map[string]any{
			"buyer_id": buyer.ID.String(),
			"added":    added,
		}); err != nil {
			return err
		}

		buyer.ClearDomainEvents()
		out = domainagg.VerifyPaymentMethodResult{
			BuyerID:         buyer.ID,
			PaymentMethodID: method.ID,
			Added:           added,
		}
		return nil
	})
	return out, err
}
