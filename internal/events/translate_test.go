package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/domain/outbox"
)

func TestFromDomainEventsExcludesCardData(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	order, err := ordering.NewOrder("buyer-1", "John", ordering.Address{}, ordering.CardTypeVisa,
		"4012888888881881", "123", "John Senior", now.AddDate(1, 0, 0), now)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}

	rows, err := FromDomainEvents(AggregateOrder, order.ID, order.DomainEvents())
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: want=1 got=%d", len(rows))
	}
	row := rows[0]
	if row.EventType != "order.started" {
		t.Fatalf("event type: got=%s", row.EventType)
	}
	if row.AggregateType != AggregateOrder || row.AggregateID != order.ID {
		t.Fatalf("aggregate fields: type=%s id=%s", row.AggregateType, row.AggregateID)
	}
	if row.Status != outbox.StatusPending {
		t.Fatalf("status: want=%s got=%s", outbox.StatusPending, row.Status)
	}

	raw := string(row.Payload)
	if strings.Contains(raw, "4012888888881881") || strings.Contains(raw, "card") {
		t.Fatalf("card data leaked into payload: %s", raw)
	}
	var payload OrderStartedPayload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.OrderID != order.ID || payload.BuyerIdentity != "buyer-1" {
		t.Fatalf("payload fields: %+v", payload)
	}
}

func TestFromDomainEventsTranslatesStatusAndStock(t *testing.T) {
	orderID := uuid.New()
	evts := []ordering.DomainEvent{
		&ordering.OrderStatusChangedEvent{
			OrderID:   orderID,
			OldStatus: ordering.StatusAwaitingValidation,
			NewStatus: ordering.StatusStockRejected,
		},
		&ordering.OrderStockRejectedEvent{
			OrderID:            orderID,
			RejectedProductIDs: []int64{7, 9},
		},
	}

	rows, err := FromDomainEvents(AggregateOrder, orderID, evts)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: want=2 got=%d", len(rows))
	}
	if rows[0].EventType != "order.status_changed" || rows[1].EventType != "order.stock_rejected" {
		t.Fatalf("event types: %s %s", rows[0].EventType, rows[1].EventType)
	}
	var stock OrderStockRejectedPayload
	if err := json.Unmarshal(rows[1].Payload, &stock); err != nil {
		t.Fatalf("unmarshal stock payload: %v", err)
	}
	if len(stock.RejectedProductIDs) != 2 || stock.RejectedProductIDs[0] != 7 {
		t.Fatalf("rejected ids: %v", stock.RejectedProductIDs)
	}
}

func TestFromDomainEventsUnknownEvent(t *testing.T) {
	_, err := FromDomainEvents(AggregateOrder, uuid.New(), []ordering.DomainEvent{unknownEvent{}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "no integration payload") {
		t.Fatalf("error: got=%v", err)
	}
}

func TestFromDomainEventsEmptyInput(t *testing.T) {
	rows, err := FromDomainEvents(AggregateOrder, uuid.New(), nil)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if rows != nil {
		t.Fatalf("want nil rows, got=%v", rows)
	}
}

type unknownEvent struct{}

func (unknownEvent) EventName() string     { return "order.unknown" }
func (unknownEvent) OccurredOn() time.Time { return time.Time{} }
