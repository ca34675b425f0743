package aggregates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	idemrepos "github.com/yungbote/ordering-backend/internal/data/repos/idempotency"
	orderrepos "github.com/yungbote/ordering-backend/internal/data/repos/ordering"
	outboxrepos "github.com/yungbote/ordering-backend/internal/data/repos/outbox"
	repotest "github.com/yungbote/ordering-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ordering-backend/internal/domain"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"gorm.io/gorm"
)

func newTestOrderAggregate(t *testing.T, tx *gorm.DB) domainagg.OrderAggregate {
	t.Helper()
	log := repotest.Logger(t)
	return NewOrderAggregate(OrderAggregateDeps{
		Base: BaseDeps{
			DB:       tx,
			Runner:   NewGormTxRunner(tx),
			CASGuard: NewCASGuard(tx),
		},
		Orders:   orderrepos.NewOrderRepo(tx, log),
		Buyers:   orderrepos.NewBuyerRepo(tx, log),
		Requests: idemrepos.NewClientRequestRepo(tx, log),
		Outbox:   outboxrepos.NewIntegrationEventRepo(tx, log),
	})
}

func createOrderInput(identity string) domainagg.CreateOrderInput {
	return domainagg.CreateOrderInput{
		RequestID:          uuid.New(),
		BuyerIdentity:      identity,
		BuyerName:          "John Senior",
		Street:             "21 Elm St",
		City:               "Seattle",
		State:              "WA",
		Country:            "USA",
		ZipCode:            "98101",
		CardTypeID:         ordering.CardTypeVisa,
		CardNumber:         "4012888888881881",
		CardSecurityNumber: "123",
		CardHolderName:     "John Senior",
		CardExpiration:     time.Now().UTC().AddDate(1, 0, 0),
		Items: []domainagg.OrderItemInput{
			{ProductID: 1, ProductName: "cup", UnitPrice: 10.0, Units: 2},
			{ProductID: 2, ProductName: "mug", UnitPrice: 5.0, Units: 1},
		},
	}
}

func TestOrderAggregateCreateOrderHappyPath(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)
	ctx := context.Background()

	in := createOrderInput("buyer-" + uuid.NewString())
	res, err := agg.CreateOrder(ctx, in)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.Status != ordering.StatusAwaitingValidation {
		t.Fatalf("status: want=%s got=%s", ordering.StatusAwaitingValidation, res.Status)
	}
	if res.Total != 25.0 {
		t.Fatalf("total: want=25 got=%v", res.Total)
	}

	var order types.Order
	if err := tx.WithContext(ctx).Preload("Items").First(&order, "id = ?", res.OrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items: want=2 got=%d", len(order.Items))
	}
	if order.PaymentMaskedCardNumber != "************1881" {
		t.Fatalf("masked card: got=%s", order.PaymentMaskedCardNumber)
	}

	var methods []types.PaymentMethod
	if err := tx.WithContext(ctx).Where("buyer_id = ?", res.BuyerID).Find(&methods).Error; err != nil {
		t.Fatalf("load payment methods: %v", err)
	}
	if len(methods) != 1 {
		t.Fatalf("payment methods: want=1 got=%d", len(methods))
	}
	if strings.Contains(methods[0].MaskedCardNumber, "401288888888") {
		t.Fatalf("full card number persisted: %s", methods[0].MaskedCardNumber)
	}

	var outboxRows []types.IntegrationEventLog
	if err := tx.WithContext(ctx).Where("aggregate_id IN ?", []uuid.UUID{res.OrderID, res.BuyerID}).Find(&outboxRows).Error; err != nil {
		t.Fatalf("load outbox: %v", err)
	}
	eventTypes := map[string]bool{}
	for _, row := range outboxRows {
		eventTypes[row.EventType] = true
	}
	for _, want := range []string{"order.started", "order.status_changed", "buyer.payment_method_verified"} {
		if !eventTypes[want] {
			t.Fatalf("missing outbox event %q, got=%v", want, eventTypes)
		}
	}

	var request types.ClientRequest
	if err := tx.WithContext(ctx).First(&request, "id = ?", in.RequestID).Error; err != nil {
		t.Fatalf("load client request: %v", err)
	}
	if request.Name != "CreateOrderCommand" {
		t.Fatalf("request name: got=%s", request.Name)
	}
}

func TestOrderAggregateCreateOrderDuplicateRequestConflicts(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)
	ctx := context.Background()

	in := createOrderInput("buyer-" + uuid.NewString())
	if _, err := agg.CreateOrder(ctx, in); err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}
	_, err := agg.CreateOrder(ctx, in)
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict for reused request id, got=%v", err)
	}
}

func TestOrderAggregateCreateOrderReusesStoredCard(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)
	ctx := context.Background()

	identity := "buyer-" + uuid.NewString()
	first, err := agg.CreateOrder(ctx, createOrderInput(identity))
	if err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}
	second, err := agg.CreateOrder(ctx, createOrderInput(identity))
	if err != nil {
		t.Fatalf("second CreateOrder: %v", err)
	}
	if first.BuyerID != second.BuyerID {
		t.Fatalf("same identity must reuse the buyer: %s vs %s", first.BuyerID, second.BuyerID)
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&types.PaymentMethod{}).Where("buyer_id = ?", first.BuyerID).Count(&count).Error; err != nil {
		t.Fatalf("count payment methods: %v", err)
	}
	if count != 1 {
		t.Fatalf("matching card must not be stored twice, got=%d", count)
	}
}

func TestOrderAggregateTransitionFlow(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)
	ctx := context.Background()

	created, err := agg.CreateOrder(ctx, createOrderInput("buyer-"+uuid.NewString()))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	confirmed, err := agg.ConfirmStock(ctx, domainagg.OrderTransitionInput{RequestID: uuid.New(), OrderID: created.OrderID})
	if err != nil {
		t.Fatalf("ConfirmStock: %v", err)
	}
	if confirmed.Status != ordering.StatusStockConfirmed {
		t.Fatalf("status: want=%s got=%s", ordering.StatusStockConfirmed, confirmed.Status)
	}

	paid, err := agg.ConfirmPayment(ctx, domainagg.OrderTransitionInput{RequestID: uuid.New(), OrderID: created.OrderID})
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if paid.Status != ordering.StatusPaid {
		t.Fatalf("status: want=%s got=%s", ordering.StatusPaid, paid.Status)
	}

	shipped, err := agg.ShipOrder(ctx, domainagg.OrderTransitionInput{RequestID: uuid.New(), OrderID: created.OrderID})
	if err != nil {
		t.Fatalf("ShipOrder: %v", err)
	}
	if shipped.Status != ordering.StatusShipped {
		t.Fatalf("status: want=%s got=%s", ordering.StatusShipped, shipped.Status)
	}

	// shipped is terminal
	_, err = agg.CancelOrder(ctx, domainagg.OrderTransitionInput{RequestID: uuid.New(), OrderID: created.OrderID})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("cancel after ship: expected validation, got=%v", err)
	}

	var order types.Order
	if err := tx.WithContext(ctx).First(&order, "id = ?", created.OrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Version != 3 {
		t.Fatalf("version after three transitions: want=3 got=%d", order.Version)
	}
}

func TestOrderAggregateRejectStockRecordsNames(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)
	ctx := context.Background()

	created, err := agg.CreateOrder(ctx, createOrderInput("buyer-"+uuid.NewString()))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	rejected, err := agg.RejectStock(ctx, domainagg.RejectStockInput{
		RequestID:          uuid.New(),
		OrderID:            created.OrderID,
		RejectedProductIDs: []int64{2},
	})
	if err != nil {
		t.Fatalf("RejectStock: %v", err)
	}
	if rejected.Status != ordering.StatusStockRejected {
		t.Fatalf("status: want=%s got=%s", ordering.StatusStockRejected, rejected.Status)
	}

	var order types.Order
	if err := tx.WithContext(ctx).First(&order, "id = ?", created.OrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if !strings.Contains(order.Description, "mug") {
		t.Fatalf("description: got=%q", order.Description)
	}
}

func TestOrderAggregateTransitionUnknownOrder(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newTestOrderAggregate(t, tx)

	_, err := agg.CancelOrder(context.Background(), domainagg.OrderTransitionInput{RequestID: uuid.New(), OrderID: uuid.New()})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got=%v", err)
	}
}
