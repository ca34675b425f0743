package app

import (
	"gorm.io/gorm"

	dataagg "github.com/yungbote/ordering-backend/internal/data/aggregates"
	"github.com/yungbote/ordering-backend/internal/commands"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/events"
	"github.com/yungbote/ordering-backend/internal/idempotency"
	"github.com/yungbote/ordering-backend/internal/observability"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type Services struct {
	OrderAggregate domainagg.OrderAggregate
	BuyerAggregate domainagg.BuyerAggregate
	RequestManager *idempotency.RequestManager
	Bus            *commands.Bus
	Publisher      events.Publisher
	Dispatcher     *events.Dispatcher
	Metrics        *observability.Metrics
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	metrics := observability.Init(log)

	base := dataagg.BaseDeps{
		DB:       db,
		Log:      log,
		Hooks:    dataagg.NewObservabilityHooks(metrics),
		CASGuard: dataagg.NewCASGuard(db),
	}

	orderAgg := dataagg.NewOrderAggregate(dataagg.OrderAggregateDeps{
		Base:     base,
		Orders:   reposet.Order,
		Buyers:   reposet.Buyer,
		Requests: reposet.ClientRequest,
		Outbox:   reposet.Outbox,
	})
	buyerAgg := dataagg.NewBuyerAggregate(dataagg.BuyerAggregateDeps{
		Base:     base,
		Buyers:   reposet.Buyer,
		Requests: reposet.ClientRequest,
		Outbox:   reposet.Outbox,
	})

	requestManager := idempotency.NewRequestManager(reposet.ClientRequest, cfg.RequestRetention, log)

	bus := commands.NewBus(log)
	if err := registerCommandHandlers(bus, orderAgg, buyerAgg, requestManager, metrics, log); err != nil {
		return Services{}, err
	}

	var publisher events.Publisher
	var dispatcher *events.Dispatcher
	if cfg.EventsEnabled {
		p, err := events.NewRedisPublisher(log)
		if err != nil {
			return Services{}, err
		}
		publisher = p
		dispatcher = events.NewDispatcher(reposet.Outbox, publisher, metrics, log, events.DispatcherConfig{
			Interval:     cfg.OutboxInterval,
			BatchSize:    cfg.OutboxBatchSize,
			StaleTimeout: cfg.OutboxStaleTimeout,
			MaxAttempts:  cfg.OutboxMaxAttempts,
		})
	} else {
		log.Warn("integration event publishing disabled (EVENTS_ENABLED not set); outbox rows will accumulate as pending")
	}

	return Services{
		OrderAggregate: orderAgg,
		BuyerAggregate: buyerAgg,
		RequestManager: requestManager,
		Bus:            bus,
		Publisher:      publisher,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
	}, nil
}

func registerCommandHandlers(bus *commands.Bus, orders domainagg.OrderAggregate, buyers domainagg.BuyerAggregate, store commands.RequestStore, metrics *observability.Metrics, log *logger.Logger) error {
	if err := commands.RegisterIdentified[commands.CreateOrderCommand, domainagg.CreateOrderResult](
		bus, commands.CreateOrderHandler{Orders: orders, Log: log}, store, metrics, log); err != nil {
		return err
	}
	if err := commands.RegisterIdentified[commands.VerifyPaymentMethodCommand, domainagg.VerifyPaymentMethodResult](
		bus, commands.VerifyPaymentMethodHandler{Buyers: buyers}, store, metrics, log); err != nil {
		return err
	}
	if err := commands.RegisterIdentified[commands.CancelOrderCommand, domainagg.OrderStatusResult](
		bus, commands.CancelOrderHandler{Orders: orders}, store, metrics, log); err != nil {
		return err
	}
	if err := commands.RegisterIdentified[commands.ShipOrderCommand, domainagg.OrderStatusResult](
		bus, commands.ShipOrderHandler{Orders: orders}, store, metrics, log); err != nil {
		return err
	}
	if err := commands.RegisterIdentified[commands.SetStockConfirmedCommand, domainagg.OrderStatusResult](
		bus, commands.SetStockConfirmedHandler{Orders: orders}, store, metrics, log); err != nil {
		return err
	}
	if err := commands.RegisterIdentified[commands.SetStockRejectedCommand, domainagg.OrderStatusResult](
		bus, commands.SetStockRejectedHandler{Orders: orders}, store, metrics, log); err != nil {
		return err
	}
	return commands.RegisterIdentified[commands.SetPaidCommand, domainagg.OrderStatusResult](
		bus, commands.SetPaidHandler{Orders: orders}, store, metrics, log)
}
