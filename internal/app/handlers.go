package app

import (
	"github.com/yungbote/ordering-backend/internal/handlers"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type Handlers struct {
	Order *handlers.OrderHandler
	Buyer *handlers.BuyerHandler
}

func wireHandlers(log *logger.Logger, reposet Repos, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Order: handlers.NewOrderHandler(serviceset.Bus, reposet.Order, reposet.Buyer, log),
		Buyer: handlers.NewBuyerHandler(serviceset.Bus, log),
	}
}
