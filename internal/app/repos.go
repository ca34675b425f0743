package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type Repos struct {
	Order         repos.OrderRepo
	Buyer         repos.BuyerRepo
	ClientRequest repos.ClientRequestRepo
	Outbox        repos.IntegrationEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Order:         repos.NewOrderRepo(db, log),
		Buyer:         repos.NewBuyerRepo(db, log),
		ClientRequest: repos.NewClientRequestRepo(db, log),
		Outbox:        repos.NewIntegrationEventRepo(db, log),
	}
}
