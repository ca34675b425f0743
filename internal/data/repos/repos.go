package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/ordering-backend/internal/data/repos/idempotency"
	"github.com/yungbote/ordering-backend/internal/data/repos/ordering"
	"github.com/yungbote/ordering-backend/internal/data/repos/outbox"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type OrderRepo = ordering.OrderRepo
type BuyerRepo = ordering.BuyerRepo

type ClientRequestRepo = idempotency.ClientRequestRepo
type IntegrationEventRepo = outbox.IntegrationEventRepo

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return ordering.NewOrderRepo(db, baseLog)
}

func NewBuyerRepo(db *gorm.DB, baseLog *logger.Logger) BuyerRepo {
	return ordering.NewBuyerRepo(db, baseLog)
}

func NewClientRequestRepo(db *gorm.DB, baseLog *logger.Logger) ClientRequestRepo {
	return idempotency.NewClientRequestRepo(db, baseLog)
}

func NewIntegrationEventRepo(db *gorm.DB, baseLog *logger.Logger) IntegrationEventRepo {
	return outbox.NewIntegrationEventRepo(db, baseLog)
}
