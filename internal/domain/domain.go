package domain

import (
	"github.com/yungbote/ordering-backend/internal/domain/idempotency"
	"github.com/yungbote/ordering-backend/internal/domain/ordering"
	"github.com/yungbote/ordering-backend/internal/domain/outbox"
)

type Order = ordering.Order
type OrderItem = ordering.OrderItem
type OrderStatus = ordering.OrderStatus
type Buyer = ordering.Buyer
type PaymentMethod = ordering.PaymentMethod
type CardType = ordering.CardType
type Address = ordering.Address
type DomainEvent = ordering.DomainEvent

type ClientRequest = idempotency.ClientRequest
type IntegrationEventLog = outbox.IntegrationEventLog
