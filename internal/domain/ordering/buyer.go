package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buyer is the aggregate root owning a customer's verified payment methods.
// Identity is the external authenticated id; it is immutable and unique per
// buyer (uniqueness is enforced by the persistence layer's unique index).
type Buyer struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Identity       string           `gorm:"column:identity;not null;uniqueIndex" json:"identity"`
	Name           string           `gorm:"column:name" json:"name"`
	PaymentMethods []*PaymentMethod `gorm:"foreignKey:BuyerID" json:"payment_methods"`
	Version        int              `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt      time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null" json:"updated_at"`

	EventRecorder `gorm:"-" json:"-"`
}

func (Buyer) TableName() string { return "buyers" }

// NewBuyer creates a buyer for a previously unknown identity.
func NewBuyer(identity, name string) (*Buyer, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ValidationError("buyer identity is required")
	}
	now := time.Now().UTC()
	return &Buyer{
		ID:        uuid.New(),
		Identity:  identity,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// VerifyOrAddPaymentMethod is the single dedup point for stored cards.
// An existing method matching (card type, card number, expiration) is
// returned unchanged and no event is raised; otherwise a new masked method
// is constructed, appended, and a verification event referencing the order
// is queued. The bool reports whether a method was added.
func (b *Buyer) VerifyOrAddPaymentMethod(cardTypeID int, alias, cardNumber, securityNumber, cardHolderName string, expiration time.Time, orderID uuid.UUID, now time.Time) (*PaymentMethod, bool, error) {
	for _, existing := range b.PaymentMethods {
		if existing.IsEqualTo(cardTypeID, cardNumber, expiration) {
			return existing, false, nil
		}
	}

	method, err := NewPaymentMethod(cardTypeID, alias, cardNumber, securityNumber, cardHolderName, expiration, now)
	if err != nil {
		return nil, false, err
	}
	method.BuyerID = b.ID
	b.PaymentMethods = append(b.PaymentMethods, method)
	b.AddDomainEvent(&BuyerPaymentMethodVerifiedEvent{
		baseEvent:       baseEvent{occurredOn: now.UTC()},
		BuyerID:         b.ID,
		PaymentMethodID: method.ID,
		OrderID:         orderID,
	})
	return method, true, nil
}
