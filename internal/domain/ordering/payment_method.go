package ordering

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a verified card owned by exactly one buyer. The full PAN
// is masked at construction and never stored; dedup across verify calls
// works off a one-way fingerprint instead. The security number is used only
// transiently for validation and is never persisted.
type PaymentMethod struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID          uuid.UUID `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Alias            string    `gorm:"column:alias" json:"alias"`
	CardTypeID       int       `gorm:"column:card_type_id;not null" json:"card_type_id"`
	MaskedCardNumber string    `gorm:"column:masked_card_number;not null" json:"masked_card_number"`
	CardFingerprint  string    `gorm:"column:card_fingerprint;not null;index" json:"-"`
	CardHolderName   string    `gorm:"column:card_holder_name;not null" json:"card_holder_name"`
	Expiration       time.Time `gorm:"column:expiration;not null" json:"expiration"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

// NewPaymentMethod validates the raw card data and returns the masked,
// immutable method. Expiration must be strictly in the future relative to
// now.
func NewPaymentMethod(cardTypeID int, alias, cardNumber, securityNumber, cardHolderName string, expiration, now time.Time) (*PaymentMethod, error) {
	cardNumber = strings.TrimSpace(cardNumber)
	securityNumber = strings.TrimSpace(securityNumber)
	cardHolderName = strings.TrimSpace(cardHolderName)
	if cardNumber == "" {
		return nil, ValidationError("card number is required")
	}
	if securityNumber == "" {
		return nil, ValidationError("card security number is required")
	}
	if cardHolderName == "" {
		return nil, ValidationError("card holder name is required")
	}
	if !expiration.After(now) {
		return nil, ValidationError("payment method is expired")
	}
	return &PaymentMethod{
		ID:               uuid.New(),
		Alias:            strings.TrimSpace(alias),
		CardTypeID:       cardTypeID,
		MaskedCardNumber: MaskCardNumber(cardNumber),
		CardFingerprint:  CardFingerprint(cardNumber),
		CardHolderName:   cardHolderName,
		Expiration:       expiration.UTC(),
		CreatedAt:        now.UTC(),
	}, nil
}

// IsEqualTo reports whether the raw identifying fields describe this same
// stored method. This is the verify-or-add dedup comparison, distinct from
// value object equality: card type, full card number and expiration must
// all match.
func (pm *PaymentMethod) IsEqualTo(cardTypeID int, cardNumber string, expiration time.Time) bool {
	return pm.CardTypeID == cardTypeID &&
		pm.CardFingerprint == CardFingerprint(strings.TrimSpace(cardNumber)) &&
		pm.Expiration.Equal(expiration.UTC())
}

// MaskCardNumber keeps the last four digits and masks the rest.
func MaskCardNumber(cardNumber string) string {
	visible := 4
	if len(cardNumber) <= visible {
		return cardNumber
	}
	return strings.Repeat("*", len(cardNumber)-visible) + cardNumber[len(cardNumber)-visible:]
}

// CardFingerprint is the one-way digest used to compare stored methods
// against raw card numbers without retaining the PAN.
func CardFingerprint(cardNumber string) string {
	sum := sha256.Sum256([]byte(cardNumber))
	return hex.EncodeToString(sum[:])
}
