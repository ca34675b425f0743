package ordering

import "strings"

// CardType enumerates the card brands the ordering core models.
// The set is seeded from the policy file at startup; these are the defaults.
type CardType struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (CardType) TableName() string { return "card_types" }

const (
	CardTypeAmex       = 1
	CardTypeVisa       = 2
	CardTypeMasterCard = 3
)

// DefaultCardTypes returns the built-in card brand set.
func DefaultCardTypes() []CardType {
	return []CardType{
		{ID: CardTypeAmex, Name: "Amex"},
		{ID: CardTypeVisa, Name: "Visa"},
		{ID: CardTypeMasterCard, Name: "MasterCard"},
	}
}

// CardTypeByName resolves a brand name case-insensitively.
func CardTypeByName(types []CardType, name string) (CardType, bool) {
	for _, ct := range types {
		if strings.EqualFold(ct.Name, strings.TrimSpace(name)) {
			return ct, true
		}
	}
	return CardType{}, false
}
