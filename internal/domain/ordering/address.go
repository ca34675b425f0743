package ordering

// Address is the shipping address value object attached to an order.
// It has no identity of its own and is persisted embedded in the order row.
type Address struct {
	Street  string `gorm:"column:street" json:"street"`
	City    string `gorm:"column:city" json:"city"`
	State   string `gorm:"column:state" json:"state"`
	Country string `gorm:"column:country" json:"country"`
	ZipCode string `gorm:"column:zip_code" json:"zip_code"`
}

func NewAddress(street, city, state, country, zipCode string) Address {
	return Address{
		Street:  street,
		City:    city,
		State:   state,
		Country: country,
		ZipCode: zipCode,
	}
}

func (a Address) EqualityComponents() []any {
	return []any{a.Street, a.City, a.State, a.Country, a.ZipCode}
}
