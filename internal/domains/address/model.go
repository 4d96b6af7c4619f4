package address

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// kvstore keys for the collection and the selection pointer.
const (
	StorageKey     = "eversol_addresses"
	SelectedKey    = "eversol_selected_address"
	TypeHome       = "home"
	TypeWork       = "work"
	TypeOther      = "other"
	maxAddressNote = 500
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Address is one saved delivery address. At most one entry in the collection
// has IsDefault set once the collection is non-empty.
type Address struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	IsDefault    bool      `json:"isDefault"`
	Type         string    `json:"type,omitempty"` // home, work, other
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAddress is the insert input: no id, timestamps are generated.
type NewAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault"`
	Type         string `json:"type,omitempty"`
}

// Validate checks the insert input.
func (n NewAddress) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&n.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&n.AddressLine1, validation.Required, validation.Length(3, maxAddressNote)),
		validation.Field(&n.City, validation.Required),
		validation.Field(&n.State, validation.Required),
		validation.Field(&n.Pincode, validation.Required, validation.Match(pincodePattern)),
		validation.Field(&n.Type, validation.In(TypeHome, TypeWork, TypeOther)),
	)
}

// Update is the partial-update input: only non-nil fields are merged onto the
// stored record; CreatedAt is preserved, UpdatedAt refreshed.
type Update struct {
	ID           string  `json:"id"`
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	AddressLine1 *string `json:"addressLine1,omitempty"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Pincode      *string `json:"pincode,omitempty"`
	IsDefault    *bool   `json:"isDefault,omitempty"`
	Type         *string `json:"type,omitempty"`
}

// Validate checks the update input.
func (u Update) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Pincode, validation.By(func(v interface{}) error {
			p, _ := v.(*string)
			if p == nil {
				return nil
			}
			return validation.Validate(*p, validation.Match(pincodePattern))
		})),
	)
}

// apply merges the update onto base.
func (u Update) apply(base Address) Address {
	if u.Name != nil {
		base.Name = *u.Name
	}
	if u.Phone != nil {
		base.Phone = *u.Phone
	}
	if u.AddressLine1 != nil {
		base.AddressLine1 = *u.AddressLine1
	}
	if u.AddressLine2 != nil {
		base.AddressLine2 = *u.AddressLine2
	}
	if u.City != nil {
		base.City = *u.City
	}
	if u.State != nil {
		base.State = *u.State
	}
	if u.Pincode != nil {
		base.Pincode = *u.Pincode
	}
	if u.IsDefault != nil {
		base.IsDefault = *u.IsDefault
	}
	if u.Type != nil {
		base.Type = *u.Type
	}
	return base
}

// SaveResult reports the outcome of a create or update.
type SaveResult struct {
	Success bool     `json:"success"`
	Address *Address `json:"address,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Result reports the outcome of delete / select operations.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
