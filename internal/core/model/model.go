package model

// RecordKind discriminates the two kinds of records held by the store.
type RecordKind string

const (
	// KindUser tags user records.
	KindUser RecordKind = "user"

	// KindProduct tags product records.
	KindProduct RecordKind = "product"
)

// Record is implemented by every record kind kept in the store.
type Record interface {
	// RecordKind returns the kind of the record.
	RecordKind() RecordKind

	// RecordID returns the identifier of the record.
	RecordID() string
}

// User represents a user in the system.
type User struct {
	// ID unique identifier of the user. Immutable once assigned.
	ID string `json:"id"`

	// ActivateUser tells whether the user account is active.
	ActivateUser bool `json:"activateUser"`

	// Currency is the preferred currency of the user.
	Currency string `json:"currency"`

	// LastName is the user last name.
	LastName string `json:"lastName"`

	// Email is the user email.
	Email string `json:"email"`

	// FirstName is the user first name.
	FirstName string `json:"firstName"`

	// Phone is the user phone number.
	Phone string `json:"phone"`

	// Role is the user role.
	Role string `json:"role"`

	// UserName is the user handle.
	UserName string `json:"userName"`

	// Photo holds the user photos. Only set through an update.
	Photo []string `json:"photo,omitempty"`

	// VerificationMeans is the means used to verify the user. Only set through an update.
	VerificationMeans *string `json:"verificationMeans,omitempty"`

	// IDNumber is the user identity document number. Only set through an update.
	IDNumber *string `json:"idNumber,omitempty"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `json:"createdAt"`
}

// RecordKind implements Record.
func (u *User) RecordKind() RecordKind { return KindUser }

// RecordID implements Record.
func (u *User) RecordID() string { return u.ID }

// Product represents a product offered by a seller. Every attribute besides the ID is optional.
type Product struct {
	// ID unique identifier of the product. Immutable once assigned.
	ID string `json:"id"`

	Category    *string  `json:"category"`
	City        *string  `json:"city"`
	Count       *float64 `json:"count"`
	Country     *string  `json:"country"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Price       *float64 `json:"price"`
	ProductName *string  `json:"productName"`
	Quantity    *float64 `json:"quantity"`
	SubCategory *string  `json:"subCategory"`

	// SellerID references the user selling the product. Not enforced.
	SellerID *string `json:"sellerId"`

	Weight *float64 `json:"weight"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `json:"createdAt"`
}

// RecordKind implements Record.
func (p *Product) RecordKind() RecordKind { return KindProduct }

// RecordID implements Record.
func (p *Product) RecordID() string { return p.ID }

// RecordEvent collects a record change. It can represent creation, update and deletion of a record.
type RecordEvent struct {
	// ID is the event id.
	ID string

	// Kind is the kind of the changed record.
	Kind RecordKind

	// Before is the record state before the event. It will be nil in case of creations.
	Before Record

	// After is the record state after the event. It will be nil in case of deletions.
	After Record
}
