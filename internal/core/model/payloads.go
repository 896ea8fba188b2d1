package model

// CreateUserArgs contain the arguments of the CreateUser method. Zero-values are stored as-is.
type CreateUserArgs struct {
	ActivateUser bool
	Currency     string
	LastName     string
	Email        string
	FirstName    string
	Phone        string
	Role         string
	UserName     string
}

// CreateUserResponse contains the response of the CreateUser method.
type CreateUserResponse struct {
	// User
	User User
}

// UpdateUserArgs contain the arguments of the UpdateUser method.
// Only the non-nil fields are merged into the existing user.
type UpdateUserArgs struct {
	// ID is the id of the user to be updated.
	ID string

	// Photo replaces the user photos.
	Photo *[]string

	// VerificationMeans replaces the user verification means.
	VerificationMeans *string

	// IDNumber replaces the user identity document number.
	IDNumber *string
}

// UpdateUserResponse contains the response of the UpdateUser method.
type UpdateUserResponse struct {
	// User is the merged user as written to the store.
	User User
}

// CreateProductArgs contain the arguments of the CreateProduct method. Nil fields are stored as missing.
type CreateProductArgs struct {
	Category    *string
	City        *string
	Count       *float64
	Country     *string
	Description *string
	Images      []string
	Price       *float64
	ProductName *string
	Quantity    *float64
	SubCategory *string
	SellerID    *string
	Weight      *float64
}

// CreateProductResponse contains the response of the CreateProduct method.
type CreateProductResponse struct {
	// Product
	Product Product
}

// ListProductsArgs contain the arguments for the ListProducts use-case.
type ListProductsArgs struct {
	// SellerID filters products by seller. Nil will be ignored as filter.
	SellerID *string

	// Limit is the maximum amount of products to return. Zero-value will be interpreted as DefaultListLimit.
	// Values above MaxListLimit are rejected.
	Limit int

	// StartKey is a continuation token returned by a previous call. Empty starts from the beginning.
	StartKey string
}

// ListProductsResponse contains the products matching the input query of the ListProducts api.
type ListProductsResponse struct {
	// Products are the products matching the query.
	Products []Product

	// NextKey is the continuation token for the next page. Empty when the store reported no more results.
	NextKey string
}

const (
	// DefaultListLimit is the page size used when none is requested.
	DefaultListLimit = 10

	// MaxListLimit is the largest page size a caller may request.
	MaxListLimit = 1000
)
