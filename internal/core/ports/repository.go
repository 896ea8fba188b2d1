package ports

import (
	"context"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

// Repository is the interface for the persistence layer.
type Repository interface {
	// PutUser durably saves the user, replacing any user with the same ID.
	// It returns model.ErrWriteRejected if the store did not apply the write.
	PutUser(ctx context.Context, user *model.User) error

	// GetUser loads the user by ID. It returns model.ErrNotFound if there is no such user.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// FindUserByName returns the first user whose UserName equals userName.
	// It returns model.ErrNotFound if no user matches.
	FindUserByName(ctx context.Context, userName string) (*model.User, error)

	// PutProduct durably saves the product, replacing any product with the same ID.
	PutProduct(ctx context.Context, product *model.Product) error

	// ListProducts lists the products matching the query, in ID order.
	ListProducts(ctx context.Context, query ListProductsQuery) (*ListProductsResult, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// ListProductsQuery gather the parameters for which the query
type ListProductsQuery struct {
	// SellerID is the seller to filter on. Nil will be ignored as filter.
	SellerID *string

	// Limit is the maximum amount of products to return. Must be positive.
	Limit int

	// StartAfter is the ID after which the listing starts. Zero-value starts from the beginning.
	StartAfter string
}

// ListProductsResult gathers the result
type ListProductsResult struct {
	// Products are the products matching the query parameters
	Products []model.Product

	// LastKey is the ID of the last record examined when more results may exist, empty otherwise.
	LastKey string
}
