package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

// ProductServiceArgs contains the mandatory arguments for the ProductService.
type ProductServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.Repository
}

// NewProductService creates a new ProductService.
func NewProductService(args ProductServiceArgs, optArgs ...ServiceOptArgs) *ProductService {
	return &ProductService{repository: args.Repository, opts: newServiceOptions(optArgs)}
}

// ProductService gathers the functionality around products.
type ProductService struct {
	repository ports.Repository
	opts       serviceOptions
}

// CreateProduct creates a product with a freshly generated ID.
func (s *ProductService) CreateProduct(ctx context.Context, args model.CreateProductArgs) (*model.CreateProductResponse, error) {
	product := &model.Product{
		ID:          s.opts.idFunc(),
		Category:    args.Category,
		City:        args.City,
		Count:       args.Count,
		Country:     args.Country,
		Description: args.Description,
		Images:      args.Images,
		Price:       args.Price,
		ProductName: args.ProductName,
		Quantity:    args.Quantity,
		SubCategory: args.SubCategory,
		SellerID:    args.SellerID,
		Weight:      args.Weight,
		CreatedAt:   s.opts.nowFunc().UnixMilli(),
	}

	if err := s.repository.PutProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("error saving product in repository: %w", err)
	}

	return &model.CreateProductResponse{Product: *product}, nil
}

// ListProducts lists at most args.Limit products matching the arguments.
func (s *ProductService) ListProducts(ctx context.Context, args model.ListProductsArgs) (*model.ListProductsResponse, error) {
	limit := args.Limit
	if limit == 0 {
		limit = model.DefaultListLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must be positive, got %d: %w", limit, model.ErrInvalidArgument)
	}
	if limit > model.MaxListLimit {
		return nil, fmt.Errorf("limit must not exceed %d, got %d: %w", model.MaxListLimit, limit, model.ErrInvalidArgument)
	}
	startAfter, err := decodeStartKey(args.StartKey)
	if err != nil {
		return nil, err
	}

	res, err := s.repository.ListProducts(ctx, ports.ListProductsQuery{
		SellerID:   args.SellerID,
		Limit:      limit,
		StartAfter: startAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing products on the repository: %w", err)
	}

	products := res.Products
	if products == nil {
		products = []model.Product{}
	}
	return &model.ListProductsResponse{Products: products, NextKey: encodeStartKey(res.LastKey)}, nil
}

func encodeStartKey(lastKey string) string {
	if lastKey == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(lastKey))
}

func decodeStartKey(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("malformed start key %q: %w", token, model.ErrInvalidArgument)
	}
	return string(raw), nil
}
