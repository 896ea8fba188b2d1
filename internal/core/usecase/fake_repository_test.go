package usecase

import (
	"context"
	"sort"

	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

// fakeRepository is an in-memory ports.Repository.
type fakeRepository struct {
	users    map[string]model.User
	products map[string]model.Product
	err      error
	rejected bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]model.User{}, products: map[string]model.Product{}}
}

func (f *fakeRepository) PutUser(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if f.rejected {
		return model.ErrWriteRejected
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepository) FindUserByName(_ context.Context, userName string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRepository) PutProduct(_ context.Context, product *model.Product) error {
	if f.err != nil {
		return f.err
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeRepository) ListProducts(_ context.Context, query ports.ListProductsQuery) (*ports.ListProductsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := &ports.ListProductsResult{}
	for _, id := range ids {
		if id <= query.StartAfter {
			continue
		}
		p := f.products[id]
		if query.SellerID != nil && (p.SellerID == nil || *p.SellerID != *query.SellerID) {
			continue
		}
		if len(res.Products) == query.Limit {
			res.LastKey = res.Products[len(res.Products)-1].ID
			break
		}
		res.Products = append(res.Products, p)
	}
	return res, nil
}

func (f *fakeRepository) Ping(context.Context) error {
	return f.err
}
