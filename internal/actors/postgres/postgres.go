package postgres

import (
	"context"
	"errors"

	"github.com/go-pg/pg/v10"
	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

// PostgresDB is a postgress adapter for persistance.
type PostgresDB struct {
	db *pg.DB
}

// PostgresDBArgs are the mandatory arguments for the creation of a PostgresDB
type PostgresDBArgs struct {
	// DB is a postgres database handle
	DB *pg.DB
}

// NewPostgresDB creates a new PostgresDB.
func NewPostgresDB(args PostgresDBArgs) (*PostgresDB, error) {
	if args.DB == nil {
		return nil, errors.New("nil postgres handle")
	}
	return &PostgresDB{db: args.DB}, nil
}

// PutUser will save the user in the database, overwriting every column of an existing row.
func (p *PostgresDB) PutUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to put method")
	}

	res, err := p.db.ModelContext(ctx, toUserDB(user)).
		OnConflict("(id) DO UPDATE").
		Set("activate_user = EXCLUDED.activate_user").
		Set("currency = EXCLUDED.currency").
		Set("last_name = EXCLUDED.last_name").
		Set("email = EXCLUDED.email").
		Set("first_name = EXCLUDED.first_name").
		Set("phone = EXCLUDED.phone").
		Set("role = EXCLUDED.role").
		Set("user_name = EXCLUDED.user_name").
		Set("photo = EXCLUDED.photo").
		Set("verification_means = EXCLUDED.verification_means").
		Set("id_number = EXCLUDED.id_number").
		Set("created_at = EXCLUDED.created_at").
		Insert()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrWriteRejected
	}
	return nil
}

// GetUser loads a user. It returns model.ErrNotFound if the user does not exist.
func (p *PostgresDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	dbUser := new(userDB)
	err := p.db.ModelContext(ctx, dbUser).Where("id = ?", id).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := translateDBToUser(*dbUser)
	return &user, nil
}

// FindUserByName returns the first user, in id order, carrying the given user name.
func (p *PostgresDB) FindUserByName(ctx context.Context, userName string) (*model.User, error) {
	dbUser := new(userDB)
	err := p.db.ModelContext(ctx, dbUser).Where("user_name = ?", userName).Order("id ASC").Limit(1).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := translateDBToUser(*dbUser)
	return &user, nil
}

// PutProduct will save the product in the database, overwriting every column of an existing row.
func (p *PostgresDB) PutProduct(ctx context.Context, product *model.Product) error {
	if product == nil {
		return errors.New("nil product passed to put method")
	}

	res, err := p.db.ModelContext(ctx, toProductDB(product)).
		OnConflict("(id) DO UPDATE").
		Set("category = EXCLUDED.category").
		Set("city = EXCLUDED.city").
		Set("count = EXCLUDED.count").
		Set("country = EXCLUDED.country").
		Set("description = EXCLUDED.description").
		Set("images = EXCLUDED.images").
		Set("price = EXCLUDED.price").
		Set("product_name = EXCLUDED.product_name").
		Set("quantity = EXCLUDED.quantity").
		Set("sub_category = EXCLUDED.sub_category").
		Set("seller_id = EXCLUDED.seller_id").
		Set("weight = EXCLUDED.weight").
		Set("created_at = EXCLUDED.created_at").
		Insert()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrWriteRejected
	}
	return nil
}

// ListProducts list products matching the parameters in input, in id order.
func (p *PostgresDB) ListProducts(ctx context.Context, query ports.ListProductsQuery) (*ports.ListProductsResult, error) {
	var products []productDB
	q := p.db.ModelContext(ctx, &products).Order("id ASC")

	if query.SellerID != nil {
		q = q.Where("seller_id = ?", *query.SellerID)
	}
	if query.StartAfter != "" {
		q = q.Where("id > ?", query.StartAfter)
	}
	// one extra row tells whether there is a next page
	q = q.Limit(query.Limit + 1)
	if err := q.Select(); err != nil && err != pg.ErrNoRows {
		return nil, err
	}

	res := &ports.ListProductsResult{}
	if len(products) > query.Limit {
		products = products[:query.Limit]
		res.LastKey = products[len(products)-1].ID
	}
	res.Products = translateDBToProducts(products)
	return res, nil
}

// Ping checks the connection to the server.
func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func toUserDB(user *model.User) *userDB {
	return &userDB{
		ID:                user.ID,
		ActivateUser:      user.ActivateUser,
		Currency:          user.Currency,
		LastName:          user.LastName,
		Email:             user.Email,
		FirstName:         user.FirstName,
		Phone:             user.Phone,
		Role:              user.Role,
		UserName:          user.UserName,
		Photo:             user.Photo,
		VerificationMeans: user.VerificationMeans,
		IDNumber:          user.IDNumber,
		CreatedAt:         user.CreatedAt,
	}
}

func translateDBToUser(dbUser userDB) model.User {
	return model.User{
		ID:                dbUser.ID,
		ActivateUser:      dbUser.ActivateUser,
		Currency:          dbUser.Currency,
		LastName:          dbUser.LastName,
		Email:             dbUser.Email,
		FirstName:         dbUser.FirstName,
		Phone:             dbUser.Phone,
		Role:              dbUser.Role,
		UserName:          dbUser.UserName,
		Photo:             dbUser.Photo,
		VerificationMeans: dbUser.VerificationMeans,
		IDNumber:          dbUser.IDNumber,
		CreatedAt:         dbUser.CreatedAt,
	}
}

func toProductDB(product *model.Product) *productDB {
	return &productDB{
		ID:          product.ID,
		Category:    product.Category,
		City:        product.City,
		Count:       product.Count,
		Country:     product.Country,
		Description: product.Description,
		Images:      product.Images,
		Price:       product.Price,
		ProductName: product.ProductName,
		Quantity:    product.Quantity,
		SubCategory: product.SubCategory,
		SellerID:    product.SellerID,
		Weight:      product.Weight,
		CreatedAt:   product.CreatedAt,
	}
}

func translateDBToProducts(dbProducts []productDB) []model.Product {
	models := make([]model.Product, len(dbProducts))
	for i, dbProduct := range dbProducts {
		models[i] = model.Product{
			ID:          dbProduct.ID,
			Category:    dbProduct.Category,
			City:        dbProduct.City,
			Count:       dbProduct.Count,
			Country:     dbProduct.Country,
			Description: dbProduct.Description,
			Images:      dbProduct.Images,
			Price:       dbProduct.Price,
			ProductName: dbProduct.ProductName,
			Quantity:    dbProduct.Quantity,
			SubCategory: dbProduct.SubCategory,
			SellerID:    dbProduct.SellerID,
			Weight:      dbProduct.Weight,
			CreatedAt:   dbProduct.CreatedAt,
		}
	}
	return models
}

type userDB struct {
	tableName struct{} `pg:"tinkoko.users"`

	// ID unique identifier of the user.
	ID string `pg:"id,pk"`

	ActivateUser bool   `pg:"activate_user,use_zero"`
	Currency     string `pg:"currency,use_zero"`
	LastName     string `pg:"last_name,use_zero"`
	Email        string `pg:"email,use_zero"`
	FirstName    string `pg:"first_name,use_zero"`
	Phone        string `pg:"phone,use_zero"`
	Role         string `pg:"role,use_zero"`
	UserName     string `pg:"user_name,use_zero"`

	// Photo is NULL until an update sets it.
	Photo             []string `pg:"photo,array"`
	VerificationMeans *string  `pg:"verification_means"`
	IDNumber          *string  `pg:"id_number"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `pg:"created_at,use_zero"`
}

type productDB struct {
	tableName struct{} `pg:"tinkoko.products"`

	// ID unique identifier of the product.
	ID string `pg:"id,pk"`

	Category    *string  `pg:"category"`
	City        *string  `pg:"city"`
	Count       *float64 `pg:"count"`
	Country     *string  `pg:"country"`
	Description *string  `pg:"description"`
	Images      []string `pg:"images,array"`
	Price       *float64 `pg:"price"`
	ProductName *string  `pg:"product_name"`
	Quantity    *float64 `pg:"quantity"`
	SubCategory *string  `pg:"sub_category"`
	SellerID    *string  `pg:"seller_id"`
	Weight      *float64 `pg:"weight"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `pg:"created_at,use_zero"`
}
