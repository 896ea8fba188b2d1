package mongo

import (
	"context"
	"errors"

	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB is a mongo adapter for persistance. Users and products live in separate collections.
type MongoDB struct {
	userCollection    *mongo.Collection
	productCollection *mongo.Collection
}

// MongoDBArgs are the mandatory arguments for the creation of a MongoDB
type MongoDBArgs struct {
	// UserCollection is the mongo collection holding users
	UserCollection *mongo.Collection

	// ProductCollection is the mongo collection holding products
	ProductCollection *mongo.Collection
}

// NewMongoDB creates a new MongoDB.
func NewMongoDB(args MongoDBArgs) (*MongoDB, error) {
	if args.UserCollection == nil || args.ProductCollection == nil {
		return nil, errors.New("both user and product collections are required")
	}
	return &MongoDB{userCollection: args.UserCollection, productCollection: args.ProductCollection}, nil
}

// PutUser will save the user in the database, replacing the existing one if any.
func (p *MongoDB) PutUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to put method")
	}

	dbUser := toUserDB(user)
	res, err := p.userCollection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: dbUser.ID}}, dbUser, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return model.ErrWriteRejected
	}
	return nil
}

// GetUser loads a user. It returns model.ErrNotFound if the user does not exist.
func (p *MongoDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return p.findUser(ctx, bson.D{{Key: "_id", Value: id}})
}

// FindUserByName returns the first user with the given user name.
func (p *MongoDB) FindUserByName(ctx context.Context, userName string) (*model.User, error) {
	return p.findUser(ctx, bson.D{{Key: "user_name", Value: userName}})
}

func (p *MongoDB) findUser(ctx context.Context, filter bson.D) (*model.User, error) {
	dbUser := new(userDB)
	err := p.userCollection.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(dbUser)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := translateDBToUser(*dbUser)
	return &user, nil
}

// PutProduct will save the product in the database, replacing the existing one if any.
func (p *MongoDB) PutProduct(ctx context.Context, product *model.Product) error {
	if product == nil {
		return errors.New("nil product passed to put method")
	}

	dbProduct := toProductDB(product)
	res, err := p.productCollection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: dbProduct.ID}}, dbProduct, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return model.ErrWriteRejected
	}
	return nil
}

// ListProducts list products matching the parameters in input, in _id order.
func (p *MongoDB) ListProducts(ctx context.Context, query ports.ListProductsQuery) (*ports.ListProductsResult, error) {
	filters := bson.M{}
	if query.SellerID != nil {
		filters["seller_id"] = *query.SellerID
	}
	if query.StartAfter != "" {
		filters["_id"] = bson.M{"$gt": query.StartAfter}
	}

	// one extra document tells whether there is a next page
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(query.Limit) + 1)
	var products []productDB
	cursor, err := p.productCollection.Find(ctx, filters, opts)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &products); err != nil {
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
func (p *MongoDB) Ping(ctx context.Context) error {
	return p.userCollection.Database().Client().Ping(ctx, nil)
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
	// ID unique identifier of the user.
	ID string `bson:"_id"`

	ActivateUser bool   `bson:"activate_user"`
	Currency     string `bson:"currency"`
	LastName     string `bson:"last_name"`
	Email        string `bson:"email"`
	FirstName    string `bson:"first_name"`
	Phone        string `bson:"phone"`
	Role         string `bson:"role"`
	UserName     string `bson:"user_name"`

	// Photo, VerificationMeans and IDNumber are absent until the first update setting them.
	Photo             []string `bson:"photo,omitempty"`
	VerificationMeans *string  `bson:"verification_means,omitempty"`
	IDNumber          *string  `bson:"id_number,omitempty"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `bson:"created_at"`
}

type productDB struct {
	// ID unique identifier of the product.
	ID string `bson:"_id"`

	Category    *string  `bson:"category,omitempty"`
	City        *string  `bson:"city,omitempty"`
	Count       *float64 `bson:"count,omitempty"`
	Country     *string  `bson:"country,omitempty"`
	Description *string  `bson:"description,omitempty"`
	Images      []string `bson:"images,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
	ProductName *string  `bson:"product_name,omitempty"`
	Quantity    *float64 `bson:"quantity,omitempty"`
	SubCategory *string  `bson:"sub_category,omitempty"`
	SellerID    *string  `bson:"seller_id,omitempty"`
	Weight      *float64 `bson:"weight,omitempty"`

	// CreatedAt is the creation time in milliseconds since epoch.
	CreatedAt int64 `bson:"created_at"`
}
