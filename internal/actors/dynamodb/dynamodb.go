// Package dynamodb stores users and products in a single DynamoDB table keyed by id.
// Every item carries a kind attribute telling users and products apart.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

const (
	attrID       = "id"
	attrKind     = "kind"
	attrUserName = "userName"
	attrSellerID = "sellerId"
)

// api is the subset of the DynamoDB client used by the store.
type api interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// statusCode extracts the HTTP status of a completed call. Zero when unknown.
var statusCode = func(md middleware.Metadata) int {
	if resp, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && resp != nil {
		return resp.StatusCode
	}
	return 0
}

// DynamoDB is a dynamodb adapter for persistance.
type DynamoDB struct {
	client api
	table  string
}

// DynamoDBArgs are the mandatory arguments for the creation of a DynamoDB
type DynamoDBArgs struct {
	// Client is the DynamoDB client, usually built with NewClient.
	Client api

	// Table is the name of the table holding both users and products.
	Table string
}

// NewDynamoDB creates a new DynamoDB.
func NewDynamoDB(args DynamoDBArgs) (*DynamoDB, error) {
	if args.Client == nil {
		return nil, errors.New("nil dynamodb client")
	}
	if args.Table == "" {
		return nil, errors.New("empty dynamodb table name")
	}
	return &DynamoDB{client: args.Client, table: args.Table}, nil
}

// ClientArgs configure the DynamoDB client.
type ClientArgs struct {
	Region string

	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string

	// AccessKeyID and SecretAccessKey select static credentials. Empty means the default chain.
	AccessKeyID     string
	SecretAccessKey string
}

// NewClient builds a DynamoDB client.
func NewClient(ctx context.Context, args ClientArgs) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(args.Region)}
	if args.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(args.AccessKeyID, args.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if args.Endpoint != "" {
			o.BaseEndpoint = aws.String(args.Endpoint)
		}
	}), nil
}

// PutUser writes the whole user item, replacing any previous version.
func (d *DynamoDB) PutUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to put method")
	}
	return d.put(ctx, toUserItem(user))
}

// PutProduct writes the whole product item, replacing any previous version.
func (d *DynamoDB) PutProduct(ctx context.Context, product *model.Product) error {
	if product == nil {
		return errors.New("nil product passed to put method")
	}
	return d.put(ctx, toProductItem(product))
}

func (d *DynamoDB) put(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("error marshalling item: %w", err)
	}
	out, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	})
	if err != nil {
		return err
	}
	if code := statusCode(out.ResultMetadata); code != 0 && code != http.StatusOK {
		return model.ErrWriteRejected
	}
	return nil
}

// GetUser loads a user. It returns model.ErrNotFound if no user item has this id.
func (d *DynamoDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       map[string]types.AttributeValue{attrID: &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, model.ErrNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("error unmarshalling user [%s]: %w", id, err)
	}
	if item.Kind != model.KindUser {
		return nil, model.ErrNotFound
	}
	user := item.toModel()
	return &user, nil
}

// FindUserByName scans the table until the first user with the given user name.
func (d *DynamoDB) FindUserByName(ctx context.Context, userName string) (*model.User, error) {
	filter := expression.Name(attrKind).Equal(expression.Value(string(model.KindUser))).
		And(expression.Name(attrUserName).Equal(expression.Value(userName)))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("error building filter: %w", err)
	}

	var startKey map[string]types.AttributeValue
	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(d.table),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		if len(out.Items) > 0 {
			var item userItem
			if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
				return nil, fmt.Errorf("error unmarshalling user named [%s]: %w", userName, err)
			}
			user := item.toModel()
			return &user, nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil, model.ErrNotFound
		}
		startKey = out.LastEvaluatedKey
	}
}

// ListProducts scans product items. Limit bounds the number of returned products; the scan
// page size shrinks to what is still missing so the table continuation key stays exact.
func (d *DynamoDB) ListProducts(ctx context.Context, query ports.ListProductsQuery) (*ports.ListProductsResult, error) {
	filter := expression.Name(attrKind).Equal(expression.Value(string(model.KindProduct)))
	if query.SellerID != nil {
		filter = filter.And(expression.Name(attrSellerID).Equal(expression.Value(*query.SellerID)))
	}
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("error building filter: %w", err)
	}

	var startKey map[string]types.AttributeValue
	if query.StartAfter != "" {
		startKey = map[string]types.AttributeValue{attrID: &types.AttributeValueMemberS{Value: query.StartAfter}}
	}

	res := &ports.ListProductsResult{Products: []model.Product{}}
	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(d.table),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
			Limit:                     aws.Int32(int32(query.Limit - len(res.Products))),
		})
		if err != nil {
			return nil, err
		}

		var items []productItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("error unmarshalling products: %w", err)
		}
		for _, item := range items {
			res.Products = append(res.Products, item.toModel())
		}

		if len(out.LastEvaluatedKey) == 0 {
			return res, nil
		}
		if len(res.Products) >= query.Limit {
			if err := attributevalue.Unmarshal(out.LastEvaluatedKey[attrID], &res.LastKey); err != nil {
				return nil, fmt.Errorf("error reading continuation key: %w", err)
			}
			return res, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// pageSize bounds a scan page to what the Limit field can carry.
func pageSize(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// Ping checks the table is reachable.
func (d *DynamoDB) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table)})
	return err
}

type userItem struct {
	ID                string           `dynamodbav:"id"`
	Kind              model.RecordKind `dynamodbav:"kind"`
	ActivateUser      bool             `dynamodbav:"activateUser"`
	Currency          string           `dynamodbav:"currency"`
	LastName          string           `dynamodbav:"lastName"`
	Email             string           `dynamodbav:"email"`
	FirstName         string           `dynamodbav:"firstName"`
	Phone             string           `dynamodbav:"phone"`
	Role              string           `dynamodbav:"role"`
	UserName          string           `dynamodbav:"userName"`
	Photo             []string         `dynamodbav:"photo,omitempty"`
	VerificationMeans *string          `dynamodbav:"verificationMeans,omitempty"`
	IDNumber          *string          `dynamodbav:"idNumber,omitempty"`
	CreatedAt         int64            `dynamodbav:"createdAt"`
}

func toUserItem(user *model.User) userItem {
	return userItem{
		ID:                user.ID,
		Kind:              model.KindUser,
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

func (i userItem) toModel() model.User {
	return model.User{
		ID:                i.ID,
		ActivateUser:      i.ActivateUser,
		Currency:          i.Currency,
		LastName:          i.LastName,
		Email:             i.Email,
		FirstName:         i.FirstName,
		Phone:             i.Phone,
		Role:              i.Role,
		UserName:          i.UserName,
		Photo:             i.Photo,
		VerificationMeans: i.VerificationMeans,
		IDNumber:          i.IDNumber,
		CreatedAt:         i.CreatedAt,
	}
}

type productItem struct {
	ID          string           `dynamodbav:"id"`
	Kind        model.RecordKind `dynamodbav:"kind"`
	Category    *string          `dynamodbav:"category,omitempty"`
	City        *string          `dynamodbav:"city,omitempty"`
	Count       *float64         `dynamodbav:"count,omitempty"`
	Country     *string          `dynamodbav:"country,omitempty"`
	Description *string          `dynamodbav:"description,omitempty"`
	Images      []string         `dynamodbav:"images,omitempty"`
	Price       *float64         `dynamodbav:"price,omitempty"`
	ProductName *string          `dynamodbav:"productName,omitempty"`
	Quantity    *float64         `dynamodbav:"quantity,omitempty"`
	SubCategory *string          `dynamodbav:"subCategory,omitempty"`
	SellerID    *string          `dynamodbav:"sellerId,omitempty"`
	Weight      *float64         `dynamodbav:"weight,omitempty"`
	CreatedAt   int64            `dynamodbav:"createdAt"`
}

func toProductItem(product *model.Product) productItem {
	return productItem{
		ID:          product.ID,
		Kind:        model.KindProduct,
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

func (i productItem) toModel() model.Product {
	return model.Product{
		ID:          i.ID,
		Category:    i.Category,
		City:        i.City,
		Count:       i.Count,
		Country:     i.Country,
		Description: i.Description,
		Images:      i.Images,
		Price:       i.Price,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		SubCategory: i.SubCategory,
		SellerID:    i.SellerID,
		Weight:      i.Weight,
		CreatedAt:   i.CreatedAt,
	}
}
