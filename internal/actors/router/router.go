// Package router dispatches HTTP-style invocations to the user and product operations.
package router

import (
	"context"
	"net/http"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

// Route templates served by the Router.
const (
	RouteCreateUser    = "/create-user"
	RouteCreateProduct = "/create-product"
	RouteGetUser       = "/get-user/{id}"
	RouteGetUserByName = "/get-username/{userName}"
	RouteUpdateUser    = "/update-user/{id}"
	RouteListProducts  = "/list-product"
)

// Request is an HTTP-style invocation. Resource is the route template, not the substituted path.
type Request struct {
	Resource              string            `json:"resource"`
	HTTPMethod            string            `json:"httpMethod"`
	PathParameters        map[string]string `json:"pathParameters,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
	Body                  string            `json:"body,omitempty"`
}

// Response is the result of an invocation.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers,omitempty"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Dispatcher turns a Request into a Response.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) Response
}

// Route is a (resource, method) pair.
type Route struct {
	Resource string
	Method   string
}

// Routes lists every route the Router serves.
var Routes = []Route{
	{RouteCreateUser, http.MethodPost},
	{RouteCreateProduct, http.MethodPost},
	{RouteGetUser, http.MethodGet},
	{RouteGetUserByName, http.MethodGet},
	{RouteUpdateUser, http.MethodPut},
	{RouteListProducts, http.MethodGet},
}

// RouterArgs are the mandatory args to instantiate the Router.
type RouterArgs struct {
	// Users is the usecase for users
	Users userUsecase

	// Products is the usecase for products
	Products productUsecase
}

// NewRouter creates a new Router.
func NewRouter(args RouterArgs) *Router {
	r := &Router{users: args.Users, products: args.Products}
	r.handlers = map[Route]handlerFunc{
		{RouteCreateUser, http.MethodPost}:    r.createUser,
		{RouteCreateProduct, http.MethodPost}: r.createProduct,
		{RouteGetUser, http.MethodGet}:        r.getUser,
		{RouteGetUserByName, http.MethodGet}:  r.getUserByName,
		{RouteUpdateUser, http.MethodPut}:     r.updateUser,
		{RouteListProducts, http.MethodGet}:   r.listProducts,
	}
	return r
}

// Router selects exactly one handler per request by exact (resource, method) match.
type Router struct {
	users    userUsecase
	products productUsecase
	handlers map[Route]handlerFunc
}

type handlerFunc func(ctx context.Context, req Request) Response

// Dispatch implements Dispatcher.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	h, ok := r.handlers[Route{Resource: req.Resource, Method: req.HTTPMethod}]
	if !ok {
		return NotFound()
	}
	return h(ctx, req)
}

// NotFound is the response for unmatched routes.
func NotFound() Response {
	return textResponse(http.StatusNotFound, "Resource not found.")
}

// userUsecase
type userUsecase interface {
	// CreateUser creates a user.
	CreateUser(ctx context.Context, args model.CreateUserArgs) (*model.CreateUserResponse, error)

	// GetUserByID gets a user by id.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// GetUserByName gets a user by user name.
	GetUserByName(ctx context.Context, userName string) (*model.User, error)

	// UpdateUser updates a user.
	UpdateUser(ctx context.Context, args model.UpdateUserArgs) (*model.UpdateUserResponse, error)
}

// productUsecase
type productUsecase interface {
	// CreateProduct creates a product.
	CreateProduct(ctx context.Context, args model.CreateProductArgs) (*model.CreateProductResponse, error)

	// ListProducts lists products.
	ListProducts(ctx context.Context, args model.ListProductsArgs) (*model.ListProductsResponse, error)
}
