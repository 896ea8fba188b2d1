package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

type createUserBody struct {
	ActivateUser bool   `json:"activateUser"`
	Currency     string `json:"currency"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	UserName     string `json:"userName"`
}

func (b createUserBody) toArgs() model.CreateUserArgs {
	return model.CreateUserArgs{
		ActivateUser: b.ActivateUser,
		Currency:     b.Currency,
		LastName:     b.LastName,
		Email:        b.Email,
		FirstName:    b.FirstName,
		Phone:        b.Phone,
		Role:         b.Role,
		UserName:     b.UserName,
	}
}

// updateUserBody keeps photo raw so an explicit null can be told apart from an absent field.
type updateUserBody struct {
	Photo             json.RawMessage `json:"photo"`
	VerificationMeans *string         `json:"verificationMeans"`
	IDNumber          *string         `json:"idNumber"`
}

func (b updateUserBody) toArgs(id string) (model.UpdateUserArgs, error) {
	args := model.UpdateUserArgs{
		ID:                id,
		VerificationMeans: b.VerificationMeans,
		IDNumber:          b.IDNumber,
	}
	if len(b.Photo) > 0 {
		var photo []string
		if err := json.Unmarshal(b.Photo, &photo); err != nil {
			return model.UpdateUserArgs{}, fmt.Errorf("invalid photo: %w", err)
		}
		args.Photo = &photo
	}
	return args, nil
}

type createProductBody struct {
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
	SellerID    *string  `json:"sellerId"`
	Weight      *float64 `json:"weight"`
}

func (b createProductBody) toArgs() model.CreateProductArgs {
	return model.CreateProductArgs{
		Category:    b.Category,
		City:        b.City,
		Count:       b.Count,
		Country:     b.Country,
		Description: b.Description,
		Images:      b.Images,
		Price:       b.Price,
		ProductName: b.ProductName,
		Quantity:    b.Quantity,
		SubCategory: b.SubCategory,
		SellerID:    b.SellerID,
		Weight:      b.Weight,
	}
}

// userResponse is the shape of a fetched user. The user name is exposed as userId.
type userResponse struct {
	ID           string `json:"id"`
	ActivateUser bool   `json:"activateUser"`
	Currency     string `json:"currency"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	UserID       string `json:"userId"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		ActivateUser: u.ActivateUser,
		Currency:     u.Currency,
		LastName:     u.LastName,
		Email:        u.Email,
		FirstName:    u.FirstName,
		Phone:        u.Phone,
		Role:         u.Role,
		UserID:       u.UserName,
	}
}

type createUserResponse struct {
	ID           string `json:"id"`
	ActivateUser bool   `json:"activateUser"`
	CreatedAt    string `json:"createdAt"`
	Currency     string `json:"currency"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	UserID       string `json:"userId"`
}

func toCreateUserResponse(u model.User) createUserResponse {
	return createUserResponse{
		ID:           u.ID,
		ActivateUser: u.ActivateUser,
		CreatedAt:    millis(u.CreatedAt),
		Currency:     u.Currency,
		LastName:     u.LastName,
		Email:        u.Email,
		FirstName:    u.FirstName,
		Phone:        u.Phone,
		Role:         u.Role,
		UserID:       u.UserName,
	}
}

type updateUserResponse struct {
	ID                string   `json:"id"`
	ActivateUser      bool     `json:"activateUser"`
	CreatedAt         string   `json:"createdAt"`
	Currency          string   `json:"currency"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	FirstName         string   `json:"firstName"`
	Phone             string   `json:"phone"`
	Role              string   `json:"role"`
	UserID            string   `json:"userId"`
	Photo             []string `json:"photo"`
	VerificationMeans string   `json:"verificationMeans"`
	IDNumber          string   `json:"idNumber"`
}

func toUpdateUserResponse(u model.User) updateUserResponse {
	resp := updateUserResponse{
		ID:           u.ID,
		ActivateUser: u.ActivateUser,
		CreatedAt:    millis(u.CreatedAt),
		Currency:     u.Currency,
		LastName:     u.LastName,
		Email:        u.Email,
		FirstName:    u.FirstName,
		Phone:        u.Phone,
		Role:         u.Role,
		UserID:       u.UserName,
		Photo:        u.Photo,
	}
	if resp.Photo == nil {
		resp.Photo = []string{}
	}
	if u.VerificationMeans != nil {
		resp.VerificationMeans = *u.VerificationMeans
	}
	if u.IDNumber != nil {
		resp.IDNumber = *u.IDNumber
	}
	return resp
}

type productResponse struct {
	ID          string   `json:"id"`
	Category    *string  `json:"category"`
	City        *string  `json:"city"`
	Count       *float64 `json:"count"`
	Country     *string  `json:"country"`
	CreatedAt   string   `json:"createdAt"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Price       *float64 `json:"price"`
	ProductName *string  `json:"productName"`
	Quantity    *float64 `json:"quantity"`
	SubCategory *string  `json:"subCategory"`
	SellerID    *string  `json:"sellerId"`
	Weight      *float64 `json:"weight"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Category:    p.Category,
		City:        p.City,
		Count:       p.Count,
		Country:     p.Country,
		CreatedAt:   millis(p.CreatedAt),
		Description: p.Description,
		Images:      p.Images,
		Price:       p.Price,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		SubCategory: p.SubCategory,
		SellerID:    p.SellerID,
		Weight:      p.Weight,
	}
}

type listProductsResponse struct {
	Length           int               `json:"length"`
	Items            []productResponse `json:"items"`
	LastEvaluatedKey *string           `json:"LastEvaluatedKey"`
}

func toListProductsResponse(resp *model.ListProductsResponse) listProductsResponse {
	items := make([]productResponse, 0, len(resp.Products))
	for _, p := range resp.Products {
		items = append(items, toProductResponse(p))
	}
	out := listProductsResponse{Length: len(items), Items: items}
	if resp.NextKey != "" {
		out.LastEvaluatedKey = &resp.NextKey
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeBody decodes a JSON object body into dst. An empty body leaves dst untouched.
func decodeBody(body string, dst interface{}) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseLimit reads the limit query parameter. Absent means zero, which the usecase turns into its default.
func parseLimit(query map[string]string) (int, error) {
	raw, ok := query["limit"]
	if !ok || raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}

func millis(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

func jsonResponse(status int, payload interface{}) Response {
	data, err := json.Marshal(payload)
	if err != nil {
		return errorJSON(http.StatusInternalServerError, fmt.Sprintf("error encoding response: %v", err))
	}
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func errorJSON(status int, msg string) Response {
	data, _ := json.Marshal(errorResponse{Error: msg})
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func textResponse(status int, body string) Response {
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       body,
	}
}
