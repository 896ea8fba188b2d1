package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rbroggi/tinkoko/internal/core/model"
	log "github.com/sirupsen/logrus"
)

func (r *Router) createUser(ctx context.Context, req Request) Response {
	var body createUserBody
	if err := decodeBody(req.Body, &body); err != nil {
		return errorJSON(http.StatusBadRequest, err.Error())
	}

	resp, err := r.users.CreateUser(ctx, body.toArgs())
	if err != nil {
		log.WithError(err).WithField("resource", req.Resource).Error("error invoking usecase CreateUser")
		if errors.Is(err, model.ErrWriteRejected) {
			return errorJSON(http.StatusInternalServerError, "Error creating user: Put item operation failed.")
		}
		return errorJSON(http.StatusInternalServerError, fmt.Sprintf("Error creating user: %v", err))
	}

	return jsonResponse(http.StatusOK, toCreateUserResponse(resp.User))
}

func (r *Router) createProduct(ctx context.Context, req Request) Response {
	var body createProductBody
	if err := decodeBody(req.Body, &body); err != nil {
		return errorJSON(http.StatusBadRequest, err.Error())
	}

	resp, err := r.products.CreateProduct(ctx, body.toArgs())
	if err != nil {
		log.WithError(err).WithField("resource", req.Resource).Error("error invoking usecase CreateProduct")
		return errorJSON(http.StatusInternalServerError, fmt.Sprintf("Error creating product: %v", err))
	}

	return jsonResponse(http.StatusOK, toProductResponse(resp.Product))
}

func (r *Router) getUser(ctx context.Context, req Request) Response {
	id, ok := req.PathParameters["id"]
	if !ok {
		return errorJSON(http.StatusBadRequest, "missing path parameter id")
	}

	user, err := r.users.GetUserByID(ctx, id)
	return userLookupResponse(req, user, err)
}

func (r *Router) getUserByName(ctx context.Context, req Request) Response {
	userName, ok := req.PathParameters["userName"]
	if !ok {
		return errorJSON(http.StatusBadRequest, "missing path parameter userName")
	}

	user, err := r.users.GetUserByName(ctx, userName)
	return userLookupResponse(req, user, err)
}

func userLookupResponse(req Request, user *model.User, err error) Response {
	if errors.Is(err, model.ErrNotFound) {
		return textResponse(http.StatusNotFound, "User not found.")
	}
	if err != nil {
		log.WithError(err).WithField("resource", req.Resource).Error("error looking up user")
		return errorJSON(http.StatusInternalServerError, fmt.Sprintf("Error: %v", err))
	}
	return jsonResponse(http.StatusOK, toUserResponse(*user))
}

func (r *Router) updateUser(ctx context.Context, req Request) Response {
	id, ok := req.PathParameters["id"]
	if !ok {
		return errorJSON(http.StatusBadRequest, "missing path parameter id")
	}
	var body updateUserBody
	if err := decodeBody(req.Body, &body); err != nil {
		return errorJSON(http.StatusBadRequest, err.Error())
	}
	args, err := body.toArgs(id)
	if err != nil {
		return errorJSON(http.StatusBadRequest, err.Error())
	}

	// a missing user is a fault like any other here
	resp, err := r.users.UpdateUser(ctx, args)
	if err != nil {
		log.WithError(err).WithField("user-id", id).Error("error invoking usecase UpdateUser")
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	return jsonResponse(http.StatusOK, toUpdateUserResponse(resp.User))
}

func (r *Router) listProducts(ctx context.Context, req Request) Response {
	limit, err := parseLimit(req.QueryStringParameters)
	if err != nil {
		return errorJSON(http.StatusBadRequest, err.Error())
	}
	args := model.ListProductsArgs{Limit: limit, StartKey: req.QueryStringParameters["startKey"]}
	if sellerID, ok := req.QueryStringParameters["sellerId"]; ok {
		args.SellerID = &sellerID
	}

	resp, err := r.products.ListProducts(ctx, args)
	if errors.Is(err, model.ErrInvalidArgument) {
		return errorJSON(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		log.WithError(err).WithField("resource", req.Resource).Error("error invoking usecase ListProducts")
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	return jsonResponse(http.StatusOK, toListProductsResponse(resp))
}
