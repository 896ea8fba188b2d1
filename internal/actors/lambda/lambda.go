// Package lambda adapts API Gateway proxy events to the router.
package lambda

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rbroggi/tinkoko/internal/actors/router"
	log "github.com/sirupsen/logrus"
)

// HandlerArgs are the mandatory args to instantiate the Handler.
type HandlerArgs struct {
	// Dispatcher serves the decoded invocations.
	Dispatcher router.Dispatcher
}

// NewHandler creates a new Handler.
func NewHandler(args HandlerArgs) *Handler {
	return &Handler{dispatcher: args.Dispatcher}
}

// Handler is the Lambda entry point. Its Handle method is meant to be passed to lambda.Start.
type Handler struct {
	dispatcher router.Dispatcher
}

// Handle serves one API Gateway proxy invocation.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := toRequest(event)
	if err != nil {
		log.WithError(err).WithField("resource", event.Resource).Warn("could not decode base64 body")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"invalid base64 body"}`,
		}, nil
	}
	return toProxyResponse(h.dispatcher.Dispatch(ctx, req)), nil
}

func toRequest(event events.APIGatewayProxyRequest) (router.Request, error) {
	body := event.Body
	if event.IsBase64Encoded && body != "" {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return router.Request{}, err
		}
		body = string(raw)
	}
	return router.Request{
		Resource:              event.Resource,
		HTTPMethod:            event.HTTPMethod,
		PathParameters:        event.PathParameters,
		QueryStringParameters: event.QueryStringParameters,
		Body:                  body,
	}, nil
}

func toProxyResponse(resp router.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}
