// Package gateway serves the router over plain HTTP using grpc-gateway's path-template mux.
package gateway

import (
	"context"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rbroggi/tinkoko/internal/actors/router"
	log "github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies read by the gateway.
const maxBodyBytes = 1 << 20

// ServeMuxArgs are the mandatory args to build the gateway mux.
type ServeMuxArgs struct {
	// Dispatcher serves the matched invocations.
	Dispatcher router.Dispatcher

	// Pinger backs the /healthz endpoint.
	Pinger pinger
}

type pinger interface {
	Ping(ctx context.Context) error
}

// NewServeMux registers every router.Routes template on a grpc-gateway ServeMux.
// Requests matching no template get the router's not-found response.
func NewServeMux(args ServeMuxArgs) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux(runtime.WithRoutingErrorHandler(routingErrorHandler))

	for _, route := range router.Routes {
		if err := mux.HandlePath(route.Method, route.Resource, invocationHandler(args.Dispatcher, route.Resource)); err != nil {
			return nil, err
		}
	}

	if err := mux.HandlePath(http.MethodGet, "/healthz", healthzHandler(args.Pinger)); err != nil {
		return nil, err
	}
	return mux, nil
}

func invocationHandler(dispatcher router.Dispatcher, resource string) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.WithError(err).WithField("resource", resource).Warn("error reading request body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if pathParams == nil {
			pathParams = map[string]string{}
		}
		query := map[string]string{}
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}

		resp := dispatcher.Dispatch(r.Context(), router.Request{
			Resource:              resource,
			HTTPMethod:            r.Method,
			PathParameters:        pathParams,
			QueryStringParameters: query,
			Body:                  string(body),
		})
		writeResponse(w, resp)
	}
}

func healthzHandler(p pinger) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		if p != nil {
			if err := p.Ping(r.Context()); err != nil {
				log.WithError(err).Warn("healthz: store is not reachable")
				http.Error(w, "store unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Ok")
	}
}

func routingErrorHandler(_ context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, _ *http.Request, _ int) {
	writeResponse(w, router.NotFound())
}

func writeResponse(w http.ResponseWriter, resp router.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		log.WithError(err).Warn("error writing response body")
	}
}
