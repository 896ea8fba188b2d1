package lambda

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rbroggi/tinkoko/internal/actors/router"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	got  router.Request
	resp router.Response
}

func (d *recordingDispatcher) Dispatch(_ context.Context, req router.Request) router.Response {
	d.got = req
	return d.resp
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name         string
		event        events.APIGatewayProxyRequest
		expectedReq  router.Request
		expectedCode int
	}{
		{
			name: "path and query parameters are passed through",
			event: events.APIGatewayProxyRequest{
				Resource:              "/get-user/{id}",
				Path:                  "/get-user/42",
				HTTPMethod:            http.MethodGet,
				PathParameters:        map[string]string{"id": "42"},
				QueryStringParameters: map[string]string{"limit": "5"},
			},
			expectedReq: router.Request{
				Resource:              "/get-user/{id}",
				HTTPMethod:            http.MethodGet,
				PathParameters:        map[string]string{"id": "42"},
				QueryStringParameters: map[string]string{"limit": "5"},
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "base64 body is decoded",
			event: events.APIGatewayProxyRequest{
				Resource:        "/create-user",
				HTTPMethod:      http.MethodPost,
				Body:            base64.StdEncoding.EncodeToString([]byte(`{"userName":"ana1"}`)),
				IsBase64Encoded: true,
			},
			expectedReq: router.Request{
				Resource:   "/create-user",
				HTTPMethod: http.MethodPost,
				Body:       `{"userName":"ana1"}`,
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "broken base64 body",
			event: events.APIGatewayProxyRequest{
				Resource:        "/create-user",
				HTTPMethod:      http.MethodPost,
				Body:            "!!!",
				IsBase64Encoded: true,
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dispatcher := &recordingDispatcher{resp: router.Response{
				StatusCode: http.StatusOK,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       "{}",
			}}
			h := NewHandler(HandlerArgs{Dispatcher: dispatcher})

			resp, err := h.Handle(context.Background(), test.event)
			require.NoError(t, err)
			require.Equal(t, test.expectedCode, resp.StatusCode)
			require.Equal(t, test.expectedReq, dispatcher.got)
			if test.expectedCode == http.StatusOK {
				require.Equal(t, "{}", resp.Body)
				require.Equal(t, "application/json", resp.Headers["Content-Type"])
			}
		})
	}
}
