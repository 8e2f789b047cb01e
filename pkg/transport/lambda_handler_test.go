package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/fast-lambda-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *Router {
	r := NewRouter(time.Second)
	r.Handle(http.MethodGet, "/items/{id}", func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return responder.CreateAPIResponse(map[string]any{
			"id":             req.PathParameters["id"],
			"correlation_id": CorrelationID(ctx),
			"verbose":        req.QueryStringParameters["verbose"],
		}, http.StatusOK, responder.WithJSONContentType()), nil
	})
	r.Handle(http.MethodPost, "/items", func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if _, ok := ctx.Deadline(); !ok {
			return responder.Error(http.StatusTeapot, "no deadline"), nil
		}
		return responder.CreateAPIResponse(map[string]any{"body": req.Body}, http.StatusCreated), nil
	})
	r.Handle(http.MethodDelete, "/items/{id}", func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("database down")
	})
	return r
}

func TestLambdaHandler_Routes(t *testing.T) {
	handler := NewLambdaHandler(newTestRouter())

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Resource:       "/items/{id}",
		Path:           "/items/42",
		PathParameters: map[string]string{"id": "42"},
		Headers:        map[string]string{HeaderCorrelationID: "corr-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"42","correlation_id":"corr-1","verbose":"","status":"OK"}`, resp.Body)
	assert.Equal(t, "corr-1", resp.Headers[HeaderCorrelationID])
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
}

func TestLambdaHandler_AppliesTimeout(t *testing.T) {
	resp, err := NewLambdaHandler(newTestRouter()).Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Resource:   "/items",
		Body:       `{"name":"x"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Headers[HeaderCorrelationID])
}

func TestLambdaHandler_NotFound(t *testing.T) {
	resp, err := NewLambdaHandler(newTestRouter()).Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPut,
		Resource:   "/items/{id}",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"status":"FAIL","message":"route not found"}`, resp.Body)
}

func TestLambdaHandler_HandlerError(t *testing.T) {
	resp, err := NewLambdaHandler(newTestRouter()).Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodDelete,
		Resource:   "/items/{id}",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "internal server error")
}

func TestLambdaHandler_KeepsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("handler_name", "items").Logger()

	r := NewRouter(0)
	r.Handle(http.MethodGet, "/ping", func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		zerolog.Ctx(ctx).Info().Msg("pong")
		return responder.CreateAPIResponse(map[string]any{}, http.StatusOK), nil
	})

	resp, err := NewLambdaHandler(r).Handle(base.WithContext(context.Background()), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Resource:   "/ping",
		Headers:    map[string]string{HeaderCorrelationID: "corr-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	line, err := buf.ReadBytes('\n')
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "pong", entry["message"])
	assert.Equal(t, "items", entry["handler_name"])
	assert.Equal(t, "corr-1", entry["correlation_id"])
}
