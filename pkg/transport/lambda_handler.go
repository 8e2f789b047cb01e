package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/fast-lambda-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

type contextKey string

// ContextKeyCorrID guarda o correlation id no contexto da requisição.
const ContextKeyCorrID contextKey = "correlation_id"

// CorrelationID devolve o correlation id da requisição, se houver.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyCorrID).(string)
	return id
}

// APIHandler é um handler no formato de proxy do API Gateway.
type APIHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Route associa método e resource (ex: "/items/{id}") a um handler.
type Route struct {
	Method   string
	Resource string
	Handler  APIHandler
}

// Router resolve handlers pelo par método + resource, do mesmo jeito no
// Lambda e no servidor HTTP local.
type Router struct {
	routes  []Route
	timeout time.Duration
}

// NewRouter cria um Router. timeout <= 0 desativa o limite por requisição.
func NewRouter(timeout time.Duration) *Router {
	return &Router{timeout: timeout}
}

// Handle registra um handler.
func (r *Router) Handle(method, resource string, h APIHandler) {
	r.routes = append(r.routes, Route{Method: method, Resource: resource, Handler: h})
}

// Routes devolve as rotas na ordem de registro.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

func (r *Router) lookup(method, resource string) (APIHandler, bool) {
	for _, rt := range r.routes {
		if rt.Method == method && rt.Resource == resource {
			return rt.Handler, true
		}
	}
	return nil, false
}

// dispatch aplica o timeout e converte erros não tratados em 500.
func (r *Router) dispatch(ctx context.Context, h APIHandler, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := h(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("path", req.Path).Msg("Unhandled handler error")
		return responder.Error(http.StatusInternalServerError, "internal server error")
	}
	return resp
}

// LambdaHandler adapta eventos do API Gateway para o Router
type LambdaHandler struct {
	router *Router
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(router *Router) *LambdaHandler {
	return &LambdaHandler{router: router}
}

// Handle processa a requisição Lambda
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		corrID = req.Headers["X-Correlation-Id"]
	}
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := requestLogger(ctx).With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	var response events.APIGatewayProxyResponse
	if handler, ok := h.router.lookup(req.HTTPMethod, req.Resource); ok {
		response = h.router.dispatch(ctx, handler, req)
	} else {
		response = responder.Error(http.StatusNotFound, "route not found")
	}

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", response.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	if response.Headers == nil {
		response.Headers = make(map[string]string)
	}
	response.Headers[HeaderCorrelationID] = corrID

	return response, nil
}

// requestLogger preserva o logger já colocado no ctx (ex: pelo middleware de
// observabilidade) e usa o global quando não há nenhum.
func requestLogger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
