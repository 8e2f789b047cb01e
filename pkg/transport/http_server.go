package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewHTTPHandler expõe as rotas do Router num servidor HTTP comum, para
// execução local. Cada requisição é convertida num evento do API Gateway.
func NewHTTPHandler(router *Router) http.Handler {
	m := mux.NewRouter()
	for _, rt := range router.Routes() {
		m.HandleFunc(rt.Resource, serveRoute(router, rt)).Methods(rt.Method)
	}
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status":"FAIL","message":"route not found"}`)
	})
	return ObservabilityMiddleware(m)
}

// StartHTTPServer sobe o servidor local (bloqueante).
func StartHTTPServer(port int, router *Router) error {
	addr := fmt.Sprintf(":%d", port)
	log.Info().Msgf("Servidor HTTP ouvindo em %s", addr)
	return http.ListenAndServe(addr, NewHTTPHandler(router))
}

func serveRoute(router *Router, rt Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toProxyRequest(r, rt.Resource)
		if err != nil {
			http.Error(w, `{"status":"FAIL","message":"invalid body"}`, http.StatusBadRequest)
			return
		}

		resp := router.dispatch(r.Context(), rt.Handler, req)

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		for k, values := range resp.MultiValueHeaders {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)
	}
}

func toProxyRequest(r *http.Request, resource string) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	defer r.Body.Close()

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	var query map[string]string
	if values := r.URL.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k, v := range values {
			query[k] = v[0]
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:              resource,
		Path:                  r.URL.Path,
		HTTPMethod:            r.Method,
		Headers:               headers,
		MultiValueHeaders:     r.Header,
		QueryStringParameters: query,
		PathParameters:        mux.Vars(r),
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: CorrelationID(r.Context()),
		},
	}, nil
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", time.Since(rw.startTime).Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware injeta correlation id e logger no contexto e
// loga o resultado de cada requisição.
func ObservabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		logger := log.With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      start,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("request completed")
	})
}
