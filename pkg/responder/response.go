package responder

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

const (
	StatusOK   = "OK"
	StatusFail = "FAIL"
)

// Option altera a resposta antes dela ser devolvida ao API Gateway.
type Option func(*events.APIGatewayProxyResponse)

// WithHeader adiciona um header à resposta.
func WithHeader(name, value string) Option {
	return func(r *events.APIGatewayProxyResponse) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[name] = value
	}
}

// WithJSONContentType marca o corpo como application/json.
func WithJSONContentType() Option {
	return WithHeader("Content-Type", "application/json")
}

// StatusFor devolve "OK" para códigos abaixo de 300 e "FAIL" para os demais.
func StatusFor(statusCode int) string {
	if statusCode < 300 {
		return StatusOK
	}
	return StatusFail
}

// CreateAPIResponse monta o envelope {statusCode, body} do API Gateway.
// O corpo é o JSON de uma cópia de `body` acrescida do campo "status".
// O mapa recebido não é alterado.
func CreateAPIResponse(body map[string]any, statusCode int, opts ...Option) events.APIGatewayProxyResponse {
	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	payload["status"] = StatusFor(statusCode)

	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Int("status_code", statusCode).Msg("response body is not serializable")
		statusCode = http.StatusInternalServerError
		encoded = []byte(`{"status":"` + StatusFail + `"}`)
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(encoded),
	}
	for _, opt := range opts {
		opt(&resp)
	}
	return resp
}

// Error cria uma resposta de falha com a mensagem no campo "message".
func Error(statusCode int, message string, opts ...Option) events.APIGatewayProxyResponse {
	return CreateAPIResponse(map[string]any{"message": message}, statusCode, opts...)
}
