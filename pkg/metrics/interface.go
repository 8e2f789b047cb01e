package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar o handler.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo middleware de observabilidade.
const (
	FunctionSucceeded = "function_succeeded"
	FunctionFailed    = "function_failed"
	FunctionDuration  = "function_duration_ms"
)

// Tag formata uma tag no padrão "chave:valor" usado pelo statsd.
func Tag(key, value string) string {
	return key + ":" + value
}
