package observability

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/fast-lambda-toolkit/pkg/config"
	"github.com/raywall/fast-lambda-toolkit/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsd.ClientInterface
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Flush descarrega o buffer do statsd. Deve ser chamado ao fim da invocação.
func (d *DatadogProvider) Flush() error {
	return d.client.Flush()
}

// Close descarrega o buffer e encerra o cliente.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// MemoryProvider guarda as métricas em memória. Usado em testes e no
// modo local para inspecionar o que seria enviado ao agente.
type MemoryProvider struct {
	mu     sync.Mutex
	Points []Point
}

// Point é uma métrica registrada pelo MemoryProvider.
type Point struct {
	Kind  string
	Name  string
	Value float64
	Tags  []string
}

func (m *MemoryProvider) record(kind, name string, value float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Points = append(m.Points, Point{Kind: kind, Name: name, Value: value, Tags: append([]string(nil), tags...)})
	return nil
}

func (m *MemoryProvider) Count(name string, value float64, tags []string) error {
	return m.record("count", name, value, tags)
}

func (m *MemoryProvider) Gauge(name string, value float64, tags []string) error {
	return m.record("gauge", name, value, tags)
}

func (m *MemoryProvider) Histogram(name string, value float64, tags []string) error {
	return m.record("histogram", name, value, tags)
}

// Total soma os valores registrados para o nome informado.
func (m *MemoryProvider) Total(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, p := range m.Points {
		if p.Name == name {
			total += p.Value
		}
	}
	return total
}

// SetupMetrics inicializa o provedor correto baseado na configuração.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return &DatadogProvider{client: client}, nil
}
