package config

import "time"

// RuntimeConf representa a configuração de bootstrap de uma função,
// carregada de variáveis de ambiente pelo envloader.
type RuntimeConf struct {
	Service ServiceDetails
	Logging LoggingConf
	Metrics MetricsConf
}

// ServiceDetails contém os metadados e configurações de runtime do serviço.
type ServiceDetails struct {
	Name    string        `env:"SERVICE_NAME" envDefault:"lambda-service" validate:"required,hostname_rfc1123"`
	Version string        `env:"SERVICE_VERSION" envDefault:"0.0.1"`
	Runtime string        `env:"SERVICE_RUNTIME" envDefault:"lambda" validate:"required,oneof=local lambda"`
	Port    int           `env:"SERVICE_PORT" envDefault:"8080" validate:"required_if=Runtime local"`
	Timeout time.Duration `env:"SERVICE_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

type LoggingConf struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool   `env:"DD_ENABLED" envDefault:"false"`
	Addr      string `env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `env:"DD_NAMESPACE"`
}
