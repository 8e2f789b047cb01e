package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/fast-lambda-toolkit/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure inicializa o logger global baseando-se na configuração de runtime.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return configure(cfg, os.Stdout)
}

func configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para o CloudWatch, console "bonito" para execução local
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	return logger
}

// ForComponent retorna um logger filho do logger global com o campo
// "component" preenchido. Deve ser chamado no momento do uso, e não na
// inicialização do pacote, para herdar a configuração feita em Configure.
func ForComponent(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
