package middleware

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/raywall/fast-lambda-toolkit/pkg/metrics"
	"github.com/raywall/fast-lambda-toolkit/pkg/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Handler é a assinatura genérica de um handler Lambda.
type Handler[TIn, TOut any] func(ctx context.Context, event TIn) (TOut, error)

// Options configura o ObservabilityInit.
type Options struct {
	// HandlerName identifica o handler nos logs e na tag handler_name.
	HandlerName string
	// LogFields são acrescentados a todas as linhas de log da invocação.
	LogFields map[string]string
	Metrics   metrics.Provider
	// Logger base; quando nil usa log.Logger.
	Logger *zerolog.Logger
	// IsFailure decide se a invocação conta como falha; quando nil, apenas
	// um erro retornado conta.
	IsFailure func(out any, err error) bool
}

// APIGatewayFailure trata como falha um erro ou uma resposta do API Gateway
// com status 5xx.
func APIGatewayFailure(out any, err error) bool {
	if err != nil {
		return true
	}
	switch resp := out.(type) {
	case events.APIGatewayProxyResponse:
		return resp.StatusCode >= 500
	case *events.APIGatewayProxyResponse:
		return resp != nil && resp.StatusCode >= 500
	}
	return false
}

func errorOnly(_ any, err error) bool {
	return err != nil
}

type flusher interface {
	Flush() error
}

// ObservabilityInit envolve next com logging estruturado e métricas:
// conta function_succeeded ou function_failed, registra a duração e, em
// caso de erro, loga o evento recebido. O erro de next é devolvido sem
// alteração.
func ObservabilityInit[TIn, TOut any](opts Options, next Handler[TIn, TOut]) Handler[TIn, TOut] {
	provider := opts.Metrics
	if provider == nil {
		provider = &observability.NoopProvider{}
	}
	base := log.Logger
	if opts.Logger != nil {
		base = *opts.Logger
	}
	tags := []string{metrics.Tag("handler_name", opts.HandlerName)}
	isFailure := opts.IsFailure
	if isFailure == nil {
		isFailure = errorOnly
	}

	return func(ctx context.Context, event TIn) (TOut, error) {
		start := time.Now()

		lc := base.With().Str("handler_name", opts.HandlerName)
		for k, v := range opts.LogFields {
			lc = lc.Str(k, v)
		}
		if lctx, ok := lambdacontext.FromContext(ctx); ok {
			lc = lc.Str("request_id", lctx.AwsRequestID).
				Str("function_arn", lctx.InvokedFunctionArn)
		}
		logger := lc.Logger()
		ctx = logger.WithContext(ctx)

		out, err := next(ctx, event)

		if isFailure(out, err) {
			_ = provider.Count(metrics.FunctionFailed, 1, tags)
			ev := logger.Error().Interface("event", event)
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("Function failed")
		} else {
			_ = provider.Count(metrics.FunctionSucceeded, 1, tags)
		}
		_ = provider.Histogram(metrics.FunctionDuration, float64(time.Since(start).Milliseconds()), tags)

		if f, ok := provider.(flusher); ok {
			if ferr := f.Flush(); ferr != nil {
				logger.Warn().Err(ferr).Msg("Metrics flush failed")
			}
		}
		return out, err
	}
}
