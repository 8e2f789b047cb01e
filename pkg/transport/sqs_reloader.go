package transport

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
	"github.com/rs/zerolog"
)

// SQSClient define a interface necessária para o reloader (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Reloader é implementado por settings.Settings: força a recarga dos segredos.
type Reloader interface {
	Reload(ctx context.Context) error
}

// SQSReloader escuta uma fila de eventos de rotação de segredos e recarrega
// as configurações a cada mensagem recebida. Usado no runtime local, onde o
// processo vive mais que o cache de segredos.
type SQSReloader struct {
	client     SQSClient
	queueURL   string
	reloader   Reloader
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewSQSReloader cria uma nova instância do reloader
func NewSQSReloader(client SQSClient, queueURL string, reloader Reloader) *SQSReloader {
	return &SQSReloader{
		client:     client,
		queueURL:   queueURL,
		reloader:   reloader,
		retryDelay: 5 * time.Second,
		logger:     logger.ForComponent("sqs_reloader"),
	}
}

// Start inicia o monitoramento (bloqueante) até o ctx ser cancelado.
func (s *SQSReloader) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("Reload queue not configured, secret hot reload disabled")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("Watching reload queue")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("Stopping reload queue watcher")
			return
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("Receive from reload queue failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			if err := s.reloader.Reload(ctx); err != nil {
				// a mensagem fica na fila e volta após o visibility timeout
				s.logger.Error().Err(err).Msg("Settings reload failed")
				continue
			}
			s.logger.Info().Msg("Settings reloaded")

			if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			}); err != nil {
				s.logger.Warn().Err(err).Msg("Delete from reload queue failed")
			}
		}
	}
}
