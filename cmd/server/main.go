package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/fast-lambda-toolkit/awsclients"
	"github.com/raywall/fast-lambda-toolkit/dyndb"
	"github.com/raywall/fast-lambda-toolkit/examples/items/handlers"
	"github.com/raywall/fast-lambda-toolkit/examples/items/repository"
	"github.com/raywall/fast-lambda-toolkit/notification"
	"github.com/raywall/fast-lambda-toolkit/pkg/config"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
	"github.com/raywall/fast-lambda-toolkit/pkg/middleware"
	"github.com/raywall/fast-lambda-toolkit/pkg/observability"
	"github.com/raywall/fast-lambda-toolkit/pkg/responder"
	"github.com/raywall/fast-lambda-toolkit/pkg/transport"
	"github.com/raywall/fast-lambda-toolkit/settings"
	"github.com/rs/zerolog/log"
)

// AppSettings reúne as variáveis de ambiente e os segredos do serviço de itens.
type AppSettings struct {
	Table             dyndb.TableConfig
	NotificationTopic string `env:"NOTIFICATION_TOPIC_ARN" validate:"required"`
	SecretsParameter  string `env:"SECRETS_PARAMETER_NAME"`
	ReloadQueueURL    string `env:"SETTINGS_RELOAD_QUEUE_URL"`

	AdminAPIKey string `secret:"ADMIN_API_KEY"`
}

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
	awsLoader     = awsclients.Load
	reloaderStart = func(ctx context.Context, r *transport.SQSReloader) { go r.Start(ctx) }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Service bootstrap failed")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.Logging)
	boot := logger.ForComponent("bootstrap")

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	clients, err := awsLoader(ctx)
	if err != nil {
		return err
	}

	// o nome do parâmetro só é conhecido depois da carga do ambiente
	source := &settings.ParameterStoreSource{Client: clients.SSM()}
	app := &AppSettings{}
	st, err := settings.New(app, source)
	if err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}
	source.Name = app.SecretsParameter
	secretsEnabled := source.Name != ""
	if secretsEnabled {
		if err := st.LoadSecretSettings(ctx); err != nil {
			return err
		}
	}

	table, err := dyndb.NewTableFromConfig(clients.DynamoDB(), app.Table)
	if err != nil {
		return err
	}

	router := transport.NewRouter(cfg.Service.Timeout)
	handlers.New(
		repository.NewItemRepository(table),
		notification.NewClient(clients.SNS(), app.NotificationTopic),
	).Register(router)

	boot.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("runtime", cfg.Service.Runtime).
		Str("table", table.Name()).
		Int("routes", len(router.Routes())).
		Msg("Service initialized")

	switch cfg.Service.Runtime {
	case "local":
		if app.ReloadQueueURL != "" && secretsEnabled {
			reloaderStart(ctx, transport.NewSQSReloader(clients.SQS(), app.ReloadQueueURL, st))
		}
		return serverStarter(cfg.Service.Port, router)
	case "lambda":
		handle := transport.NewLambdaHandler(router).Handle
		if secretsEnabled {
			handle = withSecrets(st, handle)
		}
		lambdaStarter(middleware.ObservabilityInit(middleware.Options{
			HandlerName: cfg.Service.Name,
			LogFields:   map[string]string{"version": cfg.Service.Version},
			Metrics:     provider,
			IsFailure:   middleware.APIGatewayFailure,
		}, middleware.Handler[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse](handle)))
		return nil
	default:
		return fmt.Errorf("unknown runtime: %s", cfg.Service.Runtime)
	}
}

// withSecrets renova os segredos expirados antes de cada invocação.
func withSecrets(st *settings.Settings[AppSettings], next transport.APIHandler) transport.APIHandler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if err := st.LoadSecretSettings(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Secret settings reload failed")
			return responder.Error(http.StatusInternalServerError, "internal server error"), nil
		}
		return next(ctx, req)
	}
}
