package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/raywall/fast-lambda-toolkit/awsclients"
	"github.com/raywall/fast-lambda-toolkit/invoke"
	"github.com/raywall/fast-lambda-toolkit/messaging"
	"github.com/raywall/fast-lambda-toolkit/notification"
	"github.com/raywall/fast-lambda-toolkit/pkg/config"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// Dependencies permite substituir os clientes AWS nos testes. Campos nil
// são preenchidos a partir de awsclients.Load.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer

	Lambda        invoke.LambdaInvoker
	StepFunctions invoke.WorkflowStarter
	SQS           messaging.SQSBatchSender
	SNS           messaging.SNSPublisher

	LoadClients func(ctx context.Context) (*awsclients.Registry, error)
}

// CLI define a interface de linha de comando interpretada pelo Kong.
type CLI struct {
	Region   string      `help:"AWS region (defaults to the SDK resolution chain)" env:"AWS_REGION"`
	LogLevel string      `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Invoke   InvokeCmd   `cmd:"" help:"Invoke a Lambda function"`
	Workflow WorkflowCmd `cmd:"" help:"Run an Express state machine synchronously"`
	Notify   NotifyCmd   `cmd:"" help:"Publish a notification event"`
	SQS      SQSCmd      `cmd:"" name:"sqs" help:"SQS helpers"`
}

type (
	InvokeCmd struct {
		Function string `arg:"" help:"Function name or ARN"`
		Payload  string `short:"p" default:"{}" help:"JSON payload"`
		Async    bool   `help:"Use the Event invocation type"`
	}

	WorkflowCmd struct {
		StateMachineArn string `arg:"" name:"state-machine-arn" help:"State machine ARN"`
		Input           string `short:"i" default:"{}" help:"JSON input"`
	}

	NotifyCmd struct {
		Admin    NotifyAdminCmd    `cmd:"" help:"Send an admin e-mail notification"`
		Customer NotifyCustomerCmd `cmd:"" help:"Send a customer e-mail notification"`
	}

	NotifyAdminCmd struct {
		Topic    string `required:"" env:"NOTIFICATION_TOPIC_ARN" help:"Notification topic ARN"`
		Template string `required:"" help:"Template name"`
		Subject  string `required:"" help:"E-mail subject"`
		Data     string `default:"{}" help:"JSON template context"`
	}

	NotifyCustomerCmd struct {
		Topic      string   `required:"" env:"NOTIFICATION_TOPIC_ARN" help:"Notification topic ARN"`
		Template   string   `required:"" help:"Template name"`
		Subject    string   `required:"" help:"E-mail subject"`
		Recipients []string `required:"" sep:"," help:"Recipient e-mails (comma-separated)"`
		Data       string   `default:"{}" help:"JSON template context"`
	}

	SQSCmd struct {
		Send SQSSendCmd `cmd:"" help:"Send messages in batches"`
	}

	SQSSendCmd struct {
		QueueURL  string   `arg:"" name:"queue-url" help:"Queue URL"`
		Bodies    []string `arg:"" name:"body" help:"Message bodies"`
		BatchSize int      `name:"batch-size" default:"10" help:"Entries per SendMessageBatch call"`
	}
)

// Run interpreta os argumentos e executa o comando. Retorna o exit code.
func Run(args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("toolkit"),
		kong.Description("Operational helpers for Lambda services."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		fmt.Fprintln(deps.ErrOut, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(deps.ErrOut, err)
		return 1
	}

	logger.Configure(config.LoggingConf{Enabled: true, Level: cli.LogLevel, Format: "console"})

	ctx := context.Background()
	if err := dispatch(ctx, commandPath(kctx.Command()), &cli, &deps); err != nil {
		fmt.Fprintf(deps.ErrOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, command string, cli *CLI, deps *Dependencies) error {
	switch command {
	case "invoke":
		return runInvoke(ctx, cli, deps)
	case "workflow":
		return runWorkflow(ctx, cli, deps)
	case "notify admin":
		return runNotifyAdmin(ctx, cli, deps)
	case "notify customer":
		return runNotifyCustomer(ctx, cli, deps)
	case "sqs send":
		return runSQSSend(ctx, cli, deps)
	}
	return fmt.Errorf("unknown command %q", command)
}

// commandPath remove os argumentos posicionais ("sqs send <queue-url> <body>" -> "sqs send").
func commandPath(command string) string {
	var parts []string
	for _, p := range strings.Fields(command) {
		if !strings.HasPrefix(p, "<") {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func runInvoke(ctx context.Context, cli *CLI, deps *Dependencies) error {
	payload, err := parseJSON("payload", cli.Invoke.Payload)
	if err != nil {
		return err
	}
	if err := resolveClients(ctx, cli, deps); err != nil {
		return err
	}

	if cli.Invoke.Async {
		if err := invoke.InvokeAsync(ctx, deps.Lambda, cli.Invoke.Function, payload); err != nil {
			return err
		}
		fmt.Fprintf(deps.Out, "Invoked %s (async)\n", cli.Invoke.Function)
		return nil
	}

	var out any
	if err := invoke.InvokeSync(ctx, deps.Lambda, cli.Invoke.Function, payload, &out); err != nil {
		return err
	}
	return printJSON(deps.Out, out)
}

func runWorkflow(ctx context.Context, cli *CLI, deps *Dependencies) error {
	input, err := parseJSON("input", cli.Workflow.Input)
	if err != nil {
		return err
	}
	if err := resolveClients(ctx, cli, deps); err != nil {
		return err
	}

	var out any
	if err := invoke.StartSyncWorkflow(ctx, deps.StepFunctions, input, cli.Workflow.StateMachineArn, &out); err != nil {
		return err
	}
	return printJSON(deps.Out, out)
}

func runNotifyAdmin(ctx context.Context, cli *CLI, deps *Dependencies) error {
	cmd := cli.Notify.Admin
	data, err := parseObject(cmd.Data)
	if err != nil {
		return err
	}
	if err := resolveClients(ctx, cli, deps); err != nil {
		return err
	}

	client := notification.NewClient(deps.SNS, cmd.Topic)
	if err := client.SendAdminNotification(ctx, cmd.Template, cmd.Subject, data); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Notification %s published\n", cmd.Template)
	return nil
}

func runNotifyCustomer(ctx context.Context, cli *CLI, deps *Dependencies) error {
	cmd := cli.Notify.Customer
	data, err := parseObject(cmd.Data)
	if err != nil {
		return err
	}
	if err := resolveClients(ctx, cli, deps); err != nil {
		return err
	}

	client := notification.NewClient(deps.SNS, cmd.Topic)
	if err := client.SendCustomerNotification(ctx, cmd.Template, cmd.Subject, cmd.Recipients, data, nil); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Notification %s published to %s\n", cmd.Template, strings.Join(cmd.Recipients, ", "))
	return nil
}

func runSQSSend(ctx context.Context, cli *CLI, deps *Dependencies) error {
	cmd := cli.SQS.Send
	if err := resolveClients(ctx, cli, deps); err != nil {
		return err
	}

	ids, err := messaging.SendToSQS(ctx, deps.SQS, cmd.QueueURL, messaging.EntriesFromBodies(cmd.Bodies...), cmd.BatchSize)
	fmt.Fprintf(deps.Out, "Sent %d of %d messages\n", len(ids), len(cmd.Bodies))
	return err
}

// resolveClients carrega o registro apenas quando algum cliente não foi injetado.
func resolveClients(ctx context.Context, cli *CLI, deps *Dependencies) error {
	if deps.Lambda != nil && deps.StepFunctions != nil && deps.SQS != nil && deps.SNS != nil {
		return nil
	}

	load := deps.LoadClients
	if load == nil {
		load = func(ctx context.Context) (*awsclients.Registry, error) {
			return awsclients.Load(ctx, awsclients.DefaultConfigOptions(cli.Region)...)
		}
	}
	clients, err := load(ctx)
	if err != nil {
		return err
	}

	if deps.Lambda == nil {
		deps.Lambda = clients.Lambda()
	}
	if deps.StepFunctions == nil {
		deps.StepFunctions = clients.StepFunctions()
	}
	if deps.SQS == nil {
		deps.SQS = clients.SQS()
	}
	if deps.SNS == nil {
		deps.SNS = clients.SNS()
	}
	return nil
}

func parseJSON(name, raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid %s JSON: %w", name, err)
	}
	return v, nil
}

func parseObject(raw string) (map[string]any, error) {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("invalid data JSON: %w", err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
