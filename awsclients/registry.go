// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package awsclients

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// Nomes dos serviços usados como chave do cache.
const (
	ServiceDynamoDB       = "dynamodb"
	ServiceSQS            = "sqs"
	ServiceSNS            = "sns"
	ServiceLambda         = "lambda"
	ServiceStepFunctions  = "stepfunctions"
	ServiceSSM            = "ssm"
	ServiceSecretsManager = "secretsmanager"
	ServiceS3             = "s3"
	ServiceKMS            = "kms"
)

// MaxAttempts é o número máximo de tentativas do retryer padrão do SDK.
const MaxAttempts = 10

// DefaultConfigOptions retorna as opções aplicadas por Load: modo de retry
// "standard" com MaxAttempts tentativas e, se informada, a região.
func DefaultConfigOptions(region string) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithRetryMaxAttempts(MaxAttempts),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	return opts
}

// Registry guarda os clientes AWS já criados, indexados pelo nome do serviço.
type Registry struct {
	mu      sync.Mutex
	cfg     aws.Config
	clients map[string]any
}

// New cria um Registry a partir de uma aws.Config já carregada.
func New(cfg aws.Config) *Registry {
	return &Registry{
		cfg:     cfg,
		clients: make(map[string]any),
	}
}

// Load carrega a configuração padrão da AWS (env vars, profile, IAM role)
// com DefaultConfigOptions e cria o Registry.
func Load(ctx context.Context, optFns ...func(*config.LoadOptions) error) (*Registry, error) {
	opts := append(DefaultConfigOptions(""), optFns...)
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("awsclients: load config failed: %w", err)
	}
	return New(cfg), nil
}

// Config devolve a aws.Config usada na criação dos clientes.
func (r *Registry) Config() aws.Config {
	return r.cfg
}

// Get devolve o cliente registrado para o serviço, se existir.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[name]
	return c, ok
}

// Set registra (ou substitui) o cliente de um serviço.
func (r *Registry) Set(name string, client any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
}

// Client devolve o cliente em cache para `name` ou o cria com `build`.
// Um valor em cache de outro tipo é substituído.
func Client[T any](r *Registry, name string, build func(aws.Config) T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.clients[name]; ok {
		if c, ok := cached.(T); ok {
			return c
		}
	}

	log := logger.ForComponent("awsclients")
	log.Debug().Str("service", name).Msg("Creating client")

	c := build(r.cfg)
	r.clients[name] = c
	return c
}

func (r *Registry) DynamoDB() *dynamodb.Client {
	return Client(r, ServiceDynamoDB, func(c aws.Config) *dynamodb.Client { return dynamodb.NewFromConfig(c) })
}

func (r *Registry) SQS() *sqs.Client {
	return Client(r, ServiceSQS, func(c aws.Config) *sqs.Client { return sqs.NewFromConfig(c) })
}

func (r *Registry) SNS() *sns.Client {
	return Client(r, ServiceSNS, func(c aws.Config) *sns.Client { return sns.NewFromConfig(c) })
}

func (r *Registry) Lambda() *lambda.Client {
	return Client(r, ServiceLambda, func(c aws.Config) *lambda.Client { return lambda.NewFromConfig(c) })
}

func (r *Registry) StepFunctions() *sfn.Client {
	return Client(r, ServiceStepFunctions, func(c aws.Config) *sfn.Client { return sfn.NewFromConfig(c) })
}

func (r *Registry) SSM() *ssm.Client {
	return Client(r, ServiceSSM, func(c aws.Config) *ssm.Client { return ssm.NewFromConfig(c) })
}

func (r *Registry) SecretsManager() *secretsmanager.Client {
	return Client(r, ServiceSecretsManager, func(c aws.Config) *secretsmanager.Client { return secretsmanager.NewFromConfig(c) })
}

func (r *Registry) S3() *s3.Client {
	return Client(r, ServiceS3, func(c aws.Config) *s3.Client { return s3.NewFromConfig(c) })
}

func (r *Registry) KMS() *kms.Client {
	return Client(r, ServiceKMS, func(c aws.Config) *kms.Client { return kms.NewFromConfig(c) })
}
