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
package dyndb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/fast-lambda-toolkit/envloader"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
	"github.com/rs/zerolog"
)

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// TableConfig é a configuração da tabela.
type TableConfig struct {
	TableName      string `env:"DYNAMODB_TABLE_NAME" validate:"required"`
	ConsistentRead bool   `env:"DYNAMODB_CONSISTENT_READ" envDefault:"true"`
}

// Table opera sobre uma tabela no modelo PK/SK + GSI1.
type Table struct {
	client DynamoDBClient
	cfg    TableConfig
}

// NewTable cria uma Table com leitura consistente.
func NewTable(client DynamoDBClient, tableName string) *Table {
	return &Table{
		client: client,
		cfg:    TableConfig{TableName: tableName, ConsistentRead: true},
	}
}

// NewTableFromConfig cria uma Table a partir de cfg. Sem TableName, a
// configuração é carregada das variáveis de ambiente.
func NewTableFromConfig(client DynamoDBClient, cfg TableConfig) (*Table, error) {
	if cfg.TableName == "" {
		if err := envloader.Load(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("dyndb: invalid table config: %w", err)
	}
	return &Table{client: client, cfg: cfg}, nil
}

// Name devolve o nome da tabela.
func (t *Table) Name() string {
	return t.cfg.TableName
}

// Client devolve o cliente usado pela tabela.
func (t *Table) Client() DynamoDBClient {
	return t.client
}

func (t *Table) key(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

func (t *Table) getItem(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.cfg.TableName),
		Key:            t.key(pk, sk),
		ConsistentRead: aws.Bool(t.cfg.ConsistentRead),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, &ItemNotFoundError{PK: pk, SK: sk}
	}
	return out.Item, nil
}

// GetItem busca o item pela chave composta. Um item inexistente resulta em
// *ItemNotFoundError (errors.Is(err, ErrItemNotFound)).
func (t *Table) GetItem(ctx context.Context, pk, sk string) (map[string]any, error) {
	item, err := t.getItem(ctx, pk, sk)
	if err != nil {
		return nil, err
	}
	return FromDynamoDBToJSON(item), nil
}

// GetItemInto busca o item e decodifica em out (tags `dynamodbav`).
func (t *Table) GetItemInto(ctx context.Context, pk, sk string, out any) error {
	item, err := t.getItem(ctx, pk, sk)
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return nil
}

// PutItem grava o item (upsert).
func (t *Table) PutItem(ctx context.Context, item map[string]any) error {
	return t.put(ctx, item, nil)
}

// CreateItem grava o item somente se a chave ainda não existir.
func (t *Table) CreateItem(ctx context.Context, item map[string]any) error {
	cond := expression.AttributeNotExists(expression.Name(AttrPK))
	return t.put(ctx, item, &cond)
}

func (t *Table) put(ctx context.Context, item map[string]any, cond *expression.ConditionBuilder) error {
	av, err := MarshalItem(item)
	if err != nil {
		return fmt.Errorf("dynamostore: marshal failed: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(t.cfg.TableName),
		Item:      av,
	}
	if cond != nil {
		expr, err := expression.NewBuilder().WithCondition(*cond).Build()
		if err != nil {
			return fmt.Errorf("dynamostore: build condition failed: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := t.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("dynamostore: put %v/%v: %w", item[AttrPK], item[AttrSK], ErrItemAlreadyExists)
		}
		return fmt.Errorf("dynamostore: put failed: %w", err)
	}
	return nil
}

// PutInput grava o item derivado do parser e o devolve.
func (t *Table) PutInput(ctx context.Context, p Parser) (map[string]any, error) {
	item := ToNewPutItem(p)
	if err := t.PutItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateInput é PutInput com a condição de inexistência do CreateItem.
func (t *Table) CreateInput(ctx context.Context, p Parser) (map[string]any, error) {
	item := ToNewPutItem(p)
	if err := t.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateInput aplica ToUpdateItemArgs e devolve o item atualizado (ALL_NEW).
// Se o item não existir, a condição attribute_exists falha e o erro é
// *ItemNotFoundError.
func (t *Table) UpdateInput(ctx context.Context, p Parser) (map[string]any, error) {
	args := ToUpdateItemArgs(p)
	if args.Assignments == 0 {
		return nil, ErrEmptyUpdate
	}

	input, err := args.Input(t.cfg.TableName)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: marshal failed: %w", err)
	}

	out, err := t.client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, &ItemNotFoundError{PK: p.PK(), SK: p.SK()}
		}
		return nil, fmt.Errorf("dynamostore: update failed: %w", err)
	}
	return FromDynamoDBToJSON(out.Attributes), nil
}

// DeleteItem remove o item e devolve os atributos antigos (ALL_OLD).
// Um item inexistente resulta em mapa vazio.
func (t *Table) DeleteItem(ctx context.Context, pk, sk string) (map[string]any, error) {
	out, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(t.cfg.TableName),
		Key:          t.key(pk, sk),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: delete failed: %w", err)
	}
	return FromDynamoDBToJSON(out.Attributes), nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (t *Table) log() zerolog.Logger {
	return logger.ForComponent("dyndb").With().Str("table", t.cfg.TableName).Logger()
}
