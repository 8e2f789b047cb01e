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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryBuilder é o builder fluente de consultas e scans.
type QueryBuilder struct {
	table       *Table
	keyCond     *expression.KeyConditionBuilder
	filterCond  *expression.ConditionBuilder
	indexName   *string
	limit       *int32
	lastKey     map[string]types.AttributeValue
	scanForward *bool
	isScan      bool
	err         error
}

// Query inicia uma Query
func (t *Table) Query() *QueryBuilder {
	return &QueryBuilder{
		table:       t,
		scanForward: aws.Bool(true),
	}
}

// Scan inicia um Scan
func (t *Table) Scan() *QueryBuilder {
	return &QueryBuilder{
		table:  t,
		isScan: true,
	}
}

// QueryGSI1 consulta o índice GSI1 pela partição e, opcionalmente, pelo
// prefixo da chave de ordenação.
func (t *Table) QueryGSI1(pk, skPrefix string) *QueryBuilder {
	qb := t.Query().Index(GSI1IndexName).KeyEqual(AttrPKGSI1, pk)
	if skPrefix != "" {
		qb = qb.KeyBeginsWith(AttrSKGSI1, skPrefix)
	}
	return qb
}

func (qb *QueryBuilder) Index(name string) *QueryBuilder {
	qb.indexName = aws.String(name)
	return qb
}

func (qb *QueryBuilder) KeyEqual(key string, value any) *QueryBuilder {
	return qb.andKey(expression.KeyEqual(expression.Key(key), exprValue(value)))
}

func (qb *QueryBuilder) KeyBeginsWith(key, prefix string) *QueryBuilder {
	return qb.andKey(expression.Key(key).BeginsWith(prefix))
}

func (qb *QueryBuilder) andKey(cond expression.KeyConditionBuilder) *QueryBuilder {
	if qb.keyCond == nil {
		qb.keyCond = &cond
	} else {
		tmp := qb.keyCond.And(cond)
		qb.keyCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder) FilterEqual(field string, value any) *QueryBuilder {
	return qb.Filter(expression.Equal(expression.Name(field), exprValue(value)))
}

func (qb *QueryBuilder) FilterContains(field, substr string) *QueryBuilder {
	return qb.Filter(expression.Contains(expression.Name(field), substr))
}

// exprValue aplica a mesma conversão dos itens gravados (ex: enums e decimais).
func exprValue(v any) expression.ValueBuilder {
	av, err := MarshalValue(v)
	if err != nil {
		return expression.Value(v)
	}
	return expression.Value(av)
}

// Filter acrescenta (AND) uma condição arbitrária ao filtro.
func (qb *QueryBuilder) Filter(cond expression.ConditionBuilder) *QueryBuilder {
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder) Limit(n int32) *QueryBuilder {
	qb.limit = &n
	return qb
}

func (qb *QueryBuilder) ScanForward(forward bool) *QueryBuilder {
	qb.scanForward = &forward
	return qb
}

// LastKey retoma a consulta a partir de um token devolvido por Exec.
// Um token inválido faz o Exec falhar.
func (qb *QueryBuilder) LastKey(token string) *QueryBuilder {
	if token == "" {
		return qb
	}
	key, err := DecodePageToken(token)
	if err != nil {
		qb.err = err
		return qb
	}
	qb.lastKey = key
	return qb
}

func (qb *QueryBuilder) build() (expression.Expression, error) {
	if qb.err != nil {
		return expression.Expression{}, qb.err
	}

	builder := expression.NewBuilder()
	hasExpr := false
	if qb.keyCond != nil && !qb.isScan {
		builder = builder.WithKeyCondition(*qb.keyCond)
		hasExpr = true
	}
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
		hasExpr = true
	}
	if !hasExpr {
		return expression.Expression{}, nil
	}
	return builder.Build()
}

// ScanInput devolve a requisição de Scan equivalente ao builder.
func (qb *QueryBuilder) ScanInput() (*dynamodb.ScanInput, error) {
	expr, err := qb.build()
	if err != nil {
		return nil, err
	}
	return &dynamodb.ScanInput{
		TableName:                 aws.String(qb.table.cfg.TableName),
		IndexName:                 qb.indexName,
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ExclusiveStartKey:         qb.lastKey,
	}, nil
}

// QueryInput devolve a requisição de Query equivalente ao builder.
func (qb *QueryBuilder) QueryInput() (*dynamodb.QueryInput, error) {
	if qb.keyCond == nil {
		return nil, fmt.Errorf("dyndb: query requires a key condition")
	}
	expr, err := qb.build()
	if err != nil {
		return nil, err
	}
	return &dynamodb.QueryInput{
		TableName:                 aws.String(qb.table.cfg.TableName),
		IndexName:                 qb.indexName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ScanIndexForward:          qb.scanForward,
		ExclusiveStartKey:         qb.lastKey,
		ConsistentRead:            consistentRead(qb),
	}, nil
}

// GSIs não aceitam leitura consistente.
func consistentRead(qb *QueryBuilder) *bool {
	if qb.indexName != nil {
		return nil
	}
	return aws.Bool(qb.table.cfg.ConsistentRead)
}

// Exec executa uma página da consulta e devolve os itens e o token da
// próxima página ("" quando não há mais páginas).
func (qb *QueryBuilder) Exec(ctx context.Context) ([]map[string]any, string, error) {
	var (
		items   []map[string]types.AttributeValue
		lastKey map[string]types.AttributeValue
	)

	if qb.isScan {
		input, err := qb.ScanInput()
		if err != nil {
			return nil, "", err
		}
		out, err := qb.table.client.Scan(ctx, input)
		if err != nil {
			return nil, "", fmt.Errorf("dynamostore: scan failed: %w", err)
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	} else {
		input, err := qb.QueryInput()
		if err != nil {
			return nil, "", err
		}
		out, err := qb.table.client.Query(ctx, input)
		if err != nil {
			return nil, "", fmt.Errorf("dynamostore: query failed: %w", err)
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	}

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		result = append(result, FromDynamoDBToJSON(item))
	}

	token, err := EncodePageToken(lastKey)
	if err != nil {
		return nil, "", err
	}
	return result, token, nil
}

// One executa a consulta e exige exatamente um item.
func (qb *QueryBuilder) One(ctx context.Context) (map[string]any, error) {
	var found []map[string]any
	err := qb.All(ctx, func(item map[string]any) error {
		found = append(found, item)
		if len(found) > 1 {
			return ErrMultipleItemsFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrItemNotFound
	}
	return found[0], nil
}

// All percorre todas as páginas chamando fn para cada item.
func (qb *QueryBuilder) All(ctx context.Context, fn func(item map[string]any) error) error {
	if qb.isScan {
		input, err := qb.ScanInput()
		if err != nil {
			return err
		}
		return PaginatedResults(ctx, qb.table.client, OperationScan, input, fn)
	}
	input, err := qb.QueryInput()
	if err != nil {
		return err
	}
	return PaginatedResults(ctx, qb.table.client, OperationQuery, input, fn)
}

// EncodePageToken serializa o LastEvaluatedKey em base64 (JSON).
func EncodePageToken(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}
	// atributos N seguem como número literal para não perder precisão
	plain := make(map[string]any, len(lastKey))
	for name, av := range lastKey {
		if n, ok := av.(*types.AttributeValueMemberN); ok {
			plain[name] = json.Number(n.Value)
			continue
		}
		var v any
		if err := attributevalue.Unmarshal(av, &v); err != nil {
			return "", fmt.Errorf("dyndb: encode page token failed: %w", err)
		}
		plain[name] = v
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("dyndb: encode page token failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// DecodePageToken faz o caminho inverso de EncodePageToken.
func DecodePageToken(token string) (map[string]types.AttributeValue, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("dyndb: invalid page token: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var plain map[string]any
	if err := dec.Decode(&plain); err != nil {
		return nil, fmt.Errorf("dyndb: invalid page token: %w", err)
	}
	key := make(map[string]types.AttributeValue, len(plain))
	for name, v := range plain {
		if n, ok := v.(json.Number); ok {
			key[name] = &types.AttributeValueMemberN{Value: n.String()}
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("dyndb: invalid page token: %w", err)
		}
		key[name] = av
	}
	return key, nil
}
