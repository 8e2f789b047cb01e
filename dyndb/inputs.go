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
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Field é um campo de um input: nome em snake_case e valor atual.
// Um valor nil (inclusive ponteiro nulo) significa "não informado".
type Field struct {
	Name  string
	Value any
}

// Input é um registro de entrada da aplicação. Fields devolve os campos na
// ordem de declaração; essa ordem define a ordem das atribuições do update.
type Input interface {
	Fields() []Field
}

// Parser deriva as chaves de um Input. Os métodos GSI1 informam também se
// a chave precisa ser regravada num update.
type Parser interface {
	Input() Input
	PK() string
	SK() string
	PKGSI1() (bool, string)
	SKGSI1() (bool, string)
}

// InputToGraphQL converte o input num mapa camelCase com valores
// compatíveis, no formato esperado por um resolver GraphQL.
func InputToGraphQL(in Input) map[string]any {
	item := make(map[string]any)
	for _, f := range in.Fields() {
		item[f.Name] = ToDynamoDBCompatible(f.Value)
	}
	return MapToCamelCase(item)
}

// ToNewPutItem monta o item completo para um PutItem, incluindo PK, SK,
// PK_GSI1 e SK_GSI1 derivados pelo parser.
func ToNewPutItem(p Parser) map[string]any {
	item := InputToGraphQL(p.Input())
	item[AttrPK] = p.PK()
	item[AttrSK] = p.SK()
	_, pkGSI1 := p.PKGSI1()
	item[AttrPKGSI1] = pkGSI1
	_, skGSI1 := p.SKGSI1()
	item[AttrSKGSI1] = skGSI1
	return item
}

// UpdateItemArgs descreve um UpdateItem condicional.
type UpdateItemArgs struct {
	Key                       map[string]any
	UpdateExpression          string
	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]any
	ConditionExpression       string
	ReturnValues              types.ReturnValue
	// Assignments é o número de atribuições no SET.
	Assignments int
}

// ToUpdateItemArgs monta os argumentos de UpdateItem a partir do parser.
//
// Regras:
//   - campos nil são ignorados;
//   - o campo "id" nunca é atribuído, mas sempre registra "#id" -> "id";
//   - NullString, NullDate e NullDateTime gravam null;
//   - PK_GSI1/SK_GSI1 entram somente quando o parser indica atualização.
func ToUpdateItemArgs(p Parser) UpdateItemArgs {
	assignments := make([]string, 0)
	names := make(map[string]string)
	values := make(map[string]any)

	for _, f := range p.Input().Fields() {
		if isNil(f.Value) {
			continue
		}
		if f.Name == IdentityField {
			names["#"+IdentityField] = IdentityField
			continue
		}

		var val any
		if !isNullValue(f.Value) {
			val = ToDynamoDBCompatible(f.Value)
		}

		assignments = append(assignments, fmt.Sprintf("#%s = :%s", f.Name, f.Name))
		names["#"+f.Name] = ToCamelCase(f.Name)
		values[":"+f.Name] = val
	}

	if required, key := p.PKGSI1(); required {
		assignments = append(assignments, "#PK_GSI1 = :PK_GSI1")
		names["#"+AttrPKGSI1] = AttrPKGSI1
		values[":"+AttrPKGSI1] = key
	}
	if required, key := p.SKGSI1(); required {
		assignments = append(assignments, "#SK_GSI1 = :SK_GSI1")
		names["#"+AttrSKGSI1] = AttrSKGSI1
		values[":"+AttrSKGSI1] = key
	}

	return UpdateItemArgs{
		Key:                       Key(p.PK(), p.SK()),
		UpdateExpression:          "SET " + strings.Join(assignments, ", "),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       "attribute_exists(#id)",
		ReturnValues:              types.ReturnValueAllNew,
		Assignments:               len(assignments),
	}
}

// Input converte os argumentos para a requisição do SDK.
func (a UpdateItemArgs) Input(tableName string) (*dynamodb.UpdateItemInput, error) {
	key, err := MarshalItem(a.Key)
	if err != nil {
		return nil, err
	}
	values, err := MarshalItem(a.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		values = nil
	}

	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tableName),
		Key:                       key,
		UpdateExpression:          aws.String(a.UpdateExpression),
		ExpressionAttributeNames:  a.ExpressionAttributeNames,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String(a.ConditionExpression),
		ReturnValues:              a.ReturnValues,
	}, nil
}

func isNullValue(v any) bool {
	switch x := v.(type) {
	case string:
		return x == NullString
	case *string:
		return *x == NullString
	case Date:
		return x == NullDate
	case *Date:
		return *x == NullDate
	case time.Time:
		return x.Equal(NullDateTime)
	case *time.Time:
		return x.Equal(NullDateTime)
	}
	return false
}
