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

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// MarshalItem converte um item (map) em AttributeValues. decimal.Decimal é
// gravado como número (N) sem perda de precisão.
func MarshalItem(item map[string]any) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		av, err := MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("dyndb: marshal %s failed: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

// MarshalValue converte um valor em AttributeValue. Valores que não são
// mapas, listas ou decimais passam antes por ToDynamoDBCompatible.
func MarshalValue(v any) (types.AttributeValue, error) {
	switch x := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case decimal.Decimal:
		return &types.AttributeValueMemberN{Value: x.String()}, nil
	case map[string]any:
		m, err := MarshalItem(x)
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	case []any:
		list := make([]types.AttributeValue, 0, len(x))
		for _, item := range x {
			av, err := MarshalValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	}

	// demais tipos passam pela mesma normalização dos inputs
	norm := ToDynamoDBCompatible(v)
	switch norm.(type) {
	case nil, decimal.Decimal, map[string]any, []any:
		return MarshalValue(norm)
	}
	return attributevalue.Marshal(norm)
}

// FromDynamoDBToJSON converte um item do SDK em um mapa Go comum.
// Números viram decimal.Decimal.
func FromDynamoDBToJSON(item map[string]types.AttributeValue) map[string]any {
	result := make(map[string]any, len(item))
	for k, v := range item {
		result[k] = unmarshalAttribute(v)
	}
	return result
}

func unmarshalAttribute(v types.AttributeValue) any {
	switch val := v.(type) {
	case *types.AttributeValueMemberS:
		return val.Value
	case *types.AttributeValueMemberN:
		return parseNumber(val.Value)
	case *types.AttributeValueMemberBOOL:
		return val.Value
	case *types.AttributeValueMemberB:
		return val.Value
	case *types.AttributeValueMemberM:
		return FromDynamoDBToJSON(val.Value)
	case *types.AttributeValueMemberL:
		list := make([]any, len(val.Value))
		for i, item := range val.Value {
			list[i] = unmarshalAttribute(item)
		}
		return list
	case *types.AttributeValueMemberSS:
		return append([]string(nil), val.Value...)
	case *types.AttributeValueMemberNS:
		nums := make([]decimal.Decimal, len(val.Value))
		for i, n := range val.Value {
			nums[i] = parseNumber(n)
		}
		return nums
	case *types.AttributeValueMemberBS:
		return val.Value
	case *types.AttributeValueMemberNULL:
		return nil
	default:
		return nil
	}
}

func parseNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
