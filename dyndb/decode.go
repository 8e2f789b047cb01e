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
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind é o tipo semântico de um campo de input.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindEnum
	KindDate
	KindDateTime
	KindRecord
	KindList
)

// FieldSpec descreve um campo para a decodificação de payloads.
type FieldSpec struct {
	// Name em snake_case, igual ao usado em Fields().
	Name string
	Kind Kind
	// Default é usado quando o campo não vem no payload (nil = não definir).
	Default any
	// ParseEnum converte o nome do enum no valor tipado (KindEnum).
	ParseEnum func(name string) (Enum, error)
	// Decode converte valores compostos (KindRecord, KindList).
	Decode func(raw any) (any, error)
}

// Decodable é um input que pode ser preenchido a partir de um payload.
type Decodable interface {
	Input
	Schema() []FieldSpec
	Set(name string, value any) error
}

var validate = validator.New()

// PayloadToInput preenche target a partir de um payload snake_case.
// Valores em overrides têm precedência sobre o payload.
func PayloadToInput(payload map[string]any, target Decodable, overrides map[string]any) error {
	return payloadToInput(payload, false, target, overrides)
}

// GraphQLPayloadToInput preenche target a partir de um payload camelCase
// (argumentos de um resolver GraphQL).
func GraphQLPayloadToInput(payload map[string]any, target Decodable, overrides map[string]any) error {
	return payloadToInput(payload, true, target, overrides)
}

func payloadToInput(payload map[string]any, camel bool, target Decodable, overrides map[string]any) error {
	for _, spec := range target.Schema() {
		if override, ok := overrides[spec.Name]; ok {
			typed, err := GraphQLValueToTyped(override, spec)
			if err != nil {
				return fmt.Errorf("dyndb: field %s: %w", spec.Name, err)
			}
			if err := target.Set(spec.Name, typed); err != nil {
				return err
			}
			continue
		}

		key := spec.Name
		if camel {
			key = ToCamelCase(spec.Name)
		}

		raw := payload[key]
		if raw == nil {
			if spec.Default == nil {
				continue
			}
			if err := target.Set(spec.Name, spec.Default); err != nil {
				return err
			}
			continue
		}

		typed, err := GraphQLValueToTyped(raw, spec)
		if err != nil {
			return fmt.Errorf("dyndb: field %s: %w", spec.Name, err)
		}
		if err := target.Set(spec.Name, typed); err != nil {
			return err
		}
	}

	if rv := reflect.ValueOf(target); rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
		if err := validate.Struct(target); err != nil {
			return fmt.Errorf("dyndb: invalid input: %w", err)
		}
	}
	return nil
}

// GraphQLValueToTyped converte um valor "solto" (JSON) para o tipo Go do
// campo. Valores que já estão no tipo final são devolvidos sem alteração.
func GraphQLValueToTyped(val any, spec FieldSpec) (any, error) {
	if val == nil {
		return nil, nil
	}

	switch spec.Kind {
	case KindString:
		if s, ok := val.(string); ok {
			return s, nil
		}
		return fmt.Sprint(val), nil

	case KindInt:
		return toInt(val)

	case KindFloat:
		return toFloat(val)

	case KindDecimal:
		return toDecimal(val)

	case KindBool:
		switch x := val.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(x)
		}

	case KindEnum:
		if e, ok := val.(Enum); ok {
			return e, nil
		}
		if s, ok := val.(string); ok && spec.ParseEnum != nil {
			return spec.ParseEnum(s)
		}

	case KindDate:
		switch x := val.(type) {
		case Date:
			return x, nil
		case time.Time:
			return DateOf(x), nil
		case string:
			return ParseDate(x)
		}

	case KindDateTime:
		switch x := val.(type) {
		case time.Time:
			return x, nil
		case string:
			return ParseDateTime(x)
		}

	case KindRecord, KindList:
		if spec.Decode != nil {
			return spec.Decode(val)
		}
		return val, nil

	case KindAny:
		return val, nil
	}

	return nil, fmt.Errorf("cannot convert %T to %s", val, spec.Kind)
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return "any"
	}
}

func toInt(val any) (int, error) {
	switch x := val.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not an integer", x)
		}
		return int(x), nil
	case json.Number:
		n, err := x.Int64()
		return int(n), err
	case decimal.Decimal:
		if !x.IsInteger() {
			return 0, fmt.Errorf("%s is not an integer", x)
		}
		return int(x.IntPart()), nil
	case string:
		return strconv.Atoi(x)
	}
	return 0, fmt.Errorf("cannot convert %T to int", val)
}

func toFloat(val any) (float64, error) {
	switch x := val.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case decimal.Decimal:
		f, _ := x.Float64()
		return f, nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to float", val)
}

func toDecimal(val any) (decimal.Decimal, error) {
	switch x := val.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(x)
	}
	return decimal.Decimal{}, fmt.Errorf("cannot convert %T to decimal", val)
}

// Assign grava value em dst. nil grava o valor zero. Usado nas
// implementações de Decodable.Set.
func Assign[T any](dst *T, value any) error {
	if value == nil {
		var zero T
		*dst = zero
		return nil
	}
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("dyndb: cannot assign %T to %T", value, *dst)
	}
	*dst = v
	return nil
}

// AssignOpt grava value em um campo opcional (ponteiro). nil limpa o campo.
func AssignOpt[T any](dst **T, value any) error {
	if value == nil {
		*dst = nil
		return nil
	}
	if p, ok := value.(*T); ok {
		*dst = p
		return nil
	}
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("dyndb: cannot assign %T to %T", value, *dst)
	}
	*dst = &v
	return nil
}

// Opt devolve um ponteiro para v. Atalho para preencher campos opcionais.
func Opt[T any](v T) *T {
	return &v
}
