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
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Enum é implementado por tipos enumerados; o nome é o valor persistido.
type Enum interface {
	EnumName() string
}

// ToCamelCase converte snake_case para camelCase: "some_long_name" -> "someLongName".
// Strings sem "_" são devolvidas sem alteração.
func ToCamelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// MapToCamelCase renomeia recursivamente as chaves de mapas (inclusive
// dentro de listas) para camelCase. O mapa de entrada não é alterado.
func MapToCamelCase(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[ToCamelCase(k)] = camelValue(v)
	}
	return out
}

func camelValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return MapToCamelCase(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = camelValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = MapToCamelCase(item)
		}
		return out
	default:
		return v
	}
}

// NormaliseKey remove espaços e converte para minúsculas: "Some  NaMe" -> "somename".
func NormaliseKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// ToDynamoDBCompatible converte um valor para a representação persistida:
//
//   - Enum -> nome (string)
//   - float32/float64 -> decimal.Decimal exato
//   - Date -> "2006-01-02"
//   - time.Time -> ISO-8601 UTC (FormatDateTime)
//   - json.Number -> decimal.Decimal exato
//   - Input -> mapa camelCase com valores convertidos
//   - mapas e slices -> convertidos recursivamente
//   - ponteiros -> valor apontado (nil -> nil)
//
// Tipos não suportados são devolvidos sem alteração. A função é idempotente.
func ToDynamoDBCompatible(v any) any {
	if isNil(v) {
		return nil
	}

	switch x := v.(type) {
	case Enum:
		return x.EnumName()
	case Input:
		return InputToGraphQL(x)
	case Date:
		return x.String()
	case time.Time:
		return FormatDateTime(x)
	case decimal.Decimal:
		return x
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return x.String()
		}
		return d
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case string, bool, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = ToDynamoDBCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = ToDynamoDBCompatible(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		return ToDynamoDBCompatible(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = ToDynamoDBCompatible(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = ToDynamoDBCompatible(iter.Value().Interface())
		}
		return out
	case reflect.String:
		// tipos nomeados sobre string (ex: type Status string) sem EnumName
		return rv.String()
	case reflect.Float64:
		return decimal.NewFromFloat(rv.Float())
	case reflect.Float32:
		return decimal.NewFromFloat32(float32(rv.Float()))
	}
	return v
}

// isNil trata nil "tipado" (ponteiro, mapa, slice ou interface nulos) como ausente.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
