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
package envloader

import (
	"encoding/json"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TagEnv é a tag padrão usada por Load.
const TagEnv = "env"

// LookupFunc resolve o valor bruto de uma chave. O segundo retorno indica
// se a chave existe na origem.
type LookupFunc func(key string) (string, bool)

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env" e "envDefault"
func Load(config interface{}) error {
	return LoadWith(config, TagEnv, os.LookupEnv)
}

// LoadWith preenche os campos marcados com `tag` usando `lookup` como origem.
// O valor padrão é lido da tag `<tag>Default` (ex: "envDefault", "secretDefault").
func LoadWith(config interface{}, tag string, lookup LookupFunc) error {
	val := reflect.ValueOf(config)
	if !val.IsValid() {
		return &InvalidConfigError{}
	}
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}

	return loadStruct(val.Elem(), tag, lookup)
}

// MapLookup adapta um mapa decodificado de JSON/YAML para LookupFunc.
// Valores nil e strings vazias são tratados como ausentes.
func MapLookup(values map[string]any) LookupFunc {
	return func(key string) (string, bool) {
		raw, ok := values[key]
		if !ok || raw == nil {
			return "", false
		}
		switch v := raw.(type) {
		case string:
			return v, v != ""
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(v), true
		case json.Number:
			return v.String(), true
		case int:
			return strconv.Itoa(v), true
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return "", false
			}
			return string(b), true
		}
	}
}

// loadStruct processa recursivamente uma struct
func loadStruct(val reflect.Value, tag string, lookup LookupFunc) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		// time.Time é struct, mas é tratado como valor escalar
		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := loadStruct(field, tag, lookup); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := loadStruct(field.Elem(), tag, lookup); err != nil {
				return err
			}
			continue
		}

		key := fieldType.Tag.Get(tag)
		if key == "" {
			continue
		}

		value, ok := lookup(key)
		if !ok || value == "" {
			value = fieldType.Tag.Get(tag + "Default")
		}

		// Sem valor e sem default: mantém o valor atual do campo
		if value == "" {
			continue
		}

		if err := setFieldValue(field, value); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				Tag:       tag,
				Key:       key,
				Value:     value,
				Err:       err,
			}
		}
	}

	return nil
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// setFieldValue define o valor de um campo baseado no seu tipo
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Type() {
	case durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			// aceita segundos inteiros (ex: "1800")
			secs, convErr := strconv.ParseInt(value, 10, 64)
			if convErr != nil {
				return err
			}
			d = time.Duration(secs) * time.Second
		}
		field.SetInt(int64(d))
		return nil
	case timeType:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(t))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: field.Type()}
		}
		parts := strings.Split(value, ",")
		out := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = reflect.Append(out, reflect.ValueOf(p).Convert(field.Type().Elem()))
			}
		}
		field.Set(out)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}
