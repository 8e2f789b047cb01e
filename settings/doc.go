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
//
// Package settings combina variáveis de ambiente com um blob de segredos
// (JSON criptografado) que é recarregado periodicamente.
//
// Campos com a tag `env` são carregados na construção (New). Campos com a
// tag `secret` são carregados sob demanda por LoadSecretSettings, que só
// consulta a origem quando o cache expirou (padrão de 30 minutos).
//
//	type MySettings struct {
//	    EnvName      string `env:"ENV_NAME" envDefault:"dev"`
//	    TableName    string `env:"TABLE_NAME" envDefault:"default-table-name"`
//	    SomePassword string `secret:"SOME_PASSWORD"`
//	}
//
//	s, err := settings.New(&MySettings{SomePassword: "TBA"},
//	    &settings.ParameterStoreSource{Client: reg.SSM(), Name: "/my-app/secrets"})
//	...
//	// dentro do handler
//	if err := s.LoadSecretSettings(ctx); err != nil {
//	    return err
//	}
//	password := s.Values().SomePassword
package settings
