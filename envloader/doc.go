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
// Package envloader carrega valores de uma origem chave/valor para campos de
// uma struct Go, guiado por struct tags.
//
// Visão Geral:
// Load lê variáveis de ambiente usando as tags `env` e `envDefault`.
// LoadWith generaliza o mesmo mecanismo para qualquer tag e qualquer origem
// (LookupFunc); o pacote settings usa LoadWith com a tag `secret` e um mapa
// decodificado do Parameter Store.
//
// Tipos suportados: string, int*, uint*, bool, float*, time.Duration
// (ex: "30m" ou segundos inteiros), time.Time (RFC3339) e []string separado
// por vírgula. Structs aninhadas e ponteiros para structs são percorridos
// recursivamente.
//
// Regras de preenchimento:
//   - valor presente e não vazio na origem: convertido para o tipo do campo;
//   - ausente ou vazio: usa a tag `<tag>Default`, se existir;
//   - sem valor e sem default: o campo mantém o valor atual.
//
// Exemplo:
//
//	type Config struct {
//	    TableName string        `env:"TABLE_NAME" envDefault:"default-table-name"`
//	    MaxAge    time.Duration `env:"SECRETS_MAX_AGE" envDefault:"30m"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
package envloader
