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
// Package awsclients mantém os clientes do AWS SDK criados durante a vida do
// processo Lambda.
//
// Um Registry é construído uma única vez no bootstrap (main) e injetado nos
// componentes que precisam de clientes. Cada cliente é criado na primeira
// solicitação e reaproveitado nas invocações seguintes; a chave do cache é
// apenas o nome do serviço.
//
// Exemplo:
//
//	reg, err := awsclients.Load(ctx)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("aws config")
//	}
//	table := dyndb.NewTable(reg.DynamoDB(), "items")
package awsclients
