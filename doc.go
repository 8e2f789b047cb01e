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
// Package fastlambdatoolkit reúne utilitários para funções AWS Lambda que
// persistem no DynamoDB (modelo PK/SK + GSI1) e se comunicam via SQS, SNS,
// Lambda e Step Functions.
//
// Os pacotes são pequenos e independentes; os clientes AWS são recebidos
// como interfaces para facilitar o mocking nos testes.
//
// Sub-Pacotes Principais:
//
// 1. envloader e settings:
//   - Carregamento de configurações via tags "env" e "envDefault".
//   - Segredos via tag "secret", lidos de um blob JSON (Parameter Store,
//     Secrets Manager, S3 ou KMS) e mantidos em cache por MaxAge.
//
// 2. dyndb:
//   - Mapeamento de inputs para itens (ToNewPutItem, ToUpdateItemArgs) e
//     decodificação de payloads GraphQL (PayloadToInput, GraphQLPayloadToInput).
//   - Table com Get/Put/Create/Update/Delete, BatchWriter e QueryBuilder
//     com paginação por token.
//
// 3. awsclients:
//   - Registry com um cliente por serviço, criado sob demanda.
//
// 4. messaging, invoke e notification:
//   - Envio em lote para SQS, publicação no SNS, invocação de funções e
//     execução síncrona de state machines.
//   - Eventos de e-mail para administradores e clientes.
//
// 5. pkg/responder, pkg/transport e pkg/middleware:
//   - Envelope {"status": "OK"|"FAIL"} do API Gateway, roteamento de
//     requisições proxy e logging/métricas por invocação.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/raywall/fast-lambda-toolkit/awsclients"
//		"github.com/raywall/fast-lambda-toolkit/dyndb"
//		"github.com/raywall/fast-lambda-toolkit/settings"
//	)
//
//	type AppSettings struct {
//		Table    dyndb.TableConfig
//		Password string `secret:"SOME_PASSWORD" validate:"required"`
//	}
//
//	func main() {
//		ctx := context.Background()
//
//		clients, err := awsclients.Load(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		app := &AppSettings{}
//		st, err := settings.New(app, &settings.ParameterStoreSource{
//			Client: clients.SSM(),
//			Name:   "/my-service/secrets",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := st.LoadSecretSettings(ctx); err != nil {
//			log.Fatal(err)
//		}
//
//		table, err := dyndb.NewTableFromConfig(clients.DynamoDB(), app.Table)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		item, err := table.GetItem(ctx, "ITEM#1", "ITEM#1")
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("Item: %v", item)
//	}
package fastlambdatoolkit
