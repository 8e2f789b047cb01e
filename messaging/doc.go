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
// Package messaging publica mensagens em tópicos SNS e envia lotes para
// filas SQS.
//
// PublishToSNS serializa a mensagem como JSON dentro da estrutura
// {"default": "<json>"} com MessageStructure "json", permitindo que os
// assinantes filtrem por atributos. SendToSQS divide as entradas em lotes
// (máximo de 10 por chamada no SQS) e devolve o conjunto de MessageIds
// aceitos; falhas parciais são registradas no log e cabe ao chamador
// comparar o resultado com as entradas enviadas.
package messaging
