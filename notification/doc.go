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
// Package notification publica eventos para o serviço interno de
// notificações através de um tópico SNS.
//
// Cada evento é enviado dentro de um envelope {"timestamp", "event"} com o
// atributo de mensagem event_type=notify, usado pelo serviço consumidor
// para filtrar a assinatura.
//
//	client := notification.NewClient(reg.SNS(), cfg.NotificationTopic)
//	err := client.SendAdminNotification(ctx, "my_template", "My subject",
//	    map[string]any{"data": "blah"})
package notification
