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
package notification

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-playground/validator/v10"
	"github.com/raywall/fast-lambda-toolkit/messaging"
)

// Type identifica o canal da notificação.
type Type string

const (
	AdminEmail    Type = "ADMIN_EMAIL"
	CustomerEmail Type = "CUSTOMER_EMAIL"
)

// EventTypeNotify é o valor do atributo event_type das mensagens publicadas.
const EventTypeNotify = "notify"

// TimestampLayout reproduz o formato ISO-8601 com offset (+00:00).
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// Event é o payload consumido pelo serviço de notificações.
type Event struct {
	NotificationType  Type                      `json:"notification_type" validate:"required,oneof=ADMIN_EMAIL CUSTOMER_EMAIL"`
	TemplateName      string                    `json:"template_name" validate:"required"`
	Subject           string                    `json:"subject" validate:"required"`
	Context           map[string]any            `json:"context"`
	Recipients        []string                  `json:"recipients,omitempty" validate:"required_if=NotificationType CUSTOMER_EMAIL,dive,email"`
	RecipientsContext map[string]map[string]any `json:"recipients_context,omitempty"`
}

// Envelope é a mensagem efetivamente publicada no tópico.
type Envelope struct {
	Timestamp string `json:"timestamp"`
	Event     Event  `json:"event"`
}

// Client publica notificações em um tópico SNS.
type Client struct {
	publisher messaging.SNSPublisher
	topicArn  string
	now       func() time.Time
	validate  *validator.Validate
}

// Option configura o Client.
type Option func(*Client)

// WithClock substitui o relógio usado no timestamp do envelope.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient cria um Client para o tópico informado.
func NewClient(publisher messaging.SNSPublisher, topicArn string, opts ...Option) *Client {
	c := &Client{
		publisher: publisher,
		topicArn:  topicArn,
		now:       time.Now,
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Publish valida o evento e o publica dentro do envelope com timestamp UTC.
func (c *Client) Publish(ctx context.Context, event Event) error {
	if err := c.validate.Struct(event); err != nil {
		return fmt.Errorf("notification: invalid event: %w", err)
	}

	msg := Envelope{
		Timestamp: c.now().UTC().Format(TimestampLayout),
		Event:     event,
	}
	attrs := map[string]snstypes.MessageAttributeValue{
		"event_type": messaging.StringAttribute(EventTypeNotify),
	}

	if _, err := messaging.PublishToSNS(ctx, c.publisher, c.topicArn, msg, attrs); err != nil {
		return fmt.Errorf("notification: publish failed: %w", err)
	}
	return nil
}

// SendAdminNotification envia um e-mail para os administradores.
func (c *Client) SendAdminNotification(ctx context.Context, templateName, subject string, data map[string]any) error {
	return c.Publish(ctx, Event{
		NotificationType: AdminEmail,
		TemplateName:     templateName,
		Subject:          subject,
		Context:          data,
	})
}

// SendCustomerNotification envia um e-mail para os destinatários informados.
// recipientsContext permite dados específicos por destinatário (chave = e-mail).
func (c *Client) SendCustomerNotification(
	ctx context.Context,
	templateName, subject string,
	recipients []string,
	data map[string]any,
	recipientsContext map[string]map[string]any,
) error {
	return c.Publish(ctx, Event{
		NotificationType:  CustomerEmail,
		TemplateName:      templateName,
		Subject:           subject,
		Recipients:        recipients,
		Context:           data,
		RecipientsContext: recipientsContext,
	})
}
