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
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// SNSPublisher abstrai o cliente SNS (permite mocking).
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// StringAttribute cria um atributo de mensagem do tipo String.
func StringAttribute(value string) snstypes.MessageAttributeValue {
	return snstypes.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(value),
	}
}

// PublishToSNS publica `message` como JSON no tópico informado.
// Valores decimal.Decimal são serializados como string.
func PublishToSNS(
	ctx context.Context,
	client SNSPublisher,
	topicArn string,
	message any,
	attributes map[string]snstypes.MessageAttributeValue,
) (string, error) {
	log := logger.ForComponent("messaging")
	log.Info().Str("topic", topicArn).Interface("body", message).Msg("Publishing to SNS")

	body, err := EncodeSNSMessage(message)
	if err != nil {
		return "", err
	}
	if attributes == nil {
		attributes = map[string]snstypes.MessageAttributeValue{}
	}

	out, err := client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(topicArn),
		Message:           aws.String(body),
		MessageStructure:  aws.String("json"),
		MessageAttributes: attributes,
	})
	if err != nil {
		return "", fmt.Errorf("messaging: sns publish failed: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}

// EncodeSNSMessage monta o corpo {"default": "<json da mensagem>"}.
func EncodeSNSMessage(message any) (string, error) {
	inner, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("messaging: encode message failed: %w", err)
	}
	outer, err := json.Marshal(map[string]string{"default": string(inner)})
	if err != nil {
		return "", fmt.Errorf("messaging: encode envelope failed: %w", err)
	}
	return string(outer), nil
}

// DecodeSNSEnvelope faz o caminho inverso de uma mensagem SNS entregue numa
// fila SQS: corpo SQS -> campo "Message" -> campo "default" -> out.
func DecodeSNSEnvelope(sqsBody string, out any) error {
	var notification struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal([]byte(sqsBody), &notification); err != nil {
		return fmt.Errorf("messaging: decode sqs body failed: %w", err)
	}

	var structured struct {
		Default string `json:"default"`
	}
	if err := json.Unmarshal([]byte(notification.Message), &structured); err != nil {
		return fmt.Errorf("messaging: decode sns message failed: %w", err)
	}

	if err := json.Unmarshal([]byte(structured.Default), out); err != nil {
		return fmt.Errorf("messaging: decode payload failed: %w", err)
	}
	return nil
}
