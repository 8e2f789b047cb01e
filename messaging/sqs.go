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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// DefaultMaxBatchSize é o limite de entradas do SendMessageBatch.
const DefaultMaxBatchSize = 10

// SQSBatchSender abstrai o cliente SQS (permite mocking).
type SQSBatchSender interface {
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// EntriesFromBodies cria uma entrada por corpo, com Id gerado via uuid.
func EntriesFromBodies(bodies ...string) []sqstypes.SendMessageBatchRequestEntry {
	entries := make([]sqstypes.SendMessageBatchRequestEntry, 0, len(bodies))
	for _, body := range bodies {
		entries = append(entries, sqstypes.SendMessageBatchRequestEntry{
			Id:          aws.String(uuid.NewString()),
			MessageBody: aws.String(body),
		})
	}
	return entries
}

// SendToSQS envia as entradas em lotes de até maxBatchSize (padrão 10) e
// devolve o conjunto de MessageIds aceitos pelo SQS.
//
// Entradas rejeitadas (campo Failed da resposta) são apenas registradas no
// log. Um erro de chamada interrompe o envio; os ids já aceitos são
// devolvidos junto com o erro.
func SendToSQS(
	ctx context.Context,
	client SQSBatchSender,
	queueURL string,
	entries []sqstypes.SendMessageBatchRequestEntry,
	maxBatchSize int,
) (map[string]struct{}, error) {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}

	log := logger.ForComponent("messaging")
	messageIDs := make(map[string]struct{}, len(entries))

	for i := 0; i < len(entries); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		out, err := client.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
			QueueUrl: aws.String(queueURL),
			Entries:  entries[i:end],
		})
		if err != nil {
			return messageIDs, fmt.Errorf("messaging: sqs send batch failed: %w", err)
		}

		if len(out.Failed) > 0 {
			failed := make([]string, 0, len(out.Failed))
			for _, f := range out.Failed {
				failed = append(failed, fmt.Sprintf("%s:%s:%s", aws.ToString(f.Id), aws.ToString(f.Code), aws.ToString(f.Message)))
			}
			log.Error().
				Str("queue_url", queueURL).
				Strs("failed", failed).
				Msgf("Failed to publish %d messages to %s", len(out.Failed), queueURL)
		}

		for _, s := range out.Successful {
			messageIDs[aws.ToString(s.MessageId)] = struct{}{}
		}
	}

	return messageIDs, nil
}
