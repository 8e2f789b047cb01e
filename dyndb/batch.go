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
package dyndb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MaxBatchWriteItems é o limite de operações por BatchWriteItem.
const MaxBatchWriteItems = 25

// maxFlushRounds limita os reenvios de UnprocessedItems dentro de um Flush.
const maxFlushRounds = 10

// ErrUnprocessedItems indica que o DynamoDB não aceitou todos os itens.
var ErrUnprocessedItems = errors.New("dyndb: unprocessed items remain after flush")

// BatchWriter acumula puts e deletes e os envia em lotes de 25.
// Itens devolvidos em UnprocessedItems voltam para a fila.
type BatchWriter struct {
	table   *Table
	pending []types.WriteRequest
}

// NewBatchWriter cria um BatchWriter para a tabela.
func (t *Table) NewBatchWriter() *BatchWriter {
	return &BatchWriter{table: t}
}

// Batch executa fn com um BatchWriter e faz o Flush final.
func (t *Table) Batch(ctx context.Context, fn func(b *BatchWriter) error) error {
	b := t.NewBatchWriter()
	if err := fn(b); err != nil {
		return err
	}
	return b.Flush(ctx)
}

// PutItem enfileira um put; ao atingir 25 itens o lote é enviado.
func (b *BatchWriter) PutItem(ctx context.Context, item map[string]any) error {
	av, err := MarshalItem(item)
	if err != nil {
		return fmt.Errorf("batchwrite: marshal put item failed: %w", err)
	}
	b.pending = append(b.pending, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	return b.flushFull(ctx)
}

// PutInput enfileira o item derivado do parser.
func (b *BatchWriter) PutInput(ctx context.Context, p Parser) (map[string]any, error) {
	item := ToNewPutItem(p)
	if err := b.PutItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem enfileira um delete pela chave composta.
func (b *BatchWriter) DeleteItem(ctx context.Context, pk, sk string) error {
	b.pending = append(b.pending, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: b.table.key(pk, sk)}})
	return b.flushFull(ctx)
}

// Pending devolve o número de operações ainda não enviadas.
func (b *BatchWriter) Pending() int {
	return len(b.pending)
}

func (b *BatchWriter) flushFull(ctx context.Context) error {
	if len(b.pending) < MaxBatchWriteItems {
		return nil
	}
	return b.send(ctx)
}

// send envia um lote (até 25) e recoloca os não processados na fila.
func (b *BatchWriter) send(ctx context.Context) error {
	n := len(b.pending)
	if n > MaxBatchWriteItems {
		n = MaxBatchWriteItems
	}
	batch := b.pending[:n]

	out, err := b.table.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			b.table.cfg.TableName: batch,
		},
	})
	if err != nil {
		return fmt.Errorf("batchwrite failed: %w", err)
	}

	rest := append([]types.WriteRequest(nil), b.pending[n:]...)
	if unprocessed := out.UnprocessedItems[b.table.cfg.TableName]; len(unprocessed) > 0 {
		log := b.table.log()
		log.Warn().Int("unprocessed", len(unprocessed)).Msg("Re-queueing unprocessed items")
		rest = append(rest, unprocessed...)
	}
	b.pending = rest
	return nil
}

// Flush envia todas as operações pendentes.
func (b *BatchWriter) Flush(ctx context.Context) error {
	rounds := 0
	for len(b.pending) > 0 {
		before := len(b.pending)
		if err := b.send(ctx); err != nil {
			return err
		}
		// só conta as rodadas em que nada avançou
		if len(b.pending) >= before {
			rounds++
			if rounds >= maxFlushRounds {
				return fmt.Errorf("%w: %d pending", ErrUnprocessedItems, len(b.pending))
			}
		}
	}
	return nil
}
