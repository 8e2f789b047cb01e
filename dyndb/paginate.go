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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Operation identifica o paginator usado por PaginatedResults.
type Operation string

const (
	OperationScan  Operation = "scan"
	OperationQuery Operation = "query"
)

// PaginatedResults percorre todas as páginas de um Scan ou Query, chamando
// fn com cada item já convertido por FromDynamoDBToJSON. Um erro devolvido
// por fn interrompe a paginação.
//
//	err := dyndb.PaginatedResults(ctx, reg.DynamoDB(), dyndb.OperationScan,
//	    &dynamodb.ScanInput{TableName: aws.String("items"), Select: types.SelectAllAttributes},
//	    func(item map[string]any) error { ... })
func PaginatedResults(ctx context.Context, client DynamoDBClient, op Operation, params any, fn func(item map[string]any) error) error {
	switch op {
	case OperationScan:
		input, ok := params.(*dynamodb.ScanInput)
		if !ok {
			return fmt.Errorf("dyndb: scan expects *dynamodb.ScanInput, got %T", params)
		}
		p := dynamodb.NewScanPaginator(client, input)
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("dynamostore: scan page failed: %w", err)
			}
			for _, item := range page.Items {
				if err := fn(FromDynamoDBToJSON(item)); err != nil {
					return err
				}
			}
		}
		return nil

	case OperationQuery:
		input, ok := params.(*dynamodb.QueryInput)
		if !ok {
			return fmt.Errorf("dyndb: query expects *dynamodb.QueryInput, got %T", params)
		}
		p := dynamodb.NewQueryPaginator(client, input)
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("dynamostore: query page failed: %w", err)
			}
			for _, item := range page.Items {
				if err := fn(FromDynamoDBToJSON(item)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fmt.Errorf("dyndb: unsupported operation %q", op)
}
