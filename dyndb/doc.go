// Package dyndb fornece a camada de mapeamento entre objetos de entrada e
// itens do DynamoDB, sobre o AWS SDK for Go v2, no modelo de tabela única
// (PK/SK + índice GSI1).
//
// Visão Geral:
// Um Input descreve seus campos em ordem (Fields). Um Parser combina o
// Input com as chaves calculadas (PK, SK e, opcionalmente, PK_GSI1/SK_GSI1).
// A partir dele o pacote gera o item completo de um put (ToNewPutItem) ou os
// argumentos de um update_item (ToUpdateItemArgs), já convertidos para tipos
// aceitos pelo DynamoDB (ToDynamoDBCompatible): enums viram nomes, datas
// viram strings ISO, floats viram decimal.Decimal.
//
// No caminho inverso, PayloadToInput/GraphQLPayloadToInput decodificam um
// payload (snake_case ou camelCase) em um Input tipado, campo a campo, a
// partir do Schema declarado.
//
// Funcionalidades Principais:
//   - Table: GetItem, PutItem, CreateItem, UpdateInput e DeleteItem.
//   - BatchWriter: escrita em lotes de 25 com reenvio de itens não processados.
//   - QueryBuilder: Query/Scan fluente com tokens de paginação em Base64.
//   - PaginatedResults: percorre todas as páginas de um Scan ou Query.
//   - MockDynamoClient: mock de baixo nível para testes unitários.
//
// Exemplo de update:
//
//	table := dyndb.NewTable(reg.DynamoDB(), "items")
//	item, err := table.UpdateInput(ctx, parser)
//	if errors.Is(err, dyndb.ErrItemNotFound) { /* ... */ }
//
// Exemplo de Query Fluente:
//
//	items, token, err := table.QueryGSI1("CUSTOMER#42", "ITEM#").
//		FilterEqual("status", ItemStatusActive).
//		Limit(50).
//		Exec(ctx)
package dyndb
