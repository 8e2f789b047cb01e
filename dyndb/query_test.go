package dyndb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/fast-lambda-toolkit/dyndb"
)

func TestQueryBuilder_QueryGSI1(t *testing.T) {
	lastKey := map[string]types.AttributeValue{"PK": s("ITEM#2"), "SK": s("ITEM#2")}
	var captured *dynamodb.QueryInput
	client := &dyndb.MockDynamoClient{
		QueryFn: func(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			captured = in
			return &dynamodb.QueryOutput{
				Items:            []map[string]types.AttributeValue{storedItem("ITEM#1", "a"), storedItem("ITEM#2", "b")},
				LastEvaluatedKey: lastKey,
			}, nil
		},
	}
	table := dyndb.NewTable(client, "t")

	items, token, err := table.QueryGSI1("CUSTOMER#1", "ITEM#").
		FilterEqual("status", statusActive).
		Limit(2).
		Exec(context.Background())
	require.NoError(t, err)

	assert.Len(t, items, 2)
	assert.Equal(t, "b", items[1]["other"])
	assert.NotEmpty(t, token)

	require.NotNil(t, captured)
	assert.Equal(t, "GSI1", *captured.IndexName)
	assert.NotNil(t, captured.KeyConditionExpression)
	assert.NotNil(t, captured.FilterExpression)
	assert.Nil(t, captured.ConsistentRead)
	assert.Equal(t, int32(2), *captured.Limit)
	assert.Contains(t, captured.ExpressionAttributeValues, ":2")

	decoded, err := dyndb.DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, lastKey, decoded)
}

func TestPageToken_NumericKeyKeepsPrecision(t *testing.T) {
	// 2^53 + 1 não cabe num float64
	lastKey := map[string]types.AttributeValue{
		"PK": s("COMPANY#1"),
		"SK": &types.AttributeValueMemberN{Value: "9007199254740993"},
	}

	token, err := dyndb.EncodePageToken(lastKey)
	require.NoError(t, err)

	decoded, err := dyndb.DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, lastKey, decoded)
}

func TestQueryBuilder_LastKeyResumes(t *testing.T) {
	token, err := dyndb.EncodePageToken(map[string]types.AttributeValue{"PK": s("A"), "SK": s("B")})
	require.NoError(t, err)

	var captured *dynamodb.QueryInput
	client := &dyndb.MockDynamoClient{
		QueryFn: func(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			captured = in
			return &dynamodb.QueryOutput{}, nil
		},
	}

	items, next, err := dyndb.NewTable(client, "t").Query().
		KeyEqual("PK", "A").
		ScanForward(false).
		LastKey(token).
		Exec(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, next)

	assert.Equal(t, s("B"), captured.ExclusiveStartKey["SK"])
	assert.False(t, *captured.ScanIndexForward)
	assert.True(t, *captured.ConsistentRead)
}

func TestQueryBuilder_Errors(t *testing.T) {
	table := dyndb.NewTable(&dyndb.MockDynamoClient{}, "t")

	_, _, err := table.Query().Exec(context.Background())
	assert.ErrorContains(t, err, "key condition")

	_, _, err = table.Query().KeyEqual("PK", "A").LastKey("%%%").Exec(context.Background())
	assert.ErrorContains(t, err, "invalid page token")

	boom := errors.New("boom")
	failing := dyndb.NewTable(&dyndb.MockDynamoClient{
		ScanFn: func(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			return nil, boom
		},
	}, "t")
	_, _, err = failing.Scan().Exec(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestQueryBuilder_ScanWithFilter(t *testing.T) {
	var captured *dynamodb.ScanInput
	client := &dyndb.MockDynamoClient{
		ScanFn: func(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			captured = in
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{storedItem("1", "x")}}, nil
		},
	}

	items, token, err := dyndb.NewTable(client, "t").Scan().
		FilterContains("other", "x").
		Exec(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, token)
	assert.NotNil(t, captured.FilterExpression)
}

func pagedQueryClient(pages ...[]map[string]types.AttributeValue) (*dyndb.MockDynamoClient, *int) {
	calls := 0
	return &dyndb.MockDynamoClient{
		QueryFn: func(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			page := pages[calls]
			calls++
			out := &dynamodb.QueryOutput{Items: page}
			if calls < len(pages) {
				out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": s("next"), "SK": s("next")}
			}
			return out, nil
		},
	}, &calls
}

func TestPaginatedResults_Query(t *testing.T) {
	client, calls := pagedQueryClient(
		[]map[string]types.AttributeValue{storedItem("1", "a"), storedItem("2", "b")},
		[]map[string]types.AttributeValue{storedItem("3", "c")},
	)

	var seen []string
	err := dyndb.PaginatedResults(context.Background(), client, dyndb.OperationQuery,
		&dynamodb.QueryInput{TableName: strPtr("t")},
		func(item map[string]any) error {
			seen = append(seen, item["other"].(string))
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, 2, *calls)
}

func TestPaginatedResults_StopsOnCallbackError(t *testing.T) {
	client, calls := pagedQueryClient(
		[]map[string]types.AttributeValue{storedItem("1", "a")},
		[]map[string]types.AttributeValue{storedItem("2", "b")},
	)
	stop := errors.New("stop")

	err := dyndb.PaginatedResults(context.Background(), client, dyndb.OperationQuery,
		&dynamodb.QueryInput{TableName: strPtr("t")},
		func(item map[string]any) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, *calls)
}

func TestPaginatedResults_Scan(t *testing.T) {
	client := &dyndb.MockDynamoClient{
		ScanFn: func(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{storedItem("1", "a")}}, nil
		},
	}

	count := 0
	err := dyndb.PaginatedResults(context.Background(), client, dyndb.OperationScan,
		&dynamodb.ScanInput{TableName: strPtr("t"), Select: types.SelectAllAttributes},
		func(item map[string]any) error { count++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPaginatedResults_BadArguments(t *testing.T) {
	client := &dyndb.MockDynamoClient{}
	noop := func(map[string]any) error { return nil }

	err := dyndb.PaginatedResults(context.Background(), client, dyndb.OperationScan, &dynamodb.QueryInput{}, noop)
	assert.ErrorContains(t, err, "scan expects")

	err = dyndb.PaginatedResults(context.Background(), client, "get", nil, noop)
	assert.ErrorContains(t, err, "unsupported operation")
}

func TestQueryBuilder_One(t *testing.T) {
	client, _ := pagedQueryClient([]map[string]types.AttributeValue{storedItem("1", "a"), storedItem("2", "b")})
	_, err := dyndb.NewTable(client, "t").Query().KeyEqual("PK", "1").One(context.Background())
	assert.ErrorIs(t, err, dyndb.ErrMultipleItemsFound)

	client, _ = pagedQueryClient([]map[string]types.AttributeValue{})
	_, err = dyndb.NewTable(client, "t").Query().KeyEqual("PK", "1").One(context.Background())
	assert.ErrorIs(t, err, dyndb.ErrItemNotFound)

	client, _ = pagedQueryClient([]map[string]types.AttributeValue{storedItem("1", "a")})
	item, err := dyndb.NewTable(client, "t").Query().KeyEqual("PK", "1").One(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", item["other"])
}
