package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

const testIndex = "GSI1"

func newStoredBook(t *testing.T, title, ownerID string) *domain.Book {
	t.Helper()

	owner := domain.NewUserDetails(ownerID, "nick-"+ownerID, domain.Address{})
	book, err := domain.NewBook(title, "Some Author", "", owner)
	require.NoError(t, err)
	return book
}

func marshalBook(t *testing.T, book *domain.Book) map[string]types.AttributeValue {
	t.Helper()

	item, err := attributevalue.MarshalMap(newBookRecord(book))
	require.NoError(t, err)
	return item
}

func TestBookRepositoryFindByID(t *testing.T) {
	book := newStoredBook(t, "A Book", "user-1")

	t.Run("returns the book", func(t *testing.T) {
		client := &fakeClient{
			getItem: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				pk := input.Key["PK"].(*types.AttributeValueMemberS)
				assert.Equal(t, bookPartitionKey, pk.Value)
				sk := input.Key["SK"].(*types.AttributeValueMemberS)
				assert.Equal(t, bookKey(book.ID()), sk.Value)

				return &dynamodb.GetItemOutput{Item: marshalBook(t, book)}, nil
			},
		}
		repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

		found, err := repo.FindByID(context.Background(), book.ID())

		require.NoError(t, err)
		assert.Equal(t, book.ID(), found.ID())
		assert.Equal(t, "A Book", found.Title())
		assert.Equal(t, "user-1", found.Owner().ID())
	})

	t.Run("missing item maps to not found", func(t *testing.T) {
		client := &fakeClient{
			getItem: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{}, nil
			},
		}
		repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

		_, err := repo.FindByID(context.Background(), "missing")

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestBookRepositoryFindByOwnerID(t *testing.T) {
	first := newStoredBook(t, "First", "user-1")
	second := newStoredBook(t, "Second", "user-1")

	var inputs []*dynamodb.QueryInput
	client := &fakeClient{
		query: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			inputs = append(inputs, input)

			// Two pages: the first returns a LastEvaluatedKey.
			if input.ExclusiveStartKey == nil {
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{marshalBook(t, first)},
					LastEvaluatedKey: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: bookPartitionKey},
					},
				}, nil
			}
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{marshalBook(t, second)},
			}, nil
		},
	}
	repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

	books, err := repo.FindByOwnerID(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, first.ID(), books[0].ID())
	assert.Equal(t, second.ID(), books[1].ID())

	require.Len(t, inputs, 2)
	assert.Equal(t, testIndex, *inputs[0].IndexName)
	require.NotNil(t, inputs[0].ScanIndexForward)
	assert.False(t, *inputs[0].ScanIndexForward)
	assert.NotNil(t, inputs[1].ExclusiveStartKey)
}

func TestBookRepositoryFindRecent(t *testing.T) {
	book := newStoredBook(t, "Newest", "user-1")

	client := &fakeClient{
		query: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			assert.Nil(t, input.IndexName)
			require.NotNil(t, input.ScanIndexForward)
			assert.False(t, *input.ScanIndexForward)

			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{marshalBook(t, book)},
			}, nil
		},
	}
	repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

	books, err := repo.FindRecent(context.Background())

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID(), books[0].ID())
}

func TestBookRepositoryFindRecentConsistentRead(t *testing.T) {
	var captured *dynamodb.QueryInput
	client := &fakeClient{
		query: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			captured = input
			return &dynamodb.QueryOutput{}, nil
		},
	}
	repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

	_, err := repo.FindRecent(context.Background(), ports.WithConsistentRead())

	require.NoError(t, err)
	require.NotNil(t, captured.ConsistentRead)
	assert.True(t, *captured.ConsistentRead)
}

func TestBookRepositorySave(t *testing.T) {
	book := newStoredBook(t, "A Book", "user-1")

	var saved map[string]types.AttributeValue
	client := &fakeClient{
		putItem: func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			saved = input.Item
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

	require.NoError(t, repo.Save(context.Background(), book))

	var record bookRecord
	require.NoError(t, attributevalue.UnmarshalMap(saved, &record))
	assert.Equal(t, bookPartitionKey, record.PK)
	assert.Equal(t, bookKey(book.ID()), record.SK)
	assert.Equal(t, userKey("user-1"), record.GSI1PK)
	assert.Equal(t, bookKey(book.ID()), record.GSI1SK)
	assert.Equal(t, kindBook, record.Kind)
}

func TestBookRepositoryRemove(t *testing.T) {
	book := newStoredBook(t, "A Book", "user-1")

	var deletedKey map[string]types.AttributeValue
	client := &fakeClient{
		deleteItem: func(input *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			deletedKey = input.Key
			return &dynamodb.DeleteItemOutput{}, nil
		},
	}
	repo := NewBookRepository(client, testTable, testIndex, zap.NewNop())

	require.NoError(t, repo.Remove(context.Background(), book))

	pk := deletedKey["PK"].(*types.AttributeValueMemberS)
	sk := deletedKey["SK"].(*types.AttributeValueMemberS)
	assert.Equal(t, bookPartitionKey, pk.Value)
	assert.Equal(t, bookKey(book.ID()), sk.Value)
}
