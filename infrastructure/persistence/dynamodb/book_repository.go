package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// BookRepository stores books under the shared "book" partition, keyed by
// their sortable id so recent listings are a reverse range scan. GSI1
// projects each book under its owner for per-user listings.
type BookRepository struct {
	client    Client
	tableName string
	indexName string
	logger    *zap.Logger
}

var _ ports.BookRepository = (*BookRepository)(nil)

// NewBookRepository creates a book repository.
func NewBookRepository(client Client, tableName, indexName string, logger *zap.Logger) *BookRepository {
	return &BookRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

func (r *BookRepository) FindByID(ctx context.Context, bookID string, opts ...ports.ReadOption) (*domain.Book, error) {
	options := ports.ApplyReadOptions(opts)

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: bookPartitionKey},
			"SK": &types.AttributeValueMemberS{Value: bookKey(bookID)},
		},
		ConsistentRead: aws.Bool(options.ConsistentRead),
	})
	if err != nil {
		r.logger.Error("Failed to get book", zap.String("bookID", bookID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFound("book not found")
	}

	return r.parseBook(result.Item)
}

func (r *BookRepository) FindByIDs(ctx context.Context, bookIDs []string, opts ...ports.ReadOption) ([]*domain.Book, error) {
	if len(bookIDs) == 0 {
		return []*domain.Book{}, nil
	}

	options := ports.ApplyReadOptions(opts)

	keys := make([]map[string]types.AttributeValue, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		keys = append(keys, map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: bookPartitionKey},
			"SK": &types.AttributeValueMemberS{Value: bookKey(bookID)},
		})
	}

	items, err := batchGet(ctx, r.client, r.tableName, keys, options.ConsistentRead)
	if err != nil {
		r.logger.Error("Failed to batch get books", zap.Int("count", len(bookIDs)), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	books := make([]*domain.Book, 0, len(items))
	for _, item := range items {
		book, err := r.parseBook(item)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, nil
}

func (r *BookRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*domain.Book, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(userKey(ownerID))).
		And(expression.Key("GSI1SK").BeginsWith(bookPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	items, err := r.queryAllPages(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		r.logger.Error("Failed to query books by owner", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return r.parseBooks(items)
}

func (r *BookRepository) FindRecent(ctx context.Context, opts ...ports.ReadOption) ([]*domain.Book, error) {
	options := ports.ApplyReadOptions(opts)

	keyCond := expression.Key("PK").Equal(expression.Value(bookPartitionKey)).
		And(expression.Key("SK").BeginsWith(bookPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	items, err := r.queryAllPages(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		ConsistentRead:            aws.Bool(options.ConsistentRead),
	})
	if err != nil {
		r.logger.Error("Failed to query recent books", zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return r.parseBooks(items)
}

func (r *BookRepository) Save(ctx context.Context, book *domain.Book) error {
	item, err := attributevalue.MarshalMap(newBookRecord(book))
	if err != nil {
		r.logger.Error("Failed to marshal book", zap.String("bookID", book.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("Failed to save book", zap.String("bookID", book.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	r.logger.Debug("Book saved",
		zap.String("bookID", book.ID()),
		zap.String("ownerID", book.Owner().ID()),
	)
	return nil
}

func (r *BookRepository) Remove(ctx context.Context, book *domain.Book) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: bookPartitionKey},
			"SK": &types.AttributeValueMemberS{Value: bookKey(book.ID())},
		},
	})
	if err != nil {
		r.logger.Error("Failed to delete book", zap.String("bookID", book.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	r.logger.Debug("Book deleted", zap.String("bookID", book.ID()))
	return nil
}

// queryAllPages follows LastEvaluatedKey until the query is exhausted.
func (r *BookRepository) queryAllPages(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}

		items = append(items, result.Items...)

		if result.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

func (r *BookRepository) parseBook(item map[string]types.AttributeValue) (*domain.Book, error) {
	var record bookRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		r.logger.Error("Failed to unmarshal book row", zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	book, err := record.toBook()
	if err != nil {
		r.logger.Error("Failed to rebuild book entity", zap.String("bookID", record.ID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return book, nil
}

func (r *BookRepository) parseBooks(items []map[string]types.AttributeValue) ([]*domain.Book, error) {
	books := make([]*domain.Book, 0, len(items))
	for _, item := range items {
		book, err := r.parseBook(item)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
