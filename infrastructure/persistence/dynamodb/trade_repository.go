package dynamodb

import (
	"context"
	"sync"

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

// TradeRepository stores each trade as a row family sharing the trade's
// partition key: one metadata row, two participant rows and one row per
// book line item. Loading a trade is a single partition query; the
// by-decider, by-requester and by-book lookups go through GSI1 and fan
// out to full loads.
type TradeRepository struct {
	client    Client
	tableName string
	indexName string
	logger    *zap.Logger
}

var _ ports.TradeRepository = (*TradeRepository)(nil)

// NewTradeRepository creates a trade repository.
func NewTradeRepository(client Client, tableName, indexName string, logger *zap.Logger) *TradeRepository {
	return &TradeRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

func (r *TradeRepository) FindByID(ctx context.Context, tradeID string, opts ...ports.ReadOption) (*domain.Trade, error) {
	options := ports.ApplyReadOptions(opts)

	keyCond := expression.Key("PK").Equal(expression.Value(tradeKey(tradeID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	items, err := r.queryAllPages(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ConsistentRead:            aws.Bool(options.ConsistentRead),
	})
	if err != nil {
		r.logger.Error("Failed to query trade partition", zap.String("tradeID", tradeID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	if len(items) == 0 {
		return nil, apperrors.NewNotFound("trade not found")
	}

	rows, err := parseTradePartition(items)
	if err != nil {
		r.logger.Error("Malformed trade partition", zap.String("tradeID", tradeID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	trade, err := rows.toTrade()
	if err != nil {
		r.logger.Error("Failed to rebuild trade entity", zap.String("tradeID", tradeID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return trade, nil
}

func (r *TradeRepository) FindByDeciderID(ctx context.Context, deciderID string) ([]*domain.Trade, error) {
	return r.findByIndexKey(ctx, deciderKey(deciderID))
}

func (r *TradeRepository) FindByRequesterID(ctx context.Context, requesterID string) ([]*domain.Trade, error) {
	return r.findByIndexKey(ctx, requesterKey(requesterID))
}

func (r *TradeRepository) FindByBookID(ctx context.Context, bookID string) ([]*domain.Trade, error) {
	return r.findByIndexKey(ctx, tradeItemKey(bookID))
}

func (r *TradeRepository) FindAccepted(ctx context.Context) ([]*domain.Trade, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(tradePartitionKey))
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
		r.logger.Error("Failed to query accepted trades", zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return r.loadTrades(ctx, tradeIDsFromItems(items, "id"))
}

func (r *TradeRepository) CountPendingByBookID(ctx context.Context, bookID string) (int, error) {
	trades, err := r.FindByBookID(ctx, bookID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, trade := range trades {
		if trade.Status() == domain.TradeStatusPending {
			count++
		}
	}
	return count, nil
}

// Save upserts the trade. The metadata row is always written; the
// participant and line-item rows only for new trades, because they are
// immutable history after creation. When an acceptance transferred book
// ownership the live book rows are rewritten too, while the snapshots
// inside the trade partition stay untouched.
func (r *TradeRepository) Save(ctx context.Context, trade *domain.Trade) error {
	rows := newTradeRows(trade)

	putRequest := func(record any) (types.WriteRequest, error) {
		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			return types.WriteRequest{}, err
		}
		return types.WriteRequest{PutRequest: &types.PutRequest{Item: item}}, nil
	}

	records := []any{rows.metadata}
	if trade.IsNew() {
		records = append(records, rows.decider, rows.requester)
		for _, item := range rows.items {
			records = append(records, item)
		}
	}
	if trade.BookOwnershipChanged() {
		for _, book := range trade.Books() {
			records = append(records, newBookRecord(book))
		}
	}

	requests := make([]types.WriteRequest, 0, len(records))
	for _, record := range records {
		request, err := putRequest(record)
		if err != nil {
			r.logger.Error("Failed to marshal trade row", zap.String("tradeID", trade.ID()), zap.Error(err))
			return apperrors.NewInternal("unexpected error", err)
		}
		requests = append(requests, request)
	}

	if err := batchWrite(ctx, r.client, r.tableName, requests, r.logger); err != nil {
		r.logger.Error("Failed to save trade", zap.String("tradeID", trade.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	r.logger.Debug("Trade saved",
		zap.String("tradeID", trade.ID()),
		zap.String("status", string(trade.Status())),
		zap.Bool("new", trade.IsNew()),
		zap.Bool("ownershipChanged", trade.BookOwnershipChanged()),
	)
	return nil
}

// Remove deletes every row of the trade's partition.
func (r *TradeRepository) Remove(ctx context.Context, trade *domain.Trade) error {
	rows := newTradeRows(trade)

	keys := rows.keys()
	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}

	if err := batchWrite(ctx, r.client, r.tableName, requests, r.logger); err != nil {
		r.logger.Error("Failed to remove trade", zap.String("tradeID", trade.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	r.logger.Debug("Trade removed", zap.String("tradeID", trade.ID()))
	return nil
}

// findByIndexKey queries GSI1 for rows projected under the given key and
// loads the full trade for each hit.
func (r *TradeRepository) findByIndexKey(ctx context.Context, indexKey string) ([]*domain.Trade, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(indexKey)).
		And(expression.Key("GSI1SK").BeginsWith(tradePrefix))

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
	})
	if err != nil {
		r.logger.Error("Failed to query trades by index key", zap.String("indexKey", indexKey), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return r.loadTrades(ctx, tradeIDsFromItems(items, "tradeId"))
}

// loadTrades fetches the full aggregates concurrently. All loads must
// succeed; a single failure fails the whole call.
func (r *TradeRepository) loadTrades(ctx context.Context, tradeIDs []string) ([]*domain.Trade, error) {
	if len(tradeIDs) == 0 {
		return []*domain.Trade{}, nil
	}

	trades := make([]*domain.Trade, len(tradeIDs))
	errs := make([]error, len(tradeIDs))

	var wg sync.WaitGroup
	for i, tradeID := range tradeIDs {
		wg.Add(1)
		go func(i int, tradeID string) {
			defer wg.Done()
			trades[i], errs[i] = r.FindByID(ctx, tradeID)
		}(i, tradeID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return trades, nil
}

func (r *TradeRepository) queryAllPages(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
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

// tradeIDsFromItems pulls the trade id attribute out of index rows,
// skipping duplicates.
func tradeIDsFromItems(items []map[string]types.AttributeValue, attrName string) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))

	for _, item := range items {
		v, ok := item[attrName].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if _, dup := seen[v.Value]; dup {
			continue
		}
		seen[v.Value] = struct{}{}
		ids = append(ids, v.Value)
	}

	return ids
}
