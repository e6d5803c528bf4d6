package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	// DynamoDB limits BatchGetItem to 100 keys per request.
	maxBatchGetItems = 100
	// DynamoDB limits BatchWriteItem to 25 requests per call.
	maxBatchWriteItems = 25

	maxBatchRetries = 3
)

// batchGet fetches all keys, chunking to the per-request limit and
// re-queuing unprocessed keys. There is no caller-visible bound on
// len(keys).
func batchGet(
	ctx context.Context,
	client Client,
	tableName string,
	keys []map[string]types.AttributeValue,
	consistentRead bool,
) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0, len(keys))

	pending := keys
	for len(pending) > 0 {
		end := maxBatchGetItems
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[:end]
		pending = pending[end:]

		result, err := client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				tableName: {
					Keys:           chunk,
					ConsistentRead: &consistentRead,
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("batch get failed: %w", err)
		}

		items = append(items, result.Responses[tableName]...)

		// Throttled keys come back unprocessed; put them back in line.
		if unprocessed, ok := result.UnprocessedKeys[tableName]; ok && len(unprocessed.Keys) > 0 {
			pending = append(pending, unprocessed.Keys...)
		}
	}

	return items, nil
}

// batchWrite applies the requests in chunks of the per-request limit,
// retrying unprocessed items with backoff.
func batchWrite(
	ctx context.Context,
	client Client,
	tableName string,
	requests []types.WriteRequest,
	logger *zap.Logger,
) error {
	for i := 0; i < len(requests); i += maxBatchWriteItems {
		end := i + maxBatchWriteItems
		if end > len(requests) {
			end = len(requests)
		}

		unprocessed := requests[i:end]
		for retry := 0; retry <= maxBatchRetries && len(unprocessed) > 0; retry++ {
			if retry > 0 {
				backoff := time.Duration(retry*retry) * 100 * time.Millisecond
				logger.Warn("Retrying unprocessed batch write items",
					zap.Int("count", len(unprocessed)),
					zap.Int("retry", retry),
					zap.Duration("backoff", backoff),
				)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(backoff):
				}
			}

			result, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					tableName: unprocessed,
				},
			})
			if err != nil {
				return fmt.Errorf("batch write failed: %w", err)
			}

			unprocessed = result.UnprocessedItems[tableName]
		}

		if len(unprocessed) > 0 {
			return fmt.Errorf("failed to process %d items after %d retries", len(unprocessed), maxBatchRetries)
		}
	}

	return nil
}
