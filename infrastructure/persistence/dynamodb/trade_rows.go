package dynamodb

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/adibtatriantama/FCC-Book-Trading/domain"
)

// tradeRows is the denormalized row set of one trade aggregate: a metadata
// row, one row per participant and one row per book line item. Every row
// shares the trade's partition key.
type tradeRows struct {
	metadata  tradeMetadataRecord
	decider   tradeParticipantRecord
	requester tradeParticipantRecord
	items     []tradeItemRecord
}

// newTradeRows decomposes a trade into its row set.
func newTradeRows(t *domain.Trade) tradeRows {
	pk := tradeKey(t.ID())

	metadata := tradeMetadataRecord{
		PK:        pk,
		SK:        metadataSortKey,
		Kind:      kindTrade,
		ID:        t.ID(),
		Status:    string(t.Status()),
		CreatedAt: formatTimestamp(t.CreatedAt()),
		UpdatedAt: formatTimestamp(t.UpdatedAt()),
	}
	if t.Status() == domain.TradeStatusAccepted {
		metadata.GSI1PK = tradePartitionKey
		metadata.GSI1SK = acceptedTradeSortKey(t.AcceptedAt())
		metadata.AcceptedAt = formatTimestamp(t.AcceptedAt())
	}

	decider := tradeParticipantRecord{
		PK:       pk,
		SK:       deciderKey(t.Decider().ID()),
		GSI1PK:   deciderKey(t.Decider().ID()),
		GSI1SK:   pk,
		Kind:     kindTradeDecider,
		UserID:   t.Decider().ID(),
		TradeID:  t.ID(),
		Nickname: t.Decider().Nickname(),
		Address:  newAddressRecord(t.Decider().Address()),
	}

	requester := tradeParticipantRecord{
		PK:       pk,
		SK:       requesterKey(t.Requester().ID()),
		GSI1PK:   requesterKey(t.Requester().ID()),
		GSI1SK:   pk,
		Kind:     kindTradeRequester,
		UserID:   t.Requester().ID(),
		TradeID:  t.ID(),
		Nickname: t.Requester().Nickname(),
		Address:  newAddressRecord(t.Requester().Address()),
	}

	books := t.Books()
	items := make([]tradeItemRecord, 0, len(books))
	for _, book := range books {
		items = append(items, tradeItemRecord{
			PK:          pk,
			SK:          tradeItemKey(book.ID()),
			GSI1PK:      tradeItemKey(book.ID()),
			GSI1SK:      pk,
			Kind:        kindTradeItem,
			BookID:      book.ID(),
			OwnerID:     book.Owner().ID(),
			TradeID:     t.ID(),
			Title:       book.Title(),
			Author:      book.Author(),
			Description: book.Description(),
			CreatedAt:   formatTimestamp(book.CreatedAt()),
		})
	}

	return tradeRows{
		metadata:  metadata,
		decider:   decider,
		requester: requester,
		items:     items,
	}
}

// toTrade reassembles the trade aggregate. Book line items are sorted back
// into the two sides by matching ownerId against the participant ids.
func (tr tradeRows) toTrade() (*domain.Trade, error) {
	decider := domain.NewUserDetails(tr.decider.UserID, tr.decider.Nickname, tr.decider.Address.toAddress())
	requester := domain.NewUserDetails(tr.requester.UserID, tr.requester.Nickname, tr.requester.Address.toAddress())

	var deciderBooks, requesterBooks []*domain.Book
	for _, item := range tr.items {
		createdAt, err := parseTimestamp(item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("trade item %s: %w", item.BookID, err)
		}

		switch item.OwnerID {
		case decider.ID():
			book := domain.ReconstructBook(item.BookID, item.Title, item.Author, item.Description, decider, createdAt, createdAt, createdAt)
			deciderBooks = append(deciderBooks, book)
		case requester.ID():
			book := domain.ReconstructBook(item.BookID, item.Title, item.Author, item.Description, requester, createdAt, createdAt, createdAt)
			requesterBooks = append(requesterBooks, book)
		default:
			return nil, fmt.Errorf("trade item %s owned by %s matches neither participant", item.BookID, item.OwnerID)
		}
	}

	createdAt, err := parseTimestamp(tr.metadata.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp(tr.metadata.UpdatedAt)
	if err != nil {
		return nil, err
	}
	acceptedAt, err := parseTimestamp(tr.metadata.AcceptedAt)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructTrade(
		tr.metadata.ID,
		decider, requester,
		deciderBooks, requesterBooks,
		domain.TradeStatus(tr.metadata.Status),
		createdAt, updatedAt, acceptedAt,
	)
}

// keys returns the primary key of every row in the partition, for deletes.
func (tr tradeRows) keys() []map[string]types.AttributeValue {
	rowKey := func(pk, sk string) map[string]types.AttributeValue {
		return map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		}
	}

	keys := []map[string]types.AttributeValue{
		rowKey(tr.metadata.PK, tr.metadata.SK),
		rowKey(tr.decider.PK, tr.decider.SK),
		rowKey(tr.requester.PK, tr.requester.SK),
	}
	for _, item := range tr.items {
		keys = append(keys, rowKey(item.PK, item.SK))
	}
	return keys
}

// parseTradePartition classifies the raw rows of one trade partition by
// sort key prefix. It fails when the metadata row or either participant
// row is missing, which indicates a malformed partition.
func parseTradePartition(items []map[string]types.AttributeValue) (tradeRows, error) {
	var (
		rows         tradeRows
		hasMetadata  bool
		hasDecider   bool
		hasRequester bool
	)

	for _, item := range items {
		sk := ""
		if v, ok := item["SK"].(*types.AttributeValueMemberS); ok {
			sk = v.Value
		}

		switch {
		case sk == metadataSortKey:
			if err := attributevalue.UnmarshalMap(item, &rows.metadata); err != nil {
				return tradeRows{}, fmt.Errorf("unmarshal trade metadata: %w", err)
			}
			hasMetadata = true
		case strings.HasPrefix(sk, deciderPrefix):
			if err := attributevalue.UnmarshalMap(item, &rows.decider); err != nil {
				return tradeRows{}, fmt.Errorf("unmarshal trade decider: %w", err)
			}
			hasDecider = true
		case strings.HasPrefix(sk, requesterPrefix):
			if err := attributevalue.UnmarshalMap(item, &rows.requester); err != nil {
				return tradeRows{}, fmt.Errorf("unmarshal trade requester: %w", err)
			}
			hasRequester = true
		case strings.HasPrefix(sk, tradeItemPrefix):
			var rec tradeItemRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return tradeRows{}, fmt.Errorf("unmarshal trade item: %w", err)
			}
			rows.items = append(rows.items, rec)
		default:
			return tradeRows{}, fmt.Errorf("unexpected sort key %q in trade partition", sk)
		}
	}

	if !hasMetadata {
		return tradeRows{}, fmt.Errorf("trade partition is missing its metadata row")
	}
	if !hasDecider || !hasRequester {
		return tradeRows{}, fmt.Errorf("trade partition is missing a participant row")
	}

	return rows, nil
}
