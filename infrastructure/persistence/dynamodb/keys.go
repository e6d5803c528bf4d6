package dynamodb

import "time"

// All entities share one table. Rows are typed by key prefix:
//
//	user            PK=u#<userId>  SK=metadata
//	book            PK=book        SK=b#<bookId>   GSI1: u#<ownerId> / b#<bookId>
//	trade metadata  PK=t#<tradeId> SK=metadata     GSI1 (accepted only): trade / t#accepted#<ts>
//	trade decider   PK=t#<tradeId> SK=ow#<userId>  GSI1: ow#<userId> / t#<tradeId>
//	trade requester PK=t#<tradeId> SK=tr#<userId>  GSI1: tr#<userId> / t#<tradeId>
//	trade book item PK=t#<tradeId> SK=ti#<bookId>  GSI1: ti#<bookId> / t#<tradeId>
//
// Every row of one trade shares the trade's partition key, so loading a
// full trade is a single partition query. The GSI1 projections cover the
// by-owner, by-trader, by-book and recent-accepted access patterns.
const (
	userPrefix      = "u#"
	bookPrefix      = "b#"
	tradePrefix     = "t#"
	deciderPrefix   = "ow#"
	requesterPrefix = "tr#"
	tradeItemPrefix = "ti#"

	metadataSortKey   = "metadata"
	bookPartitionKey  = "book"
	tradePartitionKey = "trade"
)

// timestampLayout is fixed-width so formatted timestamps sort
// lexicographically in index sort keys.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timestampLayout, s)
}

func userKey(userID string) string   { return userPrefix + userID }
func bookKey(bookID string) string   { return bookPrefix + bookID }
func tradeKey(tradeID string) string { return tradePrefix + tradeID }

func deciderKey(userID string) string   { return deciderPrefix + userID }
func requesterKey(userID string) string { return requesterPrefix + userID }
func tradeItemKey(bookID string) string { return tradeItemPrefix + bookID }

// acceptedTradeSortKey orders accepted trades by acceptance time in the
// GSI, e.g. "t#accepted#2023-04-01T10:00:00.000Z".
func acceptedTradeSortKey(acceptedAt time.Time) string {
	return tradePrefix + "accepted#" + formatTimestamp(acceptedAt)
}
