package dynamodb

import (
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
)

// Flat row shapes persisted to the table. Attribute names are part of the
// table contract; external readers match rows by key prefix and kind.

type addressRecord struct {
	City  string `dynamodbav:"city"`
	State string `dynamodbav:"state"`
}

type ownerRecord struct {
	ID       string        `dynamodbav:"id"`
	Nickname string        `dynamodbav:"nickname"`
	Address  addressRecord `dynamodbav:"address"`
}

type userRecord struct {
	PK       string        `dynamodbav:"PK"`
	SK       string        `dynamodbav:"SK"`
	Kind     string        `dynamodbav:"kind"`
	ID       string        `dynamodbav:"id"`
	Nickname string        `dynamodbav:"nickname"`
	Email    string        `dynamodbav:"email"`
	Address  addressRecord `dynamodbav:"address"`
}

type bookRecord struct {
	PK          string      `dynamodbav:"PK"`
	SK          string      `dynamodbav:"SK"`
	GSI1PK      string      `dynamodbav:"GSI1PK"`
	GSI1SK      string      `dynamodbav:"GSI1SK"`
	Kind        string      `dynamodbav:"kind"`
	ID          string      `dynamodbav:"id"`
	Title       string      `dynamodbav:"title"`
	Author      string      `dynamodbav:"author"`
	Description string      `dynamodbav:"description"`
	Owner       ownerRecord `dynamodbav:"owner"`
	CreatedAt   string      `dynamodbav:"createdAt"`
	UpdatedAt   string      `dynamodbav:"updatedAt"`
	AddedAt     string      `dynamodbav:"addedAt"`
}

type tradeMetadataRecord struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	// GSI1 attributes exist only on accepted trades, so the
	// accepted-trades index never lists other statuses.
	GSI1PK     string `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK     string `dynamodbav:"GSI1SK,omitempty"`
	Kind       string `dynamodbav:"kind"`
	ID         string `dynamodbav:"id"`
	Status     string `dynamodbav:"status"`
	CreatedAt  string `dynamodbav:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt"`
	AcceptedAt string `dynamodbav:"acceptedAt,omitempty"`
}

type tradeParticipantRecord struct {
	PK       string        `dynamodbav:"PK"`
	SK       string        `dynamodbav:"SK"`
	GSI1PK   string        `dynamodbav:"GSI1PK"`
	GSI1SK   string        `dynamodbav:"GSI1SK"`
	Kind     string        `dynamodbav:"kind"`
	UserID   string        `dynamodbav:"userId"`
	TradeID  string        `dynamodbav:"tradeId"`
	Nickname string        `dynamodbav:"nickname"`
	Address  addressRecord `dynamodbav:"address"`
}

type tradeItemRecord struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI1PK      string `dynamodbav:"GSI1PK"`
	GSI1SK      string `dynamodbav:"GSI1SK"`
	Kind        string `dynamodbav:"kind"`
	BookID      string `dynamodbav:"bookId"`
	OwnerID     string `dynamodbav:"ownerId"`
	TradeID     string `dynamodbav:"tradeId"`
	Title       string `dynamodbav:"title"`
	Author      string `dynamodbav:"author"`
	Description string `dynamodbav:"description"`
	// CreatedAt of the underlying book, carried so that rewriting the
	// live book row after an ownership transfer keeps its listing time.
	CreatedAt string `dynamodbav:"createdAt"`
}

const (
	kindUser           = "User"
	kindBook           = "Book"
	kindTrade          = "Trade"
	kindTradeDecider   = "Trade's Decider"
	kindTradeRequester = "Trade's Requester"
	kindTradeItem      = "Trade Item"
)

func newAddressRecord(a domain.Address) addressRecord {
	return addressRecord{City: a.City, State: a.State}
}

func (r addressRecord) toAddress() domain.Address {
	return domain.Address{City: r.City, State: r.State}
}

func newUserRecord(u *domain.User) userRecord {
	return userRecord{
		PK:       userKey(u.ID()),
		SK:       metadataSortKey,
		Kind:     kindUser,
		ID:       u.ID(),
		Nickname: u.Nickname(),
		Email:    u.Email(),
		Address:  newAddressRecord(u.Address()),
	}
}

func (r userRecord) toUser() (*domain.User, error) {
	return domain.NewUser(r.ID, r.Nickname, r.Email, r.Address.toAddress())
}

func newBookRecord(b *domain.Book) bookRecord {
	return bookRecord{
		PK:          bookPartitionKey,
		SK:          bookKey(b.ID()),
		GSI1PK:      userKey(b.Owner().ID()),
		GSI1SK:      bookKey(b.ID()),
		Kind:        kindBook,
		ID:          b.ID(),
		Title:       b.Title(),
		Author:      b.Author(),
		Description: b.Description(),
		Owner: ownerRecord{
			ID:       b.Owner().ID(),
			Nickname: b.Owner().Nickname(),
			Address:  newAddressRecord(b.Owner().Address()),
		},
		CreatedAt: formatTimestamp(b.CreatedAt()),
		UpdatedAt: formatTimestamp(b.UpdatedAt()),
		AddedAt:   formatTimestamp(b.AddedAt()),
	}
}

func (r bookRecord) toBook() (*domain.Book, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	addedAt, err := parseTimestamp(r.AddedAt)
	if err != nil {
		return nil, err
	}

	owner := domain.NewUserDetails(r.Owner.ID, r.Owner.Nickname, r.Owner.Address.toAddress())
	return domain.ReconstructBook(r.ID, r.Title, r.Author, r.Description, owner, createdAt, updatedAt, addedAt), nil
}
