package domain

import (
	"time"

	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// TradeStatus is the lifecycle state of a trade. Accepted and rejected
// are terminal.
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "pending"
	TradeStatusAccepted TradeStatus = "accepted"
	TradeStatusRejected TradeStatus = "rejected"
)

// Trade is a proposal by the requester to exchange their books for books
// owned by the decider. Participant and book fields are point-in-time
// snapshots taken at proposal time; later edits to the live entities do
// not flow back into the trade. That is deliberate history preservation.
type Trade struct {
	id             string
	decider        UserDetails
	requester      UserDetails
	deciderBooks   []*Book
	requesterBooks []*Book
	status         TradeStatus
	createdAt      time.Time
	updatedAt      time.Time
	acceptedAt     time.Time

	isNew            bool
	ownershipChanged bool
}

// NewTrade creates a pending trade proposal. Both sides must offer at
// least one book, and a user cannot trade with themselves.
func NewTrade(decider, requester UserDetails, deciderBooks, requesterBooks []*Book) (*Trade, error) {
	if decider.ID() == requester.ID() {
		return nil, apperrors.NewValidation("can't trade with same person")
	}
	if len(deciderBooks) == 0 || len(requesterBooks) == 0 {
		return nil, apperrors.NewValidation("trade must have at least one book per side")
	}

	now := time.Now().UTC()
	return &Trade{
		id:             newID(),
		decider:        decider,
		requester:      requester,
		deciderBooks:   deciderBooks,
		requesterBooks: requesterBooks,
		status:         TradeStatusPending,
		createdAt:      now,
		updatedAt:      now,
		isNew:          true,
	}, nil
}

// ReconstructTrade rebuilds a trade from persisted rows. acceptedAt is the
// zero time unless the trade was accepted.
func ReconstructTrade(
	id string,
	decider, requester UserDetails,
	deciderBooks, requesterBooks []*Book,
	status TradeStatus,
	createdAt, updatedAt, acceptedAt time.Time,
) (*Trade, error) {
	if len(deciderBooks) == 0 || len(requesterBooks) == 0 {
		return nil, apperrors.NewValidation("trade must have at least one book per side")
	}

	return &Trade{
		id:             id,
		decider:        decider,
		requester:      requester,
		deciderBooks:   deciderBooks,
		requesterBooks: requesterBooks,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		acceptedAt:     acceptedAt,
	}, nil
}

func (t *Trade) ID() string              { return t.id }
func (t *Trade) Decider() UserDetails    { return t.decider }
func (t *Trade) Requester() UserDetails  { return t.requester }
func (t *Trade) DeciderBooks() []*Book   { return t.deciderBooks }
func (t *Trade) RequesterBooks() []*Book { return t.requesterBooks }
func (t *Trade) Status() TradeStatus     { return t.status }
func (t *Trade) CreatedAt() time.Time    { return t.createdAt }
func (t *Trade) UpdatedAt() time.Time    { return t.updatedAt }

// AcceptedAt is the zero time unless Status is accepted.
func (t *Trade) AcceptedAt() time.Time { return t.acceptedAt }

// IsNew reports whether the trade was created in this process rather than
// loaded from storage. New trades write their full row set on save.
func (t *Trade) IsNew() bool { return t.isNew }

// BookOwnershipChanged reports whether Accept transferred book ownership,
// meaning the live book rows must be rewritten alongside the metadata.
func (t *Trade) BookOwnershipChanged() bool { return t.ownershipChanged }

// Books returns both sides' line items combined.
func (t *Trade) Books() []*Book {
	books := make([]*Book, 0, len(t.deciderBooks)+len(t.requesterBooks))
	books = append(books, t.deciderBooks...)
	books = append(books, t.requesterBooks...)
	return books
}

// Accept approves a pending trade and swaps book ownership: the decider's
// books go to the requester and vice versa.
func (t *Trade) Accept() error {
	if t.status != TradeStatusPending {
		return apperrors.NewValidation("unable to accept trade, trade status is not pending")
	}

	now := time.Now().UTC()
	t.status = TradeStatusAccepted
	t.acceptedAt = now
	t.updatedAt = now

	for _, book := range t.deciderBooks {
		book.TransferOwnership(t.requester)
	}
	for _, book := range t.requesterBooks {
		book.TransferOwnership(t.decider)
	}
	t.ownershipChanged = true

	return nil
}

// Reject declines a pending trade. No ownership changes.
func (t *Trade) Reject() error {
	if t.status != TradeStatusPending {
		return apperrors.NewValidation("unable to reject trade, trade status is not pending")
	}

	t.status = TradeStatusRejected
	t.updatedAt = time.Now().UTC()
	return nil
}
