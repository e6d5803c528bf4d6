package ports

import (
	"context"

	"github.com/adibtatriantama/FCC-Book-Trading/domain"
)

// ReadOptions controls read consistency. The default is eventually
// consistent; callers that need read-after-write guarantees opt in.
type ReadOptions struct {
	ConsistentRead bool
}

// ReadOption mutates ReadOptions.
type ReadOption func(*ReadOptions)

// WithConsistentRead requests a strongly consistent read.
func WithConsistentRead() ReadOption {
	return func(o *ReadOptions) {
		o.ConsistentRead = true
	}
}

// ApplyReadOptions folds the given options over the defaults.
func ApplyReadOptions(opts []ReadOption) ReadOptions {
	var options ReadOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// UserRepository provides access to user profiles.
//
// All finders return a NOT_FOUND error for absent ids and an INTERNAL
// error for lower-level faults; callers can rely on the two being
// distinguishable.
type UserRepository interface {
	FindByID(ctx context.Context, userID string, opts ...ReadOption) (*domain.User, error)
	// FindByIDs chunks transparently to the store's batch-get limit, so
	// there is no caller-visible bound on len(userIDs).
	FindByIDs(ctx context.Context, userIDs []string, opts ...ReadOption) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}

// BookRepository provides access to book listings.
type BookRepository interface {
	FindByID(ctx context.Context, bookID string, opts ...ReadOption) (*domain.Book, error)
	FindByIDs(ctx context.Context, bookIDs []string, opts ...ReadOption) ([]*domain.Book, error)
	// FindByOwnerID returns the owner's books, most recently listed first.
	// It reads the owner index, which only supports eventually consistent
	// reads, so it takes no ReadOption.
	FindByOwnerID(ctx context.Context, ownerID string) ([]*domain.Book, error)
	// FindRecent returns all books, most recently listed first.
	FindRecent(ctx context.Context, opts ...ReadOption) ([]*domain.Book, error)
	Save(ctx context.Context, book *domain.Book) error
	Remove(ctx context.Context, book *domain.Book) error
}

// TradeRepository provides access to trade aggregates.
type TradeRepository interface {
	FindByID(ctx context.Context, tradeID string, opts ...ReadOption) (*domain.Trade, error)
	FindByDeciderID(ctx context.Context, deciderID string) ([]*domain.Trade, error)
	FindByRequesterID(ctx context.Context, requesterID string) ([]*domain.Trade, error)
	FindByBookID(ctx context.Context, bookID string) ([]*domain.Trade, error)
	// FindAccepted returns accepted trades, most recently accepted first.
	FindAccepted(ctx context.Context) ([]*domain.Trade, error)
	CountPendingByBookID(ctx context.Context, bookID string) (int, error)
	Save(ctx context.Context, trade *domain.Trade) error
	Remove(ctx context.Context, trade *domain.Trade) error
}
