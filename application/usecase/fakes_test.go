package usecase

import (
	"context"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID()] = user
	}
	return repo
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID string, opts ...ports.ReadOption) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.NewNotFound("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, userIDs []string, opts ...ports.ReadOption) ([]*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := make([]*domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.ID()] = user
	return nil
}

type fakeBookRepo struct {
	books   map[string]*domain.Book
	saved   []*domain.Book
	removed []*domain.Book
	err     error
}

func newFakeBookRepo(books ...*domain.Book) *fakeBookRepo {
	repo := &fakeBookRepo{books: make(map[string]*domain.Book)}
	for _, book := range books {
		repo.books[book.ID()] = book
	}
	return repo
}

func (f *fakeBookRepo) FindByID(ctx context.Context, bookID string, opts ...ports.ReadOption) (*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	book, ok := f.books[bookID]
	if !ok {
		return nil, apperrors.NewNotFound("book not found")
	}
	return book, nil
}

func (f *fakeBookRepo) FindByIDs(ctx context.Context, bookIDs []string, opts ...ports.ReadOption) ([]*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	books := make([]*domain.Book, 0, len(bookIDs))
	for _, id := range bookIDs {
		if book, ok := f.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) FindByOwnerID(ctx context.Context, ownerID string) ([]*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	var books []*domain.Book
	for _, book := range f.books {
		if book.Owner().ID() == ownerID {
			books = append(books, book)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) FindRecent(ctx context.Context, opts ...ports.ReadOption) ([]*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	books := make([]*domain.Book, 0, len(f.books))
	for _, book := range f.books {
		books = append(books, book)
	}
	return books, nil
}

func (f *fakeBookRepo) Save(ctx context.Context, book *domain.Book) error {
	if f.err != nil {
		return f.err
	}
	f.books[book.ID()] = book
	f.saved = append(f.saved, book)
	return nil
}

func (f *fakeBookRepo) Remove(ctx context.Context, book *domain.Book) error {
	if f.err != nil {
		return f.err
	}
	delete(f.books, book.ID())
	f.removed = append(f.removed, book)
	return nil
}

type fakeTradeRepo struct {
	trades  map[string]*domain.Trade
	saved   []*domain.Trade
	removed []*domain.Trade
	pending map[string]int
	err     error
}

func newFakeTradeRepo(trades ...*domain.Trade) *fakeTradeRepo {
	repo := &fakeTradeRepo{
		trades:  make(map[string]*domain.Trade),
		pending: make(map[string]int),
	}
	for _, trade := range trades {
		repo.trades[trade.ID()] = trade
	}
	return repo
}

func (f *fakeTradeRepo) FindByID(ctx context.Context, tradeID string, opts ...ports.ReadOption) (*domain.Trade, error) {
	if f.err != nil {
		return nil, f.err
	}
	trade, ok := f.trades[tradeID]
	if !ok {
		return nil, apperrors.NewNotFound("trade not found")
	}
	return trade, nil
}

func (f *fakeTradeRepo) FindByDeciderID(ctx context.Context, deciderID string) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for _, trade := range f.trades {
		if trade.Decider().ID() == deciderID {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

func (f *fakeTradeRepo) FindByRequesterID(ctx context.Context, requesterID string) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for _, trade := range f.trades {
		if trade.Requester().ID() == requesterID {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

func (f *fakeTradeRepo) FindByBookID(ctx context.Context, bookID string) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for _, trade := range f.trades {
		for _, book := range trade.Books() {
			if book.ID() == bookID {
				trades = append(trades, trade)
				break
			}
		}
	}
	return trades, nil
}

func (f *fakeTradeRepo) FindAccepted(ctx context.Context) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for _, trade := range f.trades {
		if trade.Status() == domain.TradeStatusAccepted {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

func (f *fakeTradeRepo) CountPendingByBookID(ctx context.Context, bookID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if count, ok := f.pending[bookID]; ok {
		return count, nil
	}
	trades, _ := f.FindByBookID(ctx, bookID)
	count := 0
	for _, trade := range trades {
		if trade.Status() == domain.TradeStatusPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeTradeRepo) Save(ctx context.Context, trade *domain.Trade) error {
	if f.err != nil {
		return f.err
	}
	f.trades[trade.ID()] = trade
	f.saved = append(f.saved, trade)
	return nil
}

func (f *fakeTradeRepo) Remove(ctx context.Context, trade *domain.Trade) error {
	if f.err != nil {
		return f.err
	}
	delete(f.trades, trade.ID())
	f.removed = append(f.removed, trade)
	return nil
}
