package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// BookService handles book listing operations.
type BookService struct {
	bookRepo  ports.BookRepository
	userRepo  ports.UserRepository
	tradeRepo ports.TradeRepository
	logger    *zap.Logger
}

// NewBookService creates a new book service.
func NewBookService(
	bookRepo ports.BookRepository,
	userRepo ports.UserRepository,
	tradeRepo ports.TradeRepository,
	logger *zap.Logger,
) *BookService {
	return &BookService{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		logger:    logger,
	}
}

// AddBook lists a new book owned by the caller. The owner snapshot is
// taken from the user's current profile.
func (s *BookService) AddBook(ctx context.Context, ownerID, title, author, description string) (*domain.Book, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewBook(title, author, description, owner.Details())
	if err != nil {
		return nil, err
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("Book added",
		zap.String("bookID", book.ID()),
		zap.String("ownerID", ownerID),
	)
	return book, nil
}

// RemoveBook delists a book. Only the owner may remove it, and not while
// pending trades still reference it.
func (s *BookService) RemoveBook(ctx context.Context, bookID, userID string) error {
	book, err := s.bookRepo.FindByID(ctx, bookID, ports.WithConsistentRead())
	if err != nil {
		return err
	}

	if book.Owner().ID() != userID {
		return apperrors.NewValidation("only the owner can remove the book")
	}

	pendingCount, err := s.tradeRepo.CountPendingByBookID(ctx, bookID)
	if err != nil {
		return err
	}
	if pendingCount > 0 {
		return apperrors.NewValidation("unable to remove book, book has pending trades")
	}

	if err := s.bookRepo.Remove(ctx, book); err != nil {
		return err
	}

	s.logger.Info("Book removed", zap.String("bookID", bookID))
	return nil
}

// FindBookByID returns a single book listing.
func (s *BookService) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.bookRepo.FindByID(ctx, bookID)
}

// FindBooksByOwner returns the owner's books, most recently listed first.
func (s *BookService) FindBooksByOwner(ctx context.Context, ownerID string) ([]*domain.Book, error) {
	return s.bookRepo.FindByOwnerID(ctx, ownerID)
}

// FindRecentBooks returns all listings, most recently listed first.
func (s *BookService) FindRecentBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.FindRecent(ctx)
}
