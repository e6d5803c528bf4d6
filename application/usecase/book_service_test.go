package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

func newServiceTestUser(t *testing.T, id, nickname string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, nickname, nickname+"@example.com", domain.Address{City: "Jakarta"})
	require.NoError(t, err)
	return user
}

func newServiceTestBook(t *testing.T, title string, owner *domain.User) *domain.Book {
	t.Helper()
	book, err := domain.NewBook(title, "Some Author", "", owner.Details())
	require.NoError(t, err)
	return book
}

func TestBookServiceAddBook(t *testing.T) {
	ctx := context.Background()
	owner := newServiceTestUser(t, "user-1", "alice")

	t.Run("snapshots the owner profile", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		service := NewBookService(bookRepo, newFakeUserRepo(owner), newFakeTradeRepo(), zap.NewNop())

		book, err := service.AddBook(ctx, "user-1", "A Book", "Author", "desc")

		require.NoError(t, err)
		assert.Equal(t, "user-1", book.Owner().ID())
		assert.Equal(t, "alice", book.Owner().Nickname())
		require.Len(t, bookRepo.saved, 1)
	})

	t.Run("fails for unknown owner", func(t *testing.T) {
		service := NewBookService(newFakeBookRepo(), newFakeUserRepo(), newFakeTradeRepo(), zap.NewNop())

		_, err := service.AddBook(ctx, "ghost", "A Book", "Author", "")

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("fails on empty title", func(t *testing.T) {
		service := NewBookService(newFakeBookRepo(), newFakeUserRepo(owner), newFakeTradeRepo(), zap.NewNop())

		_, err := service.AddBook(ctx, "user-1", "", "Author", "")

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestBookServiceRemoveBook(t *testing.T) {
	ctx := context.Background()
	owner := newServiceTestUser(t, "user-1", "alice")

	t.Run("removes the owner's book", func(t *testing.T) {
		book := newServiceTestBook(t, "A Book", owner)
		bookRepo := newFakeBookRepo(book)
		service := NewBookService(bookRepo, newFakeUserRepo(owner), newFakeTradeRepo(), zap.NewNop())

		err := service.RemoveBook(ctx, book.ID(), "user-1")

		require.NoError(t, err)
		require.Len(t, bookRepo.removed, 1)
	})

	t.Run("only the owner may remove", func(t *testing.T) {
		book := newServiceTestBook(t, "A Book", owner)
		service := NewBookService(newFakeBookRepo(book), newFakeUserRepo(owner), newFakeTradeRepo(), zap.NewNop())

		err := service.RemoveBook(ctx, book.ID(), "someone-else")

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("blocked while pending trades reference the book", func(t *testing.T) {
		book := newServiceTestBook(t, "A Book", owner)
		tradeRepo := newFakeTradeRepo()
		tradeRepo.pending[book.ID()] = 2
		bookRepo := newFakeBookRepo(book)
		service := NewBookService(bookRepo, newFakeUserRepo(owner), tradeRepo, zap.NewNop())

		err := service.RemoveBook(ctx, book.ID(), "user-1")

		assert.True(t, apperrors.IsValidation(err))
		assert.Empty(t, bookRepo.removed)
	})
}
