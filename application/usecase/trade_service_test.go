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

func TestTradeServiceCreateTrade(t *testing.T) {
	ctx := context.Background()
	decider := newServiceTestUser(t, "user-1", "alice")
	requester := newServiceTestUser(t, "user-2", "bob")

	t.Run("creates a pending trade", func(t *testing.T) {
		deciderBook := newServiceTestBook(t, "Decider's Book", decider)
		requesterBook := newServiceTestBook(t, "Requester's Book", requester)
		tradeRepo := newFakeTradeRepo()
		service := NewTradeService(tradeRepo, newFakeBookRepo(deciderBook, requesterBook), newFakeUserRepo(decider, requester), zap.NewNop())

		trade, err := service.CreateTrade(ctx, CreateTradeInput{
			RequesterID:      "user-2",
			DeciderID:        "user-1",
			DeciderBookIDs:   []string{deciderBook.ID()},
			RequesterBookIDs: []string{requesterBook.ID()},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TradeStatusPending, trade.Status())
		assert.Equal(t, "user-1", trade.Decider().ID())
		assert.Equal(t, "user-2", trade.Requester().ID())
		require.Len(t, tradeRepo.saved, 1)
	})

	t.Run("rejects trading with yourself", func(t *testing.T) {
		service := NewTradeService(newFakeTradeRepo(), newFakeBookRepo(), newFakeUserRepo(decider), zap.NewNop())

		_, err := service.CreateTrade(ctx, CreateTradeInput{
			RequesterID:      "user-1",
			DeciderID:        "user-1",
			DeciderBookIDs:   []string{"b1"},
			RequesterBookIDs: []string{"b2"},
		})

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("fails when a book is missing", func(t *testing.T) {
		requesterBook := newServiceTestBook(t, "Requester's Book", requester)
		service := NewTradeService(newFakeTradeRepo(), newFakeBookRepo(requesterBook), newFakeUserRepo(decider, requester), zap.NewNop())

		_, err := service.CreateTrade(ctx, CreateTradeInput{
			RequesterID:      "user-2",
			DeciderID:        "user-1",
			DeciderBookIDs:   []string{"missing"},
			RequesterBookIDs: []string{requesterBook.ID()},
		})

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("fails when a book belongs to the other side", func(t *testing.T) {
		deciderBook := newServiceTestBook(t, "Decider's Book", decider)
		requesterBook := newServiceTestBook(t, "Requester's Book", requester)
		service := NewTradeService(newFakeTradeRepo(), newFakeBookRepo(deciderBook, requesterBook), newFakeUserRepo(decider, requester), zap.NewNop())

		_, err := service.CreateTrade(ctx, CreateTradeInput{
			RequesterID:      "user-2",
			DeciderID:        "user-1",
			DeciderBookIDs:   []string{requesterBook.ID()},
			RequesterBookIDs: []string{deciderBook.ID()},
		})

		assert.True(t, apperrors.IsValidation(err))
	})
}

func newPendingTrade(t *testing.T, decider, requester *domain.User) *domain.Trade {
	t.Helper()

	deciderBook := newServiceTestBook(t, "Decider's Book", decider)
	requesterBook := newServiceTestBook(t, "Requester's Book", requester)
	trade, err := domain.NewTrade(decider.Details(), requester.Details(), []*domain.Book{deciderBook}, []*domain.Book{requesterBook})
	require.NoError(t, err)
	return trade
}

func TestTradeServiceAcceptTrade(t *testing.T) {
	ctx := context.Background()
	decider := newServiceTestUser(t, "user-1", "alice")
	requester := newServiceTestUser(t, "user-2", "bob")

	t.Run("decider accepts and ownership swaps", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		tradeRepo := newFakeTradeRepo(trade)
		service := NewTradeService(tradeRepo, newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		accepted, err := service.AcceptTrade(ctx, trade.ID(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.TradeStatusAccepted, accepted.Status())
		assert.Equal(t, "user-2", accepted.DeciderBooks()[0].Owner().ID())
		assert.Equal(t, "user-1", accepted.RequesterBooks()[0].Owner().ID())
		require.Len(t, tradeRepo.saved, 1)
	})

	t.Run("only the decider may accept", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		service := NewTradeService(newFakeTradeRepo(trade), newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		_, err := service.AcceptTrade(ctx, trade.ID(), "user-2")

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("accepting a decided trade fails", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		require.NoError(t, trade.Reject())
		service := NewTradeService(newFakeTradeRepo(trade), newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		_, err := service.AcceptTrade(ctx, trade.ID(), "user-1")

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestTradeServiceRejectTrade(t *testing.T) {
	ctx := context.Background()
	decider := newServiceTestUser(t, "user-1", "alice")
	requester := newServiceTestUser(t, "user-2", "bob")

	t.Run("decider rejects", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		service := NewTradeService(newFakeTradeRepo(trade), newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		rejected, err := service.RejectTrade(ctx, trade.ID(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.TradeStatusRejected, rejected.Status())
		assert.Equal(t, "user-1", rejected.DeciderBooks()[0].Owner().ID())
	})

	t.Run("only the decider may reject", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		service := NewTradeService(newFakeTradeRepo(trade), newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		_, err := service.RejectTrade(ctx, trade.ID(), "user-2")

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestTradeServiceRemoveTrade(t *testing.T) {
	ctx := context.Background()
	decider := newServiceTestUser(t, "user-1", "alice")
	requester := newServiceTestUser(t, "user-2", "bob")

	t.Run("requester withdraws a pending trade", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		tradeRepo := newFakeTradeRepo(trade)
		service := NewTradeService(tradeRepo, newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		err := service.RemoveTrade(ctx, trade.ID(), "user-2")

		require.NoError(t, err)
		require.Len(t, tradeRepo.removed, 1)
	})

	t.Run("only the requester may remove", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		service := NewTradeService(newFakeTradeRepo(trade), newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		err := service.RemoveTrade(ctx, trade.ID(), "user-1")

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("decided trades stay in history", func(t *testing.T) {
		trade := newPendingTrade(t, decider, requester)
		require.NoError(t, trade.Accept())
		tradeRepo := newFakeTradeRepo(trade)
		service := NewTradeService(tradeRepo, newFakeBookRepo(), newFakeUserRepo(), zap.NewNop())

		err := service.RemoveTrade(ctx, trade.ID(), "user-2")

		assert.True(t, apperrors.IsValidation(err))
		assert.Empty(t, tradeRepo.removed)
	})
}
