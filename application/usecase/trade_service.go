package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// CreateTradeInput carries the parameters of a trade proposal. The
// requester offers their own books in exchange for the decider's.
type CreateTradeInput struct {
	RequesterID      string
	DeciderID        string
	DeciderBookIDs   []string
	RequesterBookIDs []string
}

// TradeService handles the trade lifecycle.
type TradeService struct {
	tradeRepo ports.TradeRepository
	bookRepo  ports.BookRepository
	userRepo  ports.UserRepository
	logger    *zap.Logger
}

// NewTradeService creates a new trade service.
func NewTradeService(
	tradeRepo ports.TradeRepository,
	bookRepo ports.BookRepository,
	userRepo ports.UserRepository,
	logger *zap.Logger,
) *TradeService {
	return &TradeService{
		tradeRepo: tradeRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreateTrade proposes a trade. Both participants and both book lists are
// fetched concurrently, then every book is checked to still belong to the
// side offering it.
func (s *TradeService) CreateTrade(ctx context.Context, input CreateTradeInput) (*domain.Trade, error) {
	if input.RequesterID == input.DeciderID {
		return nil, apperrors.NewValidation("can't trade with same person")
	}
	if len(input.DeciderBookIDs) == 0 || len(input.RequesterBookIDs) == 0 {
		return nil, apperrors.NewValidation("trade must have at least one book per side")
	}

	var (
		users          []*domain.User
		deciderBooks   []*domain.Book
		requesterBooks []*domain.Book
		errs           [3]error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		users, errs[0] = s.userRepo.FindByIDs(ctx, []string{input.DeciderID, input.RequesterID})
	}()
	go func() {
		defer wg.Done()
		deciderBooks, errs[1] = s.bookRepo.FindByIDs(ctx, input.DeciderBookIDs)
	}()
	go func() {
		defer wg.Done()
		requesterBooks, errs[2] = s.bookRepo.FindByIDs(ctx, input.RequesterBookIDs)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var decider, requester *domain.User
	for _, user := range users {
		switch user.ID() {
		case input.DeciderID:
			decider = user
		case input.RequesterID:
			requester = user
		}
	}
	if decider == nil || requester == nil {
		return nil, apperrors.NewNotFound("user not found")
	}

	if len(deciderBooks) != len(input.DeciderBookIDs) || len(requesterBooks) != len(input.RequesterBookIDs) {
		return nil, apperrors.NewNotFound("book not found")
	}

	if err := verifyOwnership(deciderBooks, input.DeciderID); err != nil {
		return nil, err
	}
	if err := verifyOwnership(requesterBooks, input.RequesterID); err != nil {
		return nil, err
	}

	trade, err := domain.NewTrade(decider.Details(), requester.Details(), deciderBooks, requesterBooks)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("Trade created",
		zap.String("tradeID", trade.ID()),
		zap.String("requesterID", input.RequesterID),
		zap.String("deciderID", input.DeciderID),
	)
	return trade, nil
}

// AcceptTrade approves a pending trade. Only the decider may accept; the
// swap of book ownership happens in the aggregate and is persisted in the
// same save.
func (s *TradeService) AcceptTrade(ctx context.Context, tradeID, userID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindByID(ctx, tradeID, ports.WithConsistentRead())
	if err != nil {
		return nil, err
	}

	if trade.Decider().ID() != userID {
		return nil, apperrors.NewValidation("only the decider can accept the trade")
	}

	if err := trade.Accept(); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("Trade accepted", zap.String("tradeID", tradeID))
	return trade, nil
}

// RejectTrade declines a pending trade. Only the decider may reject.
func (s *TradeService) RejectTrade(ctx context.Context, tradeID, userID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindByID(ctx, tradeID, ports.WithConsistentRead())
	if err != nil {
		return nil, err
	}

	if trade.Decider().ID() != userID {
		return nil, apperrors.NewValidation("only the decider can reject the trade")
	}

	if err := trade.Reject(); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("Trade rejected", zap.String("tradeID", tradeID))
	return trade, nil
}

// RemoveTrade withdraws a proposal. Only the requester may remove their
// own trade, and only while it is still pending.
func (s *TradeService) RemoveTrade(ctx context.Context, tradeID, userID string) error {
	trade, err := s.tradeRepo.FindByID(ctx, tradeID, ports.WithConsistentRead())
	if err != nil {
		return err
	}

	if trade.Requester().ID() != userID {
		return apperrors.NewValidation("only the requester can remove the trade")
	}
	if trade.Status() != domain.TradeStatusPending {
		return apperrors.NewValidation("unable to remove trade, trade status is not pending")
	}

	if err := s.tradeRepo.Remove(ctx, trade); err != nil {
		return err
	}

	s.logger.Info("Trade removed", zap.String("tradeID", tradeID))
	return nil
}

// FindTradeByID returns a single trade.
func (s *TradeService) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	return s.tradeRepo.FindByID(ctx, tradeID)
}

// FindTradesByDecider returns trades awaiting or decided by the user.
func (s *TradeService) FindTradesByDecider(ctx context.Context, deciderID string) ([]*domain.Trade, error) {
	return s.tradeRepo.FindByDeciderID(ctx, deciderID)
}

// FindTradesByRequester returns trades proposed by the user.
func (s *TradeService) FindTradesByRequester(ctx context.Context, requesterID string) ([]*domain.Trade, error) {
	return s.tradeRepo.FindByRequesterID(ctx, requesterID)
}

// FindTradesByBook returns trades that include the book on either side.
func (s *TradeService) FindTradesByBook(ctx context.Context, bookID string) ([]*domain.Trade, error) {
	return s.tradeRepo.FindByBookID(ctx, bookID)
}

// FindAcceptedTrades returns accepted trades, most recent first.
func (s *TradeService) FindAcceptedTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.tradeRepo.FindAccepted(ctx)
}

func verifyOwnership(books []*domain.Book, ownerID string) error {
	for _, book := range books {
		if book.Owner().ID() != ownerID {
			return apperrors.NewValidation("book does not belong to the offering side")
		}
	}
	return nil
}
