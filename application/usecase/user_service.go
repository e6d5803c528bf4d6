package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// UserService handles user profile operations.
type UserService struct {
	userRepo ports.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo ports.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// FindUserByID returns the user's profile.
func (s *UserService) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// RegisterUser persists a profile for a first-time user. The id and email
// come from the authentication provider. Registering an id that already
// exists is a validation error.
func (s *UserService) RegisterUser(ctx context.Context, userID, nickname, email string, address domain.Address) (*domain.User, error) {
	_, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		return nil, apperrors.NewValidation("user already registered")
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	user, err := domain.NewUser(userID, nickname, email, address)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", userID))
	return user, nil
}

// UpdateUser changes the caller's editable profile fields. Books and
// trades that already embed the old snapshot are left untouched.
func (s *UserService) UpdateUser(ctx context.Context, userID, nickname string, address domain.Address) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID, ports.WithConsistentRead())
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(nickname, address); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User profile updated", zap.String("userID", userID))
	return user, nil
}
