package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// UserRepository stores user profiles as single metadata rows.
type UserRepository struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a user repository.
func NewUserRepository(client Client, tableName string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, userID string, opts ...ports.ReadOption) (*domain.User, error) {
	options := ports.ApplyReadOptions(opts)

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKey(userID)},
			"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
		},
		ConsistentRead: aws.Bool(options.ConsistentRead),
	})
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("userID", userID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFound("user not found")
	}

	return r.parseUser(result.Item)
}

func (r *UserRepository) FindByIDs(ctx context.Context, userIDs []string, opts ...ports.ReadOption) ([]*domain.User, error) {
	if len(userIDs) == 0 {
		return []*domain.User{}, nil
	}

	options := ports.ApplyReadOptions(opts)

	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, userID := range userIDs {
		keys = append(keys, map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKey(userID)},
			"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
		})
	}

	items, err := batchGet(ctx, r.client, r.tableName, keys, options.ConsistentRead)
	if err != nil {
		r.logger.Error("Failed to batch get users", zap.Int("count", len(userIDs)), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	users := make([]*domain.User, 0, len(items))
	for _, item := range items {
		user, err := r.parseUser(item)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	item, err := attributevalue.MarshalMap(newUserRecord(user))
	if err != nil {
		r.logger.Error("Failed to marshal user", zap.String("userID", user.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("Failed to save user", zap.String("userID", user.ID()), zap.Error(err))
		return apperrors.NewInternal("unexpected error", err)
	}

	r.logger.Debug("User saved", zap.String("userID", user.ID()))
	return nil
}

func (r *UserRepository) parseUser(item map[string]types.AttributeValue) (*domain.User, error) {
	var record userRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		r.logger.Error("Failed to unmarshal user row", zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	user, err := record.toUser()
	if err != nil {
		r.logger.Error("Failed to rebuild user entity", zap.String("userID", record.ID), zap.Error(err))
		return nil, apperrors.NewInternal("unexpected error", err)
	}

	return user, nil
}
