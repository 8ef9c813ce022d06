package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dtroode/projectopen-signup/internal/model"
)

// dynamoAPI is the subset of *dynamodb.Client used by UserRepository.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// userItem is the table layout. The partition key is email.
type userItem struct {
	Email     string `dynamodbav:"email"`
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Address   string `dynamodbav:"address"`
	ImageURL  string `dynamodbav:"imageUrl"`
	Password  string `dynamodbav:"password"`
	CreatedOn string `dynamodbav:"createdOn"`
}

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	api   dynamoAPI
	table string
}

// NewUserRepository creates a repository backed by a DynamoDB client.
func NewUserRepository(cfg aws.Config, table string, optFns ...func(*dynamodb.Options)) *UserRepository {
	return NewUserRepositoryWithAPI(dynamodb.NewFromConfig(cfg, optFns...), table)
}

// NewUserRepositoryWithAPI allows injecting a mockable API (used in tests).
func NewUserRepositoryWithAPI(api dynamoAPI, table string) *UserRepository {
	return &UserRepository{
		api:   api,
		table: table,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if len(out.Item) == 0 {
		return model.User{}, model.ErrNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return model.User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return item.toModel()
}

// Create writes the user only if its email is not present yet.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	av, err := attributevalue.MarshalMap(fromModel(user))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#email)"),
		ExpressionAttributeNames: map[string]string{
			"#email": "email",
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func fromModel(u model.User) userItem {
	return userItem{
		Email:     u.Email,
		ID:        u.ID,
		Name:      u.Name,
		Address:   u.Address,
		ImageURL:  u.ImageURL,
		Password:  u.PasswordHash,
		CreatedOn: model.FormatCreatedOn(u.CreatedOn),
	}
}

func (i userItem) toModel() (model.User, error) {
	createdOn, err := time.Parse(time.RFC3339Nano, i.CreatedOn)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse createdOn %q: %w", i.CreatedOn, err)
	}

	return model.User{
		ID:           i.ID,
		Name:         i.Name,
		Email:        i.Email,
		Address:      i.Address,
		ImageURL:     i.ImageURL,
		PasswordHash: i.Password,
		CreatedOn:    createdOn,
	}, nil
}
