package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthtrack/records-api/internal/core/domain"
)

const usersCollection = "users"

// CredentialStore implements ports.CredentialStore using MongoDB. The token
// field is indexed, so lookups by token do not scan the collection.
type CredentialStore struct {
	coll *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{coll: db.Collection(usersCollection)}
}

func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *CredentialStore) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"token": token})
}

func (s *CredentialStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *CredentialStore) SetToken(ctx context.Context, username, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": bson.M{"token": token}})
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *CredentialStore) Upsert(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"password_hash": user.PasswordHash,
			"role":          user.Role,
		},
		"$setOnInsert": bson.M{
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"username": user.Username}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
