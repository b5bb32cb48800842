package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthtrack/records-api/internal/core/domain"
)

const clientsCollection = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(clientsCollection)}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &c, nil
}

// SearchByName runs a case-insensitive substring match on either name field,
// ordered by registration time.
func (r *ClientRepository) SearchByName(ctx context.Context, query string) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"first_name": pattern},
		{"last_name": pattern},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "registration_timestamp", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	out := []*domain.Client{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return out, nil
}

// AddPrograms relies on $addToSet, which skips ids already enrolled and
// appends the rest in the given order.
func (r *ClientRepository) AddPrograms(ctx context.Context, clientID string, programIDs []string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"enrolled_programs": bson.M{"$each": programIDs}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Client
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": clientID}, update, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("enroll client: %w", err)
	}
	return &c, nil
}
