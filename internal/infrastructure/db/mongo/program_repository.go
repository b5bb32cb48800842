package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthtrack/records-api/internal/core/domain"
)

const programsCollection = "programs"

type ProgramRepository struct {
	col *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{col: db.Collection(programsCollection)}
}

// Create inserts a new program document keyed by its id.
func (r *ProgramRepository) Create(ctx context.Context, p *domain.Program) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Program
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProgramNotFound
		}
		return nil, fmt.Errorf("find program: %w", err)
	}
	return &p, nil
}

// List returns programs in natural (insertion) order.
func (r *ProgramRepository) List(ctx context.Context) ([]*domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	out := []*domain.Program{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode programs: %w", err)
	}
	return out, nil
}
