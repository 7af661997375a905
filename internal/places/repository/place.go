package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	placeserrors "placely/internal/places/errors"
	"placely/pkg/config"
	"placely/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Places"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	FindAll(ctx context.Context) ([]*model.Place, error)
	Replace(ctx context.Context, place *model.Place) error
}

type mongoPlaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPlaceRepository(cfg *config.Config) PlaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPlaceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds the operation without extending an existing deadline.
func (r *mongoPlaceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	place.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, place)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		place.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, id)
	}

	var place model.Place
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, placeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}

	return &place, nil
}

func (r *mongoPlaceRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findMany(ctx, bson.M{"owner": ownerID})
}

func (r *mongoPlaceRepository) FindAll(ctx context.Context) ([]*model.Place, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findMany(ctx, bson.M{})
}

func (r *mongoPlaceRepository) findMany(ctx context.Context, filter bson.M) ([]*model.Place, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer cursor.Close(ctx)

	places := make([]*model.Place, 0)
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}

	return places, nil
}

func (r *mongoPlaceRepository) Replace(ctx context.Context, place *model.Place) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(place.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, place.ID)
	}

	// ReplaceOne keeps _id stable; the stored document is swapped wholesale.
	stored := *place
	stored.ID = ""
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, &stored)
	if err != nil {
		return fmt.Errorf("failed to replace place: %w", err)
	}
	if result.MatchedCount == 0 {
		return placeserrors.ErrNotFound
	}

	return nil
}
