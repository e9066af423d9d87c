package category

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/database"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepo{coll: db.Collection(database.CategoriesCollection)}
}

func (r *mongoRepo) Create(ctx context.Context, c *Category) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("category name %q already exists", c.Name)
		}
		return apperr.Store("insert category", err)
	}
	return nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("category", id)
		}
		return nil, apperr.Store("find category", err)
	}
	return &c, nil
}

func (r *mongoRepo) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, apperr.Store("find categories", err)
	}
	var out []*Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode categories", err)
	}
	return out, nil
}

func (r *mongoRepo) Update(ctx context.Context, c *Category) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("category name %q already exists", c.Name)
		}
		return apperr.Store("update category", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("category", c.ID)
	}
	return nil
}
