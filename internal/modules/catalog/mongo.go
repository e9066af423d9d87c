package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/database"
)

type mongoRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepo{db: db, coll: db.Collection(database.ProductsCollection)}
}

func (r *mongoRepo) Create(ctx context.Context, p *Product) error {
	seq, err := database.NextSequence(ctx, r.db, database.ProductsCollection)
	if err != nil {
		return apperr.Store("allocate product sequence", err)
	}
	p.Seq = seq
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return apperr.Store("insert product", err)
	}
	return nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product", id)
		}
		return nil, apperr.Store("find product", err)
	}
	return &p, nil
}

func (r *mongoRepo) ListActive(ctx context.Context, categoryID string) ([]*Product, error) {
	filter := bson.M{"isActive": true}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Store("find products", err)
	}
	out := []*Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode products", err)
	}
	return out, nil
}

func (r *mongoRepo) Update(ctx context.Context, p *Product) error {
	// $set keeps the stored seq when p was built without it.
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return apperr.Store("update product", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("product", p.ID)
	}
	return nil
}
