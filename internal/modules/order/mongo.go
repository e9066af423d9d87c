package order

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/database"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepo{coll: db.Collection(database.OrdersCollection)}
}

func (r *mongoRepo) Create(ctx context.Context, o *Order) error {
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("order number %s already exists", o.OrderNumber)
		}
		return apperr.Store("insert order", err)
	}
	return nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("order", id)
		}
		return nil, apperr.Store("find order", err)
	}
	return &o, nil
}

func (r *mongoRepo) List(ctx context.Context, status Status) ([]*Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperr.Store("find orders", err)
	}
	out := []*Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode orders", err)
	}
	return out, nil
}

func (r *mongoRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}})
	if err != nil {
		return apperr.Store("update order status", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return apperr.InvalidTransition("order %s is no longer %s", id, from)
}
