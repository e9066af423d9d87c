package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the module repositories.
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	OrdersCollection     = "orders"
	CountersCollection   = "counters"
)

// OpenMongo connects to uri and returns the named database. The caller owns the
// returned client and must Disconnect it.
func OpenMongo(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("mongo connected", "database", name)
	return client, client.Database(name), nil
}

// EnsureMongoIndexes creates the unique and query indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CategoriesCollection: {
			// Soft-deleted categories release their name.
			{
				Keys: bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName(activeCategoryNameIndex).SetUnique(true).
					SetPartialFilterExpression(bson.M{"isActive": true}),
			},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "name", Value: 1}}},
		},
		ProductsCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "categoryId", Value: 1}, {Key: "seq", Value: 1}}},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}
	if err := dropIndex(ctx, db.Collection(CategoriesCollection), "name_1"); err != nil {
		return err
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

const activeCategoryNameIndex = "name_active_unique"

// dropIndex removes a superseded index; a missing index or collection is fine.
func dropIndex(ctx context.Context, coll *mongo.Collection, name string) error {
	_, err := coll.Indexes().DropOne(ctx, name)
	var cmdErr mongo.CommandError
	if err == nil || (errors.As(err, &cmdErr) && (cmdErr.Code == 26 || cmdErr.Code == 27)) {
		return nil
	}
	return fmt.Errorf("drop %s index %s: %w", coll.Name(), name, err)
}

// NextSequence atomically increments the named counter and returns its new
// value. The first call for a name returns 1.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Collection(CountersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return doc.Seq, nil
}
