package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/database"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a new MongoDB user repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.UsersCollection)}
}

func (r *mongoRepository) CreateUser(ctx context.Context, user *User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
		return apperr.Store("insert user", err)
	}
	return nil
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M, key string) (*User, error) {
	var u User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user", key)
		}
		return nil, apperr.Store("find user", err)
	}
	return &u, nil
}

func (r *mongoRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *mongoRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

func (r *mongoRepository) UpdateUser(ctx context.Context, user *User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return apperr.Store("update user", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user", user.ID)
	}
	return nil
}
