package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/georgemunganga/gluto-backend/internal/database"
)

func TestMongoRepositoryInsertionOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create takes the next counter value", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: database.ProductsCollection},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		p := &Product{ID: "p1", Name: "Premium Basmati Rice", IsActive: true}
		require.NoError(mt, repo.Create(context.Background(), p))
		assert.Equal(mt, int64(7), p.Seq)

		inc := mt.GetStartedEvent()
		require.NotNil(mt, inc)
		assert.Equal(mt, "findAndModify", inc.CommandName)
		assert.Equal(mt, database.CountersCollection, inc.Command.Lookup("findAndModify").StringValue())

		insert := mt.GetStartedEvent()
		require.NotNil(mt, insert)
		assert.Equal(mt, "insert", insert.CommandName)
		assert.Equal(mt, int64(7), insert.Command.Lookup("documents", "0", "seq").Int64())
	})

	mt.Run("list sorts by sequence only", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		ns := mt.DB.Name() + "." + database.ProductsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "b"}, {Key: "name", Value: "First"}, {Key: "isActive", Value: true}, {Key: "seq", Value: int64(1)}},
			bson.D{{Key: "_id", Value: "a"}, {Key: "name", Value: "Second"}, {Key: "isActive", Value: true}, {Key: "seq", Value: int64(2)}},
		))

		products, err := repo.ListActive(context.Background(), "")
		require.NoError(mt, err)
		assert.Equal(mt, []string{"First", "Second"}, names(products))

		find := mt.GetStartedEvent()
		require.NotNil(mt, find)
		keys, err := find.Command.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 1)
		assert.Equal(mt, "seq", keys[0].Key())
	})

	mt.Run("update keeps the stored sequence", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(1)},
			bson.E{Key: "nModified", Value: int32(1)},
		))

		require.NoError(mt, repo.Update(context.Background(), &Product{ID: "p1", Name: "Renamed"}))

		update := mt.GetStartedEvent()
		require.NotNil(mt, update)
		assert.Equal(mt, "Renamed", update.Command.Lookup("updates", "0", "u", "$set", "name").StringValue())
		_, err := update.Command.LookupErr("updates", "0", "u", "$set", "seq")
		assert.Error(mt, err)
	})
}
