package server

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/georgemunganga/gluto-backend/internal/config"
	"github.com/georgemunganga/gluto-backend/internal/database"
	"github.com/georgemunganga/gluto-backend/internal/modules/catalog"
	"github.com/georgemunganga/gluto-backend/internal/modules/category"
	"github.com/georgemunganga/gluto-backend/internal/modules/order"
	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

// Stores bundles the repositories of one storage backend.
type Stores struct {
	Users      user.Repository
	Categories category.Repository
	Products   catalog.Repository
	Orders     order.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks the backend is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// MemoryStores returns process-local repositories.
func MemoryStores() *Stores {
	return &Stores{
		Users:      user.NewMemoryRepository(),
		Categories: category.NewMemoryRepository(),
		Products:   catalog.NewMemoryRepository(),
		Orders:     order.NewMemoryRepository(),
	}
}

// MongoStores returns repositories on db. Close disconnects client when it is
// non-nil.
func MongoStores(client *mongo.Client, db *mongo.Database) *Stores {
	return &Stores{
		Users:      user.NewMongoRepository(db),
		Categories: category.NewMongoRepository(db),
		Products:   catalog.NewMongoRepository(db),
		Orders:     order.NewMongoRepository(db),
		ping:       func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		close: func(ctx context.Context) error {
			if client == nil {
				return nil
			}
			return client.Disconnect(ctx)
		},
	}
}

// PostgresStores returns repositories on db. Close closes db.
func PostgresStores(db *sql.DB) *Stores {
	return &Stores{
		Users:      user.NewPostgresRepository(db),
		Categories: category.NewPostgresRepository(db),
		Products:   catalog.NewPostgresRepository(db),
		Orders:     order.NewPostgresRepository(db),
		ping:       db.PingContext,
		close:      func(context.Context) error { return db.Close() },
	}
}

// OpenStores connects the backend selected by cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case "memory":
		return MemoryStores(), nil
	case "mongo":
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return MongoStores(client, db), nil
	case "postgres":
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return PostgresStores(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
