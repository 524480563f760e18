package configs

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	CartCollection     = "cart"
	OrdersCollection   = "orders"
)

func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	// Create a context with a timeout for the connection
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Check if the connection was successful by pinging the database
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Connected to MongoDB")

	return client, nil
}

func GetCollection(db *mongo.Database, collectionName string) *mongo.Collection {
	return db.Collection(collectionName)
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		CartCollection: {{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		OrdersCollection: {{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		}},
	}

	for name, models := range indexes {
		if _, err := GetCollection(db, name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		log.Infof("indexes ready on %s", name)
	}
	return nil
}
