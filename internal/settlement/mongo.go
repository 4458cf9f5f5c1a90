package settlement

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"souq-market/utils"
)

// CollectionSettlements holds one document per settled auction
const CollectionSettlements = "auction_settlements"

type settlementDocument struct {
	ID         string    `bson:"_id"`
	Settlement `bson:",inline"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// MongoJournal stores settlements in MongoDB, keyed by auction so that a repeated
// close cannot produce a second document
type MongoJournal struct {
	client   *mongo.Client
	database string
	timeout  time.Duration
}

// NewMongoJournal creates a MongoJournal on an already connected client
func NewMongoJournal(client *mongo.Client, database string) *MongoJournal {
	return &MongoJournal{client: client, database: database, timeout: 5 * time.Second}
}

// EnsureIndexes creates the unique auction_id index backing Record's upsert
func (j *MongoJournal) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	_, err := j.client.Database(j.database).Collection(CollectionSettlements).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "auction_id", Value: 1}},
		Options: options.Index().SetName("auction_id_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create settlement index in Mongo: %w", err)
	}
	return nil
}

// Record upserts s; an existing document for the same auction is left untouched
func (j *MongoJournal) Record(ctx context.Context, s Settlement) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	collection := j.client.Database(j.database).Collection(CollectionSettlements)

	doc := settlementDocument{
		ID:         utils.GenerateID(),
		Settlement: s,
		RecordedAt: time.Now().UTC(),
	}
	_, err := collection.UpdateOne(ctx,
		bson.M{"auction_id": s.AuctionID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record settlement for auction %d in Mongo: %w", s.AuctionID, err)
	}
	return nil
}

// ConnectMongo dials uri and verifies the connection
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
