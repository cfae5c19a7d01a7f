package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	currency "github.com/malusev998/cbr-currency"
)

type (
	mongoStorage struct {
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoCurrency struct {
		Position  int       `bson:"position"`
		Name      string    `bson:"name"`
		Code      string    `bson:"code"`
		Value     string    `bson:"value"`
		Nominal   string    `bson:"nominal"`
		CreatedAt time.Time `bson:"createdAt"`
	}
)

func NewMongoStorage(ctx context.Context, config MongoDBConfig) (currency.Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	collection := config.Collection

	if collection == "" {
		collection = DefaultTableName
	}

	storage := mongoStorage{
		client:     client,
		collection: client.Database(config.Database).Collection(collection),
	}

	if config.Migrate {
		if err := storage.Migrate(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return storage, nil
}

func (m mongoStorage) Load(ctx context.Context) (currency.Snapshot, error) {
	cursor, err := m.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))

	if err != nil {
		return currency.Snapshot{}, err
	}

	var documents []mongoCurrency

	if err := cursor.All(ctx, &documents); err != nil {
		return currency.Snapshot{}, fmt.Errorf("%w: %v", currency.ErrDecode, err)
	}

	if len(documents) == 0 {
		return currency.Snapshot{}, currency.ErrCacheMiss
	}

	snapshot := currency.Snapshot{
		Currencies: make([]currency.Currency, 0, len(documents)),
		UpdatedAt:  documents[0].CreatedAt,
	}

	for _, document := range documents {
		snapshot.Currencies = append(snapshot.Currencies, currency.Currency{
			Name:    document.Name,
			Code:    document.Code,
			Value:   document.Value,
			Nominal: document.Nominal,
		})
	}

	return snapshot, nil
}

func (m mongoStorage) Store(ctx context.Context, currencies []currency.Currency) error {
	createdAt := time.Now().UTC()

	if _, err := m.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	if len(currencies) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(currencies))

	for i, c := range currencies {
		documents = append(documents, mongoCurrency{
			Position:  i,
			Name:      c.Name,
			Code:      c.Code,
			Value:     c.Value,
			Nominal:   c.Nominal,
			CreatedAt: createdAt,
		})
	}

	_, err := m.collection.InsertMany(ctx, documents)

	return err
}

func (m mongoStorage) Migrate(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "position", Value: 1}},
	})

	return err
}

func (m mongoStorage) Drop(ctx context.Context) error {
	return m.collection.Drop(ctx)
}

func (m mongoStorage) Close() error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(context.Background())
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}
