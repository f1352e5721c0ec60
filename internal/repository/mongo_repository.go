package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const hangOrdersCollection = "hang_orders"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(hangOrdersCollection),
	}
}

func (m *MongoRepository) Create(ctx context.Context, order domain.ParkedOrder) error {
	if _, err := m.collection.InsertOne(ctx, toDocument(order)); err != nil {
		return fmt.Errorf("failed to create parked order: %w", err)
	}
	return nil
}

func (m *MongoRepository) List(ctx context.Context, storeID string) ([]domain.ParkedOrder, error) {
	filter := bson.M{"store_id": storeID}
	opts := options.Find().SetSort(bson.D{{Key: "hang_time", Value: -1}, {Key: "hang_id", Value: -1}})

	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list parked orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []hangOrderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode parked orders: %w", err)
	}

	orders := make([]domain.ParkedOrder, 0, len(docs))
	for _, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (m *MongoRepository) Get(ctx context.Context, hangID string) (*domain.ParkedOrder, error) {
	var doc hangOrderDocument
	err := m.collection.FindOne(ctx, bson.M{"hang_id": hangID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrParkedOrderNotFound
		}
		return nil, fmt.Errorf("failed to get parked order: %w", err)
	}
	return doc.toDomain()
}

func (m *MongoRepository) Delete(ctx context.Context, hangID string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"hang_id": hangID})
	if err != nil {
		return fmt.Errorf("failed to delete parked order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrParkedOrderNotFound
	}
	return nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hang_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "hang_time", Value: -1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
