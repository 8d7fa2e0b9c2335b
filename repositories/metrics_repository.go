package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoMetricsRepository struct {
	collection *mongo.Collection
}

func NewMongoMetricsRepository(db *mongo.Database) *MongoMetricsRepository {
	return &MongoMetricsRepository{
		collection: db.Collection("partner_metrics"),
	}
}

func (r *MongoMetricsRepository) Get(ctx context.Context, partnerID string) (*models.PartnerMetrics, error) {
	var metrics models.PartnerMetrics
	err := r.collection.FindOne(ctx, bson.M{"_id": partnerID}).Decode(&metrics)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (r *MongoMetricsRepository) Save(ctx context.Context, metrics models.PartnerMetrics) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": metrics.PartnerID}, metrics, opts)
	return err
}
