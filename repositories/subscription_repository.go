package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoSubscriptionRepository struct {
	collection *mongo.Collection
}

func NewMongoSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{
		collection: db.Collection("subscriptions"),
	}
}

func (r *MongoSubscriptionRepository) Get(ctx context.Context, partnerID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.collection.FindOne(ctx, bson.M{"_id": partnerID}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *MongoSubscriptionRepository) Save(ctx context.Context, sub models.Subscription) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": sub.PartnerID}, sub, opts)
	return err
}

func (r *MongoSubscriptionRepository) ListAll(ctx context.Context) ([]models.Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
