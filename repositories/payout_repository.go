package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoPayoutRepository struct {
	collection *mongo.Collection
}

func NewMongoPayoutRepository(db *mongo.Database) *MongoPayoutRepository {
	return &MongoPayoutRepository{
		collection: db.Collection("payouts"),
	}
}

func (r *MongoPayoutRepository) Insert(ctx context.Context, payout models.Payout) error {
	_, err := r.collection.InsertOne(ctx, payout)
	return err
}

func (r *MongoPayoutRepository) Update(ctx context.Context, payout models.Payout) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": payout.ID}, payout)
	return err
}

func (r *MongoPayoutRepository) Get(ctx context.Context, partnerID, payoutID string) (*models.Payout, error) {
	var payout models.Payout
	err := r.collection.FindOne(ctx, bson.M{"_id": payoutID, "partnerId": partnerID}).Decode(&payout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *MongoPayoutRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.Payout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"partnerId": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payouts []models.Payout
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (r *MongoPayoutRepository) ListAll(ctx context.Context) ([]models.Payout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payouts []models.Payout
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}
