package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoPayoutMethodRepository struct {
	collection *mongo.Collection
}

func NewMongoPayoutMethodRepository(db *mongo.Database) *MongoPayoutMethodRepository {
	return &MongoPayoutMethodRepository{
		collection: db.Collection("payout_methods"),
	}
}

func (r *MongoPayoutMethodRepository) Insert(ctx context.Context, method models.PayoutMethod) error {
	if method.IsDefault {
		// Clear any existing default first so at most one remains
		_, err := r.collection.UpdateMany(ctx,
			bson.M{"partnerId": method.PartnerID, "isDefault": true},
			bson.M{"$set": bson.M{"isDefault": false}})
		if err != nil {
			return err
		}
	}
	_, err := r.collection.InsertOne(ctx, method)
	return err
}

func (r *MongoPayoutMethodRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.PayoutMethod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"partnerId": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var methods []models.PayoutMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *MongoPayoutMethodRepository) SetDefault(ctx context.Context, partnerID, methodID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"partnerId": partnerID},
		bson.M{"$set": bson.M{"isDefault": false}})
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": methodID, "partnerId": partnerID},
		bson.M{"$set": bson.M{"isDefault": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
