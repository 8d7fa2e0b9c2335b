package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoTransactionRepository struct {
	collection *mongo.Collection
}

func NewMongoTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{
		collection: db.Collection("transactions"),
	}
}

func (r *MongoTransactionRepository) Insert(ctx context.Context, txn models.Transaction) error {
	_, err := r.collection.InsertOne(ctx, txn)
	return err
}

func (r *MongoTransactionRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"partnerId": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *MongoTransactionRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *MongoTransactionRepository) MarkPaid(ctx context.Context, partnerID string, ids []string, payoutID string, paidAt time.Time) error {
	filter := bson.M{
		"partnerId": partnerID,
		"_id":       bson.M{"$in": ids},
		"status":    models.TransactionEarned,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.TransactionPaid,
			"paidOutAt": paidAt,
			"payoutId":  payoutID,
		},
	}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}
