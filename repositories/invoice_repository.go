package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colleco/partner_backend/models"
)

type MongoInvoiceRepository struct {
	collection *mongo.Collection
}

func NewMongoInvoiceRepository(db *mongo.Database) *MongoInvoiceRepository {
	return &MongoInvoiceRepository{
		collection: db.Collection("invoices"),
	}
}

func (r *MongoInvoiceRepository) Insert(ctx context.Context, invoice models.Invoice) error {
	_, err := r.collection.InsertOne(ctx, invoice)
	return err
}

func (r *MongoInvoiceRepository) Update(ctx context.Context, invoice models.Invoice) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": invoice.ID}, invoice)
	return err
}

func (r *MongoInvoiceRepository) Get(ctx context.Context, partnerID, invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": invoiceID, "partnerId": partnerID}).Decode(&invoice)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *MongoInvoiceRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"partnerId": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
