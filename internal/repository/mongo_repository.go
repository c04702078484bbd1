package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("cartitems"),
	}
}

// AddItem is a single atomic upsert-with-increment, so two concurrent adds
// for the same productId never produce duplicate documents or a lost update.
func (m *mongoRepository) AddItem(ctx context.Context, productID string, qty int) (*domain.CartLineItem, error) {
	filter := bson.M{"productId": productID}
	update := bson.M{"$inc": bson.M{"qty": qty}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var item domain.CartLineItem
	if err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return &item, nil
}

func (m *mongoRepository) ListItems(ctx context.Context) ([]domain.CartLineItem, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.CartLineItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return items, nil
}

func (m *mongoRepository) SetQuantity(ctx context.Context, id string, qty int) (*domain.CartLineItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	filter := bson.M{"_id": oid}
	update := bson.M{"$set": bson.M{"qty": qty}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item domain.CartLineItem
	err = m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return &item, nil
}

func (m *mongoRepository) RemoveItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Unparseable ids cannot match any document; removal is idempotent.
		return nil
	}

	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}
