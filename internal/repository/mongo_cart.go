package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

const cartCollection = "carts"

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection(cartCollection)}
}

func (m *mongoCartRepository) GetOrCreate(ctx context.Context, ownerID string) (*domain.Cart, error) {
	filter := bson.M{"owner_id": ownerID, "status": domain.CartStatusOpen}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("failed to find open cart", err)
	}

	var carts []domain.Cart
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, storageErr("failed to decode open carts", err)
	}

	if len(carts) > 1 {
		// One open cart per owner is the invariant, but the store cannot
		// enforce it. Recover by picking the newest.
		log.Printf("owner %s has %d open carts, using the most recent", ownerID, len(carts))
	}
	if len(carts) > 0 {
		return &carts[0], nil
	}

	now := time.Now()
	cart := &domain.Cart{
		ID:        primitive.NewObjectID().Hex(),
		OwnerID:   ownerID,
		Status:    domain.CartStatusOpen,
		Items:     []domain.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := m.collection.InsertOne(ctx, cart); err != nil {
		return nil, storageErr("failed to create cart", err)
	}
	return cart, nil
}

func (m *mongoCartRepository) GetByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart

	err := m.collection.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, storageErr("failed to get cart", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) ReplaceItems(ctx context.Context, cartID string, items []domain.CartLine) error {
	update := bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": time.Now(),
	}}

	result, err := m.collection.UpdateByID(ctx, cartID, update)
	if err != nil {
		return storageErr("failed to replace cart items", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *mongoCartRepository) IncrementLine(ctx context.Context, cartID, itemID string, qty int) error {
	filter := bson.M{"_id": cartID, "items.item_id": itemID}
	update := bson.M{
		"$inc": bson.M{"items.$[elem].quantity": qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.item_id": itemID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return storageErr("failed to increment line", err)
	}
	if result.MatchedCount == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (m *mongoCartRepository) PushLine(ctx context.Context, cartID string, line domain.CartLine) error {
	// The push only matches while the line is absent, so two concurrent
	// first adds of the same item cannot both append; the loser gets
	// ErrLineExists and increments instead.
	filter := bson.M{"_id": cartID, "items.item_id": bson.M{"$ne": line.ItemID}}
	update := bson.M{
		"$push": bson.M{"items": line},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return storageErr("failed to push line", err)
	}
	if result.MatchedCount == 0 {
		return ErrLineExists
	}
	return nil
}

func (m *mongoCartRepository) RemoveLine(ctx context.Context, cartID, itemID string) error {
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"item_id": itemID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	// Removing an item that is not in the cart is a no-op, which keeps
	// retries of the same delete harmless.
	result, err := m.collection.UpdateByID(ctx, cartID, update)
	if err != nil {
		return storageErr("failed to remove line", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *mongoCartRepository) ClearItems(ctx context.Context, cartID string) error {
	update := bson.M{"$set": bson.M{
		"items":      []domain.CartLine{},
		"updated_at": time.Now(),
	}}

	result, err := m.collection.UpdateByID(ctx, cartID, update)
	if err != nil {
		return storageErr("failed to clear cart", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *mongoCartRepository) Close(ctx context.Context, cartID, reservationID string) error {
	update := bson.M{"$set": bson.M{
		"status":         domain.CartStatusClosed,
		"reservation_id": reservationID,
		"updated_at":     time.Now(),
	}}

	result, err := m.collection.UpdateByID(ctx, cartID, update)
	if err != nil {
		return storageErr("failed to close cart", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
