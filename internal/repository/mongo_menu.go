package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

const menuCollection = "menus"

type mongoMenuRepository struct {
	collection *mongo.Collection
}

func NewMongoMenuRepository(db *mongo.Database) MenuRepository {
	return &mongoMenuRepository{collection: db.Collection(menuCollection)}
}

// Latest returns the newest menu document by date.
func (m *mongoMenuRepository) Latest(ctx context.Context) (*domain.Menu, error) {
	var menu domain.Menu

	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	err := m.collection.FindOne(ctx, bson.M{}, opts).Decode(&menu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuNotFound
		}
		return nil, storageErr("failed to get latest menu", err)
	}

	return &menu, nil
}

func (m *mongoMenuRepository) Upsert(ctx context.Context, menu *domain.Menu) error {
	if menu.ID == "" {
		menu.ID = primitive.NewObjectID().Hex()
	}
	menu.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": menu.ID}, menu, opts)
	if err != nil {
		return storageErr("failed to upsert menu", err)
	}
	return nil
}

func (m *mongoMenuRepository) SetItemAvailability(ctx context.Context, menuID, itemID string, available bool) error {
	filter := bson.M{"_id": menuID, "items.item_id": itemID}
	update := bson.M{"$set": bson.M{
		"items.$[elem].available": available,
		"updated_at":              time.Now(),
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.item_id": itemID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return storageErr("failed to set item availability", err)
	}
	if result.MatchedCount == 0 {
		return ErrMenuNotFound
	}
	return nil
}
