package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

const reservationCollection = "reservations"

type mongoReservationRepository struct {
	collection *mongo.Collection
}

func NewMongoReservationRepository(db *mongo.Database) ReservationRepository {
	return &mongoReservationRepository{collection: db.Collection(reservationCollection)}
}

func (m *mongoReservationRepository) Create(ctx context.Context, res *domain.Reservation) (string, error) {
	if res.ID == "" {
		res.ID = primitive.NewObjectID().Hex()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	_, err := m.collection.InsertOne(ctx, res)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Two unique indexes can reject the insert; which one tells
			// the caller whether to retry with a fresh code or give up.
			if strings.Contains(err.Error(), "cart_id") {
				return "", ErrCartAlreadyReserved
			}
			return "", ErrDuplicateCode
		}
		return "", storageErr("failed to create reservation", err)
	}
	return res.ID, nil
}

func (m *mongoReservationRepository) GetByCartID(ctx context.Context, cartID string) (*domain.Reservation, error) {
	var res domain.Reservation

	err := m.collection.FindOne(ctx, bson.M{"cart_id": cartID}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReservationNotFound
		}
		return nil, storageErr("failed to get reservation by cart", err)
	}

	return &res, nil
}

func (m *mongoReservationRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, storageErr("failed to list reservations", err)
	}

	reservations := []domain.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, storageErr("failed to decode reservations", err)
	}
	return reservations, nil
}

func (m *mongoReservationRepository) ListUnpublished(ctx context.Context, limit int) ([]domain.Reservation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{"published": false}, opts)
	if err != nil {
		return nil, storageErr("failed to list unpublished reservations", err)
	}

	var reservations []domain.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, storageErr("failed to decode unpublished reservations", err)
	}
	return reservations, nil
}

func (m *mongoReservationRepository) MarkPublished(ctx context.Context, reservationID string) error {
	update := bson.M{"$set": bson.M{"published": true}}

	result, err := m.collection.UpdateByID(ctx, reservationID, update)
	if err != nil {
		return storageErr("failed to mark reservation published", err)
	}
	if result.MatchedCount == 0 {
		return ErrReservationNotFound
	}
	return nil
}
