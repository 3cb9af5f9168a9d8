package publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/repository"
)

// messageWriter is the slice of kafka.Writer the feed uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ReservationFeed publishes newly finalized reservations to Kafka so the
// kitchen display and notification consumers see them. Reservations carry
// a published flag; anything unpublished gets retried on the next tick.
type ReservationFeed struct {
	tick   time.Duration
	batch  int
	repo   repository.ReservationRepository
	writer messageWriter
}

func NewReservationFeed(repo repository.ReservationRepository, brokers ...string) *ReservationFeed {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "reservations",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &ReservationFeed{time.Second, 100, repo, w}
}

func (f *ReservationFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			f.publishPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (f *ReservationFeed) publishPending(ctx context.Context) {
	reservations, err := f.repo.ListUnpublished(ctx, f.batch)
	if err != nil {
		log.Printf("failed to fetch pending reservations: %v", err)
		return
	}

	for _, res := range reservations {
		if errPublish := f.publish(ctx, res); errPublish != nil {
			log.Printf("failed to publish reservation id = %v with error %v", res.ID, errPublish)
			continue
		}

		if errMark := f.repo.MarkPublished(ctx, res.ID); errMark != nil {
			log.Printf("failed to mark reservation as published id = %v with error %v", res.ID, errMark)
			continue
		}
	}
}

func (f *ReservationFeed) publish(ctx context.Context, res domain.Reservation) error {
	payload := map[string]interface{}{
		"reservation_id": res.ID,
		"owner_id":       res.OwnerID,
		"code":           res.Code,
		"total":          res.Total,
		"pickup":         res.Pickup,
		"created_at":     res.CreatedAt,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(res.ID), // reservation_id for ordering
		Value: payloadJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("reservation_created")},
		},
	}

	return f.writer.WriteMessages(ctx, msg)
}

func (f *ReservationFeed) Close() error {
	if w, ok := f.writer.(*kafka.Writer); ok {
		return w.Close()
	}
	return nil
}
