package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"mercado-service/internal/model"
)

const (
	SubjectUserRegistered = "user.registered"
	SubjectItemListed     = "item.listed"
	SubjectItemRemoved    = "item.removed"
)

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *model.User) error
	PublishItemListed(ctx context.Context, item *model.Item) error
	PublishItemRemoved(ctx context.Context, itemID, ownerID uuid.UUID) error
}

type UserRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type ItemListedEvent struct {
	EventType string    `json:"event_type"`
	ItemID    uuid.UUID `json:"item_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	ListedAt  time.Time `json:"listed_at"`
}

type ItemRemovedEvent struct {
	EventType string    `json:"event_type"`
	ItemID    uuid.UUID `json:"item_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("mercado-service"))
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

// Close flushes pending publishes before dropping the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.FlushTimeout(2 * time.Second); err != nil {
		slog.Warn("Failed to flush NATS connection", slog.String("error", err.Error()))
	}
	p.conn.Close()
}

func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, user *model.User) error {
	return p.publish(ctx, SubjectUserRegistered, UserRegisteredEvent{
		EventType:    SubjectUserRegistered,
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		RegisteredAt: user.CreatedAt,
	})
}

func (p *NatsPublisher) PublishItemListed(ctx context.Context, item *model.Item) error {
	return p.publish(ctx, SubjectItemListed, ItemListedEvent{
		EventType: SubjectItemListed,
		ItemID:    item.ID,
		OwnerID:   item.UserID,
		Title:     item.Title,
		Price:     item.Price,
		ListedAt:  item.CreatedAt,
	})
}

func (p *NatsPublisher) PublishItemRemoved(ctx context.Context, itemID, ownerID uuid.UUID) error {
	return p.publish(ctx, SubjectItemRemoved, ItemRemovedEvent{
		EventType: SubjectItemRemoved,
		ItemID:    itemID,
		OwnerID:   ownerID,
		RemovedAt: time.Now(),
	})
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "Error marshalling event JSON", slog.String("error", err.Error()))
		return err
	}

	msg := nats.NewMsg(subject)
	msg.Data = eventJSON
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		slog.ErrorContext(ctx, "Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.DebugContext(ctx, "Published event to NATS", slog.String("subject", subject))

	return nil
}

// NoopPublisher drops every event; used when NATS_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, *model.User) error { return nil }

func (NoopPublisher) PublishItemListed(context.Context, *model.Item) error { return nil }

func (NoopPublisher) PublishItemRemoved(context.Context, uuid.UUID, uuid.UUID) error { return nil }
