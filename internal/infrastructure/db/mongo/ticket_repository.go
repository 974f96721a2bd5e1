package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

const ticketCollection = "tickets"

type MongoTicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *MongoTicketRepository {
	return &MongoTicketRepository{coll: db.Collection(ticketCollection)}
}

type mongoTicket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Subject     string             `bson:"subject"`
	Message     string             `bson:"message"`
	Status      string             `bson:"status"`
	HandledByID string             `bson:"handled_by_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *MongoTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	doc := mongoTicket{
		Email:     ticket.Email,
		Subject:   ticket.Subject,
		Message:   ticket.Message,
		Status:    string(ticket.Status),
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}

	created := *ticket
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTicketNotFound
	}

	var mt mongoTicket
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}

	return &domain.Ticket{
		ID:          mt.ID.Hex(),
		Email:       mt.Email,
		Subject:     mt.Subject,
		Message:     mt.Message,
		Status:      domain.TicketStatus(mt.Status),
		HandledByID: mt.HandledByID,
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}, nil
}

func (r *MongoTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	oid, err := primitive.ObjectIDFromHex(ticket.ID)
	if err != nil {
		return domain.ErrTicketNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":        string(ticket.Status),
		"handled_by_id": ticket.HandledByID,
		"updated_at":    ticket.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}
