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

const appointmentCollection = "appointments"

type MongoAppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{coll: db.Collection(appointmentCollection)}
}

type mongoAppointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	DonorID     string             `bson:"donor_id"`
	CampID      string             `bson:"camp_id"`
	ScheduledAt time.Time          `bson:"scheduled_at"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	doc := mongoAppointment{
		DonorID:     appt.DonorID,
		CampID:      appt.CampID,
		ScheduledAt: appt.ScheduledAt,
		Status:      string(appt.Status),
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *appt
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var ma mongoAppointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return fromMongoAppointment(&ma), nil
}

func (r *MongoAppointmentRepository) ListByDonor(ctx context.Context, donorID string) ([]domain.Appointment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"donor_id": donorID})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAppointment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}

	appts := make([]domain.Appointment, 0, len(docs))
	for i := range docs {
		appts = append(appts, *fromMongoAppointment(&docs[i]))
	}
	return appts, nil
}

func (r *MongoAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	oid, err := primitive.ObjectIDFromHex(appt.ID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(appt.Status),
		"updated_at": appt.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func fromMongoAppointment(ma *mongoAppointment) *domain.Appointment {
	return &domain.Appointment{
		ID:          ma.ID.Hex(),
		DonorID:     ma.DonorID,
		CampID:      ma.CampID,
		ScheduledAt: ma.ScheduledAt,
		Status:      domain.AppointmentStatus(ma.Status),
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}
