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

const campCollection = "camps"

type MongoCampRepository struct {
	coll *mongo.Collection
}

func NewCampRepository(db *mongo.Database) *MongoCampRepository {
	return &MongoCampRepository{coll: db.Collection(campCollection)}
}

// geoPoint is a GeoJSON point; coordinates are [lng, lat].
type geoPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type mongoCamp struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	OrganizerID string             `bson:"organizer_id"`
	Street      string             `bson:"street,omitempty"`
	City        string             `bson:"city,omitempty"`
	State       string             `bson:"state,omitempty"`
	ZipCode     string             `bson:"zip_code,omitempty"`
	Location    geoPoint           `bson:"location"`
	StartsAt    time.Time          `bson:"starts_at"`
	EndsAt      time.Time          `bson:"ends_at"`
	Capacity    int                `bson:"capacity"`
	BookedSlots int                `bson:"booked_slots"`
	Approved    bool               `bson:"approved"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// EnsureIndexes creates the 2dsphere index backing nearby queries.
func (r *MongoCampRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("camp indexes: %w", err)
	}
	return nil
}

func (r *MongoCampRepository) Create(ctx context.Context, camp *domain.Camp) (*domain.Camp, error) {
	doc := toMongoCamp(camp)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert camp: %w", err)
	}

	created := *camp
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoCampRepository) FindByID(ctx context.Context, id string) (*domain.Camp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampNotFound
	}

	var mc mongoCamp
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCampNotFound
		}
		return nil, fmt.Errorf("find camp: %w", err)
	}
	return fromMongoCamp(&mc), nil
}

func (r *MongoCampRepository) List(ctx context.Context, approvedOnly bool) ([]domain.Camp, error) {
	filter := bson.M{}
	if approvedOnly {
		filter["approved"] = true
	}
	return r.find(ctx, filter)
}

// FindNearby returns approved camps within radiusKm of the center, nearest
// first (the $near operator sorts by distance).
func (r *MongoCampRepository) FindNearby(ctx context.Context, center domain.Coordinates, radiusKm float64) ([]domain.Camp, error) {
	filter := bson.M{
		"approved": true,
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{center.Lng, center.Lat},
				},
				"$maxDistance": radiusKm * 1000,
			},
		},
	}
	return r.find(ctx, filter)
}

func (r *MongoCampRepository) find(ctx context.Context, filter bson.M) ([]domain.Camp, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list camps: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCamp
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode camps: %w", err)
	}

	camps := make([]domain.Camp, 0, len(docs))
	for i := range docs {
		camps = append(camps, *fromMongoCamp(&docs[i]))
	}
	return camps, nil
}

func (r *MongoCampRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCampNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"approved":   approved,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set camp approval: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCampNotFound
	}
	return nil
}

// ReserveSlot increments the booked counter only while it is below capacity,
// in a single conditional update so concurrent bookings cannot overshoot.
func (r *MongoCampRepository) ReserveSlot(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCampNotFound
	}

	filter := bson.M{
		"_id":      oid,
		"approved": true,
		"$expr":    bson.M{"$lt": bson.A{"$booked_slots", "$capacity"}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_slots": 1}})
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrCampFull
	}
	return nil
}

// ReleaseSlot decrements the booked counter, never below zero.
func (r *MongoCampRepository) ReleaseSlot(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCampNotFound
	}

	filter := bson.M{"_id": oid, "booked_slots": bson.M{"$gt": 0}}
	if _, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_slots": -1}}); err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

func toMongoCamp(c *domain.Camp) *mongoCamp {
	return &mongoCamp{
		Name:        c.Name,
		OrganizerID: c.OrganizerID,
		Street:      c.Address.Street,
		City:        c.Address.City,
		State:       c.Address.State,
		ZipCode:     c.Address.ZipCode,
		Location: geoPoint{
			Type:        "Point",
			Coordinates: []float64{c.Address.Coordinates.Lng, c.Address.Coordinates.Lat},
		},
		StartsAt:    c.StartsAt,
		EndsAt:      c.EndsAt,
		Capacity:    c.Capacity,
		BookedSlots: c.BookedSlots,
		Approved:    c.Approved,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromMongoCamp(mc *mongoCamp) *domain.Camp {
	camp := &domain.Camp{
		ID:          mc.ID.Hex(),
		Name:        mc.Name,
		OrganizerID: mc.OrganizerID,
		Address: domain.Address{
			Street:  mc.Street,
			City:    mc.City,
			State:   mc.State,
			ZipCode: mc.ZipCode,
		},
		StartsAt:    mc.StartsAt,
		EndsAt:      mc.EndsAt,
		Capacity:    mc.Capacity,
		BookedSlots: mc.BookedSlots,
		Approved:    mc.Approved,
		CreatedAt:   mc.CreatedAt,
		UpdatedAt:   mc.UpdatedAt,
	}
	if len(mc.Location.Coordinates) == 2 {
		camp.Address.Coordinates = domain.Coordinates{
			Lng: mc.Location.Coordinates[0],
			Lat: mc.Location.Coordinates[1],
		}
	}
	return camp
}
