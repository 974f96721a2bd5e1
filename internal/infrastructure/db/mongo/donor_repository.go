package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

const donorCollection = "donors"

type MongoDonorRepository struct {
	coll *mongo.Collection
}

func NewDonorRepository(db *mongo.Database) *MongoDonorRepository {
	return &MongoDonorRepository{coll: db.Collection(donorCollection)}
}

type mongoDonor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"full_name"`
	BloodGroup     string             `bson:"blood_group"`
	DateOfBirth    time.Time          `bson:"date_of_birth"`
	WeightKg       float64            `bson:"weight_kg"`
	Phone          string             `bson:"phone,omitempty"`
	Address        domain.Address     `bson:"address,omitempty"`
	LastDonationAt time.Time          `bson:"last_donation_at,omitempty"`
	Approved       bool               `bson:"approved"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *MongoDonorRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("donor indexes: %w", err)
	}
	return nil
}

func (r *MongoDonorRepository) Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error) {
	doc := toMongoDonor(donor)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDonorExists
		}
		return nil, fmt.Errorf("insert donor: %w", err)
	}

	created := *donor
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoDonorRepository) FindByID(ctx context.Context, id string) (*domain.Donor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDonorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoDonorRepository) FindByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoDonorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Donor, error) {
	var md mongoDonor
	if err := r.coll.FindOne(ctx, filter).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDonorNotFound
		}
		return nil, fmt.Errorf("find donor: %w", err)
	}
	return fromMongoDonor(&md), nil
}

func (r *MongoDonorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	oid, err := primitive.ObjectIDFromHex(donor.ID)
	if err != nil {
		return domain.ErrDonorNotFound
	}

	update := bson.M{"$set": bson.M{
		"full_name":        donor.FullName,
		"weight_kg":        donor.WeightKg,
		"phone":            donor.Phone,
		"address":          donor.Address,
		"last_donation_at": donor.LastDonationAt,
		"approved":         donor.Approved,
		"updated_at":       donor.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

func toMongoDonor(d *domain.Donor) *mongoDonor {
	return &mongoDonor{
		Email:          d.Email,
		FullName:       d.FullName,
		BloodGroup:     string(d.BloodGroup),
		DateOfBirth:    d.DateOfBirth,
		WeightKg:       d.WeightKg,
		Phone:          d.Phone,
		Address:        d.Address,
		LastDonationAt: d.LastDonationAt,
		Approved:       d.Approved,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func fromMongoDonor(md *mongoDonor) *domain.Donor {
	return &domain.Donor{
		ID:             md.ID.Hex(),
		Email:          md.Email,
		FullName:       md.FullName,
		BloodGroup:     domain.BloodGroup(md.BloodGroup),
		DateOfBirth:    md.DateOfBirth,
		WeightKg:       md.WeightKg,
		Phone:          md.Phone,
		Address:        md.Address,
		LastDonationAt: md.LastDonationAt,
		Approved:       md.Approved,
		CreatedAt:      md.CreatedAt,
		UpdatedAt:      md.UpdatedAt,
	}
}
