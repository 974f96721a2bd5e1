package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

const otpCollection = "otps"

type MongoOTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *MongoOTPRepository {
	return &MongoOTPRepository{coll: db.Collection(otpCollection)}
}

type mongoOTP struct {
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	Attempts  int       `bson:"attempts"`
}

// EnsureIndexes creates the unique email index that enforces the
// at-most-one-active invariant, plus a TTL index that garbage-collects
// expired records. Verification never relies on the TTL sweep; expiry is
// always re-checked against expires_at.
func (r *MongoOTPRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	if err != nil {
		return fmt.Errorf("otp indexes: %w", err)
	}
	return nil
}

// Upsert atomically replaces any existing record for the email. A single
// replace-with-upsert avoids the delete-then-insert window in which two
// concurrent logins could each observe no record.
func (r *MongoOTPRepository) Upsert(ctx context.Context, record *domain.OTPRecord) error {
	doc := mongoOTP{
		Email:     record.Email,
		Code:      record.Code,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		Attempts:  record.Attempts,
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"email": record.Email}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	return nil
}

func (r *MongoOTPRepository) FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error) {
	var mo mongoOTP
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}

	return &domain.OTPRecord{
		Email:     mo.Email,
		Code:      mo.Code,
		ExpiresAt: mo.ExpiresAt,
		CreatedAt: mo.CreatedAt,
		Attempts:  mo.Attempts,
	}, nil
}

func (r *MongoOTPRepository) IncrementAttempts(ctx context.Context, email string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$inc": bson.M{"attempts": 1}})
	if err != nil {
		return fmt.Errorf("increment otp attempts: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOTPNotFound
	}
	return nil
}

func (r *MongoOTPRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}
