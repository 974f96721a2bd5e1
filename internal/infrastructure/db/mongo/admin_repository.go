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
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

const adminCollection = "admins"

type MongoAdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection(adminCollection)}
}

type mongoAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	NationalID   string             `bson:"national_id"`
	FullName     string             `bson:"full_name"`
	FirstName    string             `bson:"first_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Address      domain.Address     `bson:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`

	ApprovedUsers      []domain.ApprovalEntry `bson:"approved_users,omitempty"`
	ApprovedOrganizers []domain.ApprovalEntry `bson:"approved_organizers,omitempty"`
	ApprovedCamps      []domain.ApprovalEntry `bson:"approved_camps,omitempty"`
	HandledTickets     []domain.ApprovalEntry `bson:"handled_tickets,omitempty"`
}

// EnsureIndexes creates the unique constraints the data model relies on.
func (r *MongoAdminRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "national_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("admin indexes: %w", err)
	}
	return nil
}

func (r *MongoAdminRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	doc := toMongoAdmin(admin)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	created := *admin
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var ma mongoAdmin
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return fromMongoAdmin(&ma), nil
}

func (r *MongoAdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoAdminRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Admin, error) {
	return r.list(ctx, bson.M{"role": string(role)})
}

func (r *MongoAdminRepository) list(ctx context.Context, filter bson.M) ([]domain.Admin, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAdmin
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}

	admins := make([]domain.Admin, 0, len(docs))
	for i := range docs {
		admins = append(admins, *fromMongoAdmin(&docs[i]))
	}
	return admins, nil
}

func (r *MongoAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	oid, err := primitive.ObjectIDFromHex(admin.ID)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	update := bson.M{"$set": bson.M{
		"full_name":     admin.FullName,
		"first_name":    admin.FirstName,
		"last_name":     admin.LastName,
		"password_hash": admin.PasswordHash,
		"address":       admin.Address,
		"updated_at":    admin.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *MongoAdminRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// AppendApproval pushes an entry onto one of the append-only approval logs.
// The ApprovalList values double as the bson field names.
func (r *MongoAdminRepository) AppendApproval(ctx context.Context, adminID string, list ports.ApprovalList, entry domain.ApprovalEntry) error {
	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{string(list): entry}})
	if err != nil {
		return fmt.Errorf("append approval: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func toMongoAdmin(a *domain.Admin) *mongoAdmin {
	return &mongoAdmin{
		Email:              a.Email,
		NationalID:         a.NationalID,
		FullName:           a.FullName,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		PasswordHash:       a.PasswordHash,
		Role:               string(a.Role),
		Address:            a.Address,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		ApprovedUsers:      a.ApprovedUsers,
		ApprovedOrganizers: a.ApprovedOrganizers,
		ApprovedCamps:      a.ApprovedCamps,
		HandledTickets:     a.HandledTickets,
	}
}

func fromMongoAdmin(ma *mongoAdmin) *domain.Admin {
	return &domain.Admin{
		ID:                 ma.ID.Hex(),
		Email:              ma.Email,
		NationalID:         ma.NationalID,
		FullName:           ma.FullName,
		FirstName:          ma.FirstName,
		LastName:           ma.LastName,
		PasswordHash:       ma.PasswordHash,
		Role:               domain.Role(ma.Role),
		Address:            ma.Address,
		CreatedAt:          ma.CreatedAt,
		UpdatedAt:          ma.UpdatedAt,
		ApprovedUsers:      ma.ApprovedUsers,
		ApprovedOrganizers: ma.ApprovedOrganizers,
		ApprovedCamps:      ma.ApprovedCamps,
		HandledTickets:     ma.HandledTickets,
	}
}
