package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user. A unique index on email turns duplicate inserts
// into domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	created := *u
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.User, error) {
	if subscriptionID == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"subscription_id": subscriptionID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// ApplyBilling applies an absolute billing state update in a single
// conditional update. The counter reset is skipped when the stored
// last_billing_event_id already equals the update's event id, which makes a
// redelivered event's reset a no-op.
func (r *UserRepository) ApplyBilling(ctx context.Context, userID string, update ports.BillingUpdate) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	unset := bson.M{}

	if update.Plan != nil {
		set["plan"] = *update.Plan
	}
	if update.PlanStatus != nil {
		set["plan_status"] = *update.PlanStatus
	}
	if update.PlanExpires != nil {
		set["plan_expires"] = *update.PlanExpires
	} else if update.ClearExpiry {
		unset["plan_expires"] = ""
	}
	if update.CustomerID != "" {
		set["customer_id"] = update.CustomerID
	}
	if update.SubscriptionID != "" {
		set["subscription_id"] = update.SubscriptionID
	}

	filter := bson.M{"_id": oid}
	if update.ResetUsage {
		// Only reset counters if this event id has not been applied before.
		filter["last_billing_event_id"] = bson.M{"$ne": update.EventID}
		set["usage.resume_scans"] = 0
		set["usage.profile_scans"] = 0
		set["usage.reset_at"] = now
		set["last_billing_event_id"] = update.EventID
	}

	updateDoc := bson.M{"$set": set}
	if len(unset) > 0 {
		updateDoc["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && update.ResetUsage {
		// Event already applied: reapply the absolute state without the
		// counter reset so out-of-order redelivery still converges.
		delete(set, "usage.resume_scans")
		delete(set, "usage.profile_scans")
		delete(set, "usage.reset_at")
		delete(set, "last_billing_event_id")
		_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// IncrementScanCount atomically consumes one scan slot. Counters stamped
// before periodStart restart at one for this scan (lazy calendar rollover);
// otherwise the increment only matches while the counter is still below
// limit, so two concurrent scans cannot both take the last slot. A negative
// limit means unlimited.
func (r *UserRepository) IncrementScanCount(ctx context.Context, userID string, kind domain.DocumentKind, limit int, periodStart time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	field := "usage.resume_scans"
	if kind == domain.KindProfile {
		field = "usage.profile_scans"
	}
	now := time.Now().UTC()

	rollover := bson.M{
		"usage.resume_scans":  0,
		"usage.profile_scans": 0,
		"usage.reset_at":      periodStart,
		"updated_at":          now,
	}
	rollover[field] = 1
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "usage.reset_at": bson.M{"$lt": periodStart}},
		bson.M{"$set": rollover})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	filter := bson.M{"_id": oid}
	if limit >= 0 {
		filter[field] = bson.M{"$lt": limit}
	}

	res, err = r.col.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing user from a lost quota race.
		if _, findErr := r.FindByID(ctx, userID); findErr != nil {
			return findErr
		}
		return domain.ErrQuotaRace
	}
	return nil
}

// DecrementScanCount releases one scan slot, never dropping below zero.
func (r *UserRepository) DecrementScanCount(ctx context.Context, userID string, kind domain.DocumentKind) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	field := "usage.resume_scans"
	if kind == domain.KindProfile {
		field = "usage.profile_scans"
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid, field: bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{field: -1}, "$set": bson.M{"updated_at": time.Now().UTC()}})
	return err
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "subscription_id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

// userDoc mirrors the stored shape; _id round-trips through ObjectID.
type userDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash"`
	Role               string             `bson:"role"`
	Plan               domain.Plan        `bson:"plan"`
	PlanStatus         domain.PlanStatus  `bson:"plan_status"`
	PlanExpires        *time.Time         `bson:"plan_expires,omitempty"`
	CustomerID         string             `bson:"customer_id,omitempty"`
	SubscriptionID     string             `bson:"subscription_id,omitempty"`
	LastBillingEventID string             `bson:"last_billing_event_id,omitempty"`
	Usage              domain.Usage       `bson:"usage"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID.Hex(),
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		Plan:               d.Plan,
		PlanStatus:         d.PlanStatus,
		PlanExpires:        d.PlanExpires,
		CustomerID:         d.CustomerID,
		SubscriptionID:     d.SubscriptionID,
		LastBillingEventID: d.LastBillingEventID,
		Usage:              d.Usage,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}
