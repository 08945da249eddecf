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

const collectionAnalyses = "analyses"

type AnalysisRepository struct {
	col *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{col: db.Collection(collectionAnalyses)}
}

// Create inserts a new analysis document and returns its generated id.
func (r *AnalysisRepository) Create(ctx context.Context, a *domain.Analysis) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAnalysisDoc(a)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// FindByID retrieves an analysis. When userID is non-empty the query is
// additionally scoped to the owner, mirroring the service-layer ownership
// rule at the query level.
func (r *AnalysisRepository) FindByID(ctx context.Context, id string, userID string) (*domain.Analysis, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAnalysisNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}

	var doc analysisDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns a page of analyses matching filter and the total count,
// newest first.
func (r *AnalysisRepository) List(ctx context.Context, filter ports.ListAnalysesFilter) ([]*domain.Analysis, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*domain.Analysis
	for cur.Next(ctx) {
		var doc analysisDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

// SaveOptimized caches the optimized variant. The guard on the existing
// fields makes the write first-wins: once content is cached it is never
// overwritten.
func (r *AnalysisRepository) SaveOptimized(ctx context.Context, id string, content string, profile *domain.ProfileFields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnalysisNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if content != "" {
		set["optimized_content"] = content
	}
	if profile != nil {
		set["optimized_profile"] = profile
	}

	_, err = r.col.UpdateOne(ctx, bson.M{
		"_id":               oid,
		"optimized_content": bson.M{"$in": bson.A{nil, ""}},
		"optimized_profile": nil,
	}, bson.M{"$set": set})
	return err
}

// SaveComparison persists the before/after comparison record.
func (r *AnalysisRepository) SaveComparison(ctx context.Context, id string, cmp *domain.Comparison) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnalysisNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"comparison": cmp}})
	return err
}

// EnsureIndexes creates necessary indexes on the analyses collection.
func (r *AnalysisRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// analysisDoc is the stored shape; _id round-trips through ObjectID.
type analysisDoc struct {
	ID               primitive.ObjectID               `bson:"_id,omitempty"`
	UserID           string                           `bson:"user_id"`
	Kind             domain.DocumentKind              `bson:"kind"`
	Status           domain.AnalysisStatus            `bson:"status"`
	CreatedAt        time.Time                        `bson:"created_at"`
	Text             string                           `bson:"text,omitempty"`
	Profile          *domain.ProfileFields            `bson:"profile,omitempty"`
	Categories       map[string]domain.CategoryResult `bson:"categories"`
	CompositeScore   int                              `bson:"composite_score"`
	Suggestions      []domain.Suggestion              `bson:"suggestions"`
	OptimizedContent string                           `bson:"optimized_content,omitempty"`
	OptimizedProfile *domain.ProfileFields            `bson:"optimized_profile,omitempty"`
	Comparison       *domain.Comparison               `bson:"comparison,omitempty"`
}

func toAnalysisDoc(a *domain.Analysis) *analysisDoc {
	return &analysisDoc{
		UserID:           a.UserID,
		Kind:             a.Kind,
		Status:           a.Status,
		CreatedAt:        a.CreatedAt,
		Text:             a.Text,
		Profile:          a.Profile,
		Categories:       a.Categories,
		CompositeScore:   a.CompositeScore,
		Suggestions:      a.Suggestions,
		OptimizedContent: a.OptimizedContent,
		OptimizedProfile: a.OptimizedProfile,
		Comparison:       a.Comparison,
	}
}

func (d *analysisDoc) toDomain() *domain.Analysis {
	return &domain.Analysis{
		ID:               d.ID.Hex(),
		UserID:           d.UserID,
		Kind:             d.Kind,
		Status:           d.Status,
		CreatedAt:        d.CreatedAt.UTC(),
		Text:             d.Text,
		Profile:          d.Profile,
		Categories:       d.Categories,
		CompositeScore:   d.CompositeScore,
		Suggestions:      d.Suggestions,
		OptimizedContent: d.OptimizedContent,
		OptimizedProfile: d.OptimizedProfile,
		Comparison:       d.Comparison,
	}
}
