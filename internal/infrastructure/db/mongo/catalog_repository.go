package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fundbridge/platform/internal/core/domain"
)

const (
	collectionCategories    = "categories"
	collectionMentors       = "mentors"
	collectionSubscriptions = "mentor_subscriptions"
	collectionResources     = "resources"
	collectionTestimonials  = "testimonials"
)

// CatalogRepository stores the admin-managed catalog collections.
type CatalogRepository struct {
	categories    *mongo.Collection
	mentors       *mongo.Collection
	subscriptions *mongo.Collection
	resources     *mongo.Collection
	testimonials  *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		categories:    db.Collection(collectionCategories),
		mentors:       db.Collection(collectionMentors),
		subscriptions: db.Collection(collectionSubscriptions),
		resources:     db.Collection(collectionResources),
		testimonials:  db.Collection(collectionTestimonials),
	}
}

// --- Categories ---

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.categories.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCategoryExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	items := make([]*domain.Category, 0)
	err := findAll(ctx, r.categories, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}), &items)
	return items, err
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	return deleteByID(ctx, r.categories, id, domain.ErrCategoryNotFound)
}

// --- Mentors ---

func (r *CatalogRepository) CreateMentor(ctx context.Context, m *domain.Mentor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.mentors.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert mentor: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListMentors(ctx context.Context) ([]*domain.Mentor, error) {
	items := make([]*domain.Mentor, 0)
	err := findAll(ctx, r.mentors, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}), &items)
	return items, err
}

func (r *CatalogRepository) FindMentor(ctx context.Context, id string) (*domain.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Mentor
	if err := r.mentors.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMentorNotFound
		}
		return nil, fmt.Errorf("find mentor: %w", err)
	}
	return &m, nil
}

// Subscribe inserts the subscription; the unique (mentor, user) index turns a
// second attempt into ErrAlreadySubscribed before the counter moves.
func (r *CatalogRepository) Subscribe(ctx context.Context, s *domain.MentorSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.subscriptions.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	_, err := r.mentors.UpdateOne(ctx, bson.M{"_id": s.MentorID}, bson.M{"$inc": bson.M{"subscribers": 1}})
	if err != nil {
		return fmt.Errorf("count subscription: %w", err)
	}
	return nil
}

// --- Resources ---

func (r *CatalogRepository) CreateResource(ctx context.Context, res *domain.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.resources.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	items := make([]*domain.Resource, 0)
	err := findAll(ctx, r.resources, pageOptions(1, 0), &items)
	return items, err
}

func (r *CatalogRepository) DeleteResource(ctx context.Context, id string) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var res domain.Resource
	if err := r.resources.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("delete resource: %w", err)
	}
	return &res, nil
}

// --- Testimonials ---

func (r *CatalogRepository) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.testimonials.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	items := make([]*domain.Testimonial, 0)
	err := findAll(ctx, r.testimonials, pageOptions(1, 0), &items)
	return items, err
}

// EnsureIndexes creates the catalog indexes. Category names are unique
// regardless of case.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	caseInsensitive := &options.Collation{Locale: "en", Strength: 2}
	if _, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	}); err != nil {
		return err
	}

	_, err := r.subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "mentor_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func findAll(ctx context.Context, col *mongo.Collection, opts *options.FindOptions, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", col.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
