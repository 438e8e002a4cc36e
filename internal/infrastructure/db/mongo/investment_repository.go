package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fundbridge/platform/internal/core/domain"
)

const collectionInvestments = "investments"

// InvestmentRepository is the investment ledger. One row per payment intent.
type InvestmentRepository struct {
	col *mongo.Collection
}

func NewInvestmentRepository(db *mongo.Database) *InvestmentRepository {
	return &InvestmentRepository{col: db.Collection(collectionInvestments)}
}

func (r *InvestmentRepository) Insert(ctx context.Context, inv *domain.Investment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, inv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateInvestment
		}
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

// ClaimFunding matches only rows explicitly stored with funded=false, so rows
// written before the flag existed count as funded.
func (r *InvestmentRepository) ClaimFunding(ctx context.Context, paymentIntentID string) (bool, error) {
	return r.setFunded(ctx, paymentIntentID, false, true)
}

func (r *InvestmentRepository) ReleaseFunding(ctx context.Context, paymentIntentID string) error {
	_, err := r.setFunded(ctx, paymentIntentID, true, false)
	return err
}

func (r *InvestmentRepository) setFunded(ctx context.Context, paymentIntentID string, from, to bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"payment_intent_id": paymentIntentID, "funded": from},
		bson.M{"$set": bson.M{"funded": to}},
	)
	if err != nil {
		return false, fmt.Errorf("update investment %s: %w", paymentIntentID, err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *InvestmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Investment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, pageOptions(1, 0))
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	items := make([]*domain.Investment, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode investments: %w", err)
	}
	return items, nil
}

// EnsureIndexes creates the unique intent index the ledger relies on.
func (r *InvestmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "payment_intent_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	})
	return err
}
