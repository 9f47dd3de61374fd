package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

const (
	collectionTreatmentPlans  = "treatment_plans"
	collectionTreatmentOrders = "treatment_orders"
)

type TreatmentPlanRepository struct {
	col *mongo.Collection
}

func NewTreatmentPlanRepository(db *mongo.Database) *TreatmentPlanRepository {
	return &TreatmentPlanRepository{col: db.Collection(collectionTreatmentPlans)}
}

// Search returns treatment plans matching the query on diagnosis or status,
// newest first, scoped to the clinic.
func (r *TreatmentPlanRepository) Search(ctx context.Context, query string, clinicID int64) ([]domain.TreatmentPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clinicID != 0 {
		filter["clinic_id"] = clinicID
	}
	if query != "" {
		rx := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"diagnosis": rx},
			bson.M{"status": rx},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(searchLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plans []domain.TreatmentPlan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

type TreatmentOrderRepository struct {
	col *mongo.Collection
}

func NewTreatmentOrderRepository(db *mongo.Database) *TreatmentOrderRepository {
	return &TreatmentOrderRepository{col: db.Collection(collectionTreatmentOrders)}
}

// Search returns treatment orders matching the query on status, newest
// first, scoped to the clinic.
func (r *TreatmentOrderRepository) Search(ctx context.Context, query string, clinicID int64) ([]domain.TreatmentOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clinicID != 0 {
		filter["clinic_id"] = clinicID
	}
	if query != "" {
		filter["status"] = containsPattern(query)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "visit_date", Value: -1}}).
		SetLimit(searchLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []domain.TreatmentOrder
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
