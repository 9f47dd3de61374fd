package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

const (
	collectionPatients = "patients"

	// searchLimit bounds each per-collection search; the aggregator
	// truncates the merged list anyway.
	searchLimit = 25
)

type PatientRepository struct {
	col *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{col: db.Collection(collectionPatients)}
}

// Search returns patients matching the query on name, phone, or IIN, scoped
// to the clinic. clinicID 0 means no clinic restriction.
func (r *PatientRepository) Search(ctx context.Context, query string, clinicID int64) ([]domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clinicID != 0 {
		filter["clinic_id"] = clinicID
	}
	if query != "" {
		rx := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"full_name": rx},
			bson.M{"phone": rx},
			bson.M{"iin": rx},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name", Value: 1}}).
		SetLimit(searchLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var patients []domain.Patient
	if err := cur.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// EnsureIndexes creates the patient search indexes.
func (r *PatientRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "clinic_id", Value: 1}, {Key: "full_name", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "iin", Value: 1}}},
	})
	return err
}

// containsPattern builds a case-insensitive substring match from raw user
// input. The input is quoted so metacharacters cannot alter the query.
func containsPattern(query string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
}
