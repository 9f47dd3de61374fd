package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

const collectionClinics = "clinics"

type ClinicRepository struct {
	col *mongo.Collection
}

func NewClinicRepository(db *mongo.Database) *ClinicRepository {
	return &ClinicRepository{col: db.Collection(collectionClinics)}
}

// FindByID retrieves a clinic record.
func (r *ClinicRepository) FindByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var clinic domain.Clinic
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&clinic); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, fmt.Errorf("find clinic: %w", err)
	}
	return &clinic, nil
}
