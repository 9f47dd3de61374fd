package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

// Search returns appointments matching the query on the denormalized patient
// name or service type, newest first, scoped to the clinic.
func (r *AppointmentRepository) Search(ctx context.Context, query string, clinicID int64) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clinicID != 0 {
		filter["clinic_id"] = clinicID
	}
	if query != "" {
		rx := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"patient_name": rx},
			bson.M{"service_type": rx},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "appointment_datetime", Value: -1}}).
		SetLimit(searchLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var appointments []domain.Appointment
	if err := cur.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// EnsureIndexes creates the appointment search indexes.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "clinic_id", Value: 1}, {Key: "appointment_datetime", Value: -1}}},
		{Keys: bson.D{{Key: "patient_name", Value: 1}}},
	})
	return err
}
