package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

const collectionUsers = "users"

type AuthRepository struct {
	col *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           int64  `bson:"_id"`
	FullName     string `bson:"full_name"`
	Phone        string `bson:"phone"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	ClinicID     *int64 `bson:"clinic_id,omitempty"`
	Active       bool   `bson:"is_active"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

// FindByPhone retrieves a user account by phone number, the portal's login
// identifier.
func (r *AuthRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return mu.toDomain(), nil
}

// Create inserts a new user account, assigning the next sequence id.
// The unique phone index turns a duplicate into domain.ErrUserExists.
func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := user.ID
	if id == 0 {
		var err error
		if id, err = r.nextID(ctx); err != nil {
			return nil, fmt.Errorf("allocate user id: %w", err)
		}
	}

	doc := mongoUser{
		ID:           id,
		FullName:     user.FullName,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		ClinicID:     user.ClinicID,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByPhone(ctx, user.Phone)
}

// nextID claims the next value of the users sequence in the counters
// collection, creating the sequence on first use.
func (r *AuthRepository) nextID(ctx context.Context) (int64, error) {
	var seq struct {
		Value int64 `bson:"value"`
	}
	err := r.col.Database().Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": collectionUsers},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&seq)
	if err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// EnsureIndexes creates the unique phone index on the users collection.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		FullName:     mu.FullName,
		Phone:        mu.Phone,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		ClinicID:     mu.ClinicID,
		Active:       mu.Active,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
