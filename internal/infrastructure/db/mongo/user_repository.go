package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

func NewUserRepository(db *mongo.Database, logger zerolog.Logger) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), logger: logger}
}

// userDocument builds the stored form of u. The hash is kept under "password"
// so existing documents stay readable.
func userDocument(u *domain.User) bson.M {
	doc := bson.M{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       string(u.Role),
		"avatar_url": optional(u.AvatarURL),
		"created_at": u.CreatedAt,
		"is_active":  u.IsActive,
		"password":   u.PasswordHash,
	}
	if u.UpdatedAt != nil {
		doc["updated_at"] = *u.UpdatedAt
	}
	return storageDoc(doc)
}

func (r *UserRepository) toUser(raw bson.M) *domain.User {
	doc, unparsed := readDoc(r.logger, collectionUsers, raw)
	return &domain.User{
		ID:                 getString(doc, "id"),
		Email:              getString(doc, "email"),
		Name:               getString(doc, "name"),
		Role:               domain.Role(getString(doc, "role")),
		AvatarURL:          getStringPtr(doc, "avatar_url"),
		CreatedAt:          getTime(doc, "created_at"),
		UpdatedAt:          getTimePtr(doc, "updated_at"),
		IsActive:           getBool(doc, "is_active", true),
		PasswordHash:       getString(doc, "password"),
		UnparsedTimestamps: unparsed,
	}
}

// Create inserts a new user. A duplicate email maps to domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument(u)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.toUser(doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	if err := r.col.FindOne(ctx, filter).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.toUser(raw), nil
}

// List returns at most ports.ListLimit users.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(ports.ListLimit))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(raws))
	for _, raw := range raws {
		users = append(users, r.toUser(raw))
	}
	return users, nil
}

// Update sets the non-nil fields of update plus updated_at and returns the
// stored user after the change.
func (r *UserRepository) Update(ctx context.Context, id string, update domain.UserUpdate, at time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": at}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.AvatarURL != nil {
		set["avatar_url"] = *update.AvatarURL
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var raw bson.M
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": storageDoc(set)}, opts).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return r.toUser(raw), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the unique email index and the id lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
