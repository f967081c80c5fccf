package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	FullName     string    `bson:"full_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d *userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		CreatedAt:    d.CreatedAt,
	}
}

// UserStore persists accounts in the users collection. Email uniqueness
// relies on a unique index on the email field.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore creates an account store on db.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

// InsertUser stores a new account.
func (s *UserStore) InsertUser(ctx context.Context, u *domain.User) error {
	doc := userDoc{
		ID:           u.ID,
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		CreatedAt:    u.CreatedAt,
	}

	// The unique index on email is the authority, but a pre-check gives the
	// common duplicate path a clean error without a write attempt.
	err := s.coll.FindOne(ctx, bson.M{"email": doc.Email}).Err()
	if err == nil {
		return domain.ErrAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("email check: %w", err)
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves an account by email, case-insensitively.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := doc.toDomain()
	return &u, nil
}

// GetUser retrieves an account by ID.
func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := doc.toDomain()
	return &u, nil
}

// EnsureIndexes creates the indexes the stores rely on. Safe to call on
// every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(usersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	jobs := db.Collection(jobsCollection)
	if _, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"url": 1},
	}); err != nil {
		return fmt.Errorf("jobs index: %w", err)
	}
	return nil
}
