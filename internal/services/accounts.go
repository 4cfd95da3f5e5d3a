package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AnshRaj112/aih-backend/internal/models"
	"github.com/AnshRaj112/aih-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the MongoDB collection holding accounts.
const UsersCollection = "users"

var (
	ErrDuplicateKey    = errors.New("duplicate")
	ErrUserNotFound    = errors.New("user-not-found")
	ErrInvalidPassword = errors.New("invalid-password")
)

// Server codes meaning an equivalent index is already in place.
var indexExistsCodes = []int{
	68, // IndexAlreadyExists
	85, // IndexOptionsConflict
	86, // IndexKeySpecsConflict
}

// AccountStore persists users. Uniqueness of username and email is enforced
// by the unique indexes created in EnsureIndexes, not by read-before-write.
type AccountStore struct {
	users *mongo.Collection
}

func NewAccountStore(users *mongo.Collection) *AccountStore {
	return &AccountStore{users: users}
}

// EnsureIndexes creates the unique indexes on username and email. It is safe
// to call on every startup.
func (s *AccountStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			// Blank usernames are allowed for any number of accounts.
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_1").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"username": bson.M{"$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1").SetUnique(true),
		},
	}

	for _, m := range indexes {
		_, err := s.users.Indexes().CreateOne(ctx, m)
		if err == nil {
			continue
		}
		if isIndexExists(err) {
			log.Printf("index %s already exists with different options, keeping it: %v", *m.Options.Name, err)
			continue
		}
		return fmt.Errorf("create index %s: %w", *m.Options.Name, err)
	}
	return nil
}

func isIndexExists(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range indexExistsCodes {
		if se.HasErrorCode(code) {
			return true
		}
	}
	return false
}

// CreateUser hashes password and inserts a new account. Input validation is
// the caller's job.
func (s *AccountStore) CreateUser(ctx context.Context, username, email, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Authenticate resolves identifier as a username first and then as an email.
func (s *AccountStore) Authenticate(ctx context.Context, identifier, password string) (*models.UserSummary, error) {
	user, err := s.findOne(ctx, bson.M{"username": identifier})
	if errors.Is(err, mongo.ErrNoDocuments) {
		user, err = s.findOne(ctx, bson.M{"email": identifier})
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Printf("stored password hash for user %s is unreadable: %v", user.ID.Hex(), err)
		return nil, ErrInvalidPassword
	}
	if !ok {
		return nil, ErrInvalidPassword
	}
	return user.Summary(), nil
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
