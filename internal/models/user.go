package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection. Username and email are each
// unique across the collection; username may be empty.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// UserSummary is what authentication hands back to callers. It carries no
// secret material.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary strips the password hash.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}

// DisplayName is the username, or the email for accounts registered without one.
func (s *UserSummary) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	return s.Email
}
