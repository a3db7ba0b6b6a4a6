package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repo persists users and their profile sub-entities. Create and
// ReplaceProfile are transactional where the backing store supports it.
type Repo interface {
	Create(ctx context.Context, user User, contact ContactDetails) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Activate flips the account to active and reports whether it already
	// was. One-way: there is no deactivation.
	Activate(ctx context.Context, email string) (alreadyActive bool, err error)

	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
	UpsertResumeFile(ctx context.Context, userID string, file ResumeFile) error
}
