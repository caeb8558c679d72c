package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/shared"
)

// Repository defines the data access contract for the users collection.
// Keeping it an interface lets tests substitute in-memory fakes.
type Repository interface {
	// ========================================
	// BASIC CRUD
	// ========================================

	// Create inserts a new user and fills in its id.
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when the id does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)

	// FindByEmail looks a user up for login and duplicate checks.
	// Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAdminByEmail looks up a user filtered by role Admin.
	// Returns ErrAdminNotFound when absent.
	FindAdminByEmail(ctx context.Context, email string) (*User, error)

	// List returns all users. Callers strip the password via ToDTO.
	List(ctx context.Context) ([]User, error)

	// Delete removes the user document. Does not cascade to the user's
	// stories. Returns ErrUserNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ========================================
	// FIELD UPDATES
	// ========================================

	// UpdatePassword overwrites the stored hash.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// UpdateProfile applies the profile fields; the password hash is
	// only touched when passwordHash is non-empty. Returns the updated
	// user.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, firstName, lastName, avatar, passwordHash string) (*User, error)

	// ========================================
	// STORY CROSS-REFERENCES
	// ========================================
	// Atomic array updates on a single user document. The multi-document
	// sequences around them are NOT atomic; the reconciliation job
	// repairs asymmetry after crashes.

	PushStory(ctx context.Context, userID, storyID primitive.ObjectID) error
	PullStory(ctx context.Context, userID, storyID primitive.ObjectID) error
	PushLike(ctx context.Context, userID, storyID primitive.ObjectID) error
	PullLike(ctx context.Context, userID, storyID primitive.ObjectID) error

	// ========================================
	// RESOLUTION
	// ========================================

	// ResolveStories fetches the story documents for the given ids,
	// used to build the resolved profile view.
	ResolveStories(ctx context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error)
}
