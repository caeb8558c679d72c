package owner

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/shared"
)

// Repository defines the data access contract for the owners collection.
type Repository interface {
	Create(ctx context.Context, o *Owner) error

	// FindByID returns ErrOwnerNotFound when absent.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Owner, error)

	List(ctx context.Context) ([]Owner, error)

	// Update applies a partial $set and returns the updated owner;
	// ErrOwnerNotFound when absent.
	Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*Owner, error)

	// Delete removes the owner document without touching the stories
	// that reference it. Returns ErrOwnerNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Atomic array updates on a single owner document.
	PushStory(ctx context.Context, ownerID, storyID primitive.ObjectID) error
	PullStory(ctx context.Context, ownerID, storyID primitive.ObjectID) error

	// ResolveStories fetches the story documents for the given ids.
	ResolveStories(ctx context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error)
}
