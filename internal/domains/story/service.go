package story

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the business logic contract for stories, their
// comments, ratings, and likes.
type Service interface {
	// List returns all stories with genre, owner, and commenters
	// resolved. Served read-through from the cache.
	List(ctx context.Context) ([]ListItemDTO, error)

	// Get returns one story with genre and restricted commenters
	// resolved.
	Get(ctx context.Context, id primitive.ObjectID) (*DetailDTO, error)

	// Create persists a story authored by authorID, then links it into
	// the author's and owner's story lists.
	Create(ctx context.Context, authorID primitive.ObjectID, req AddRequest) (*Story, error)

	// Update applies a partial edit. Only an admin or the author may
	// edit; the story is relinked when the owner reference changes.
	Update(ctx context.Context, callerID, id primitive.ObjectID, req EditRequest) (*Story, error)

	// Delete removes the story, its comments, and its cross-references.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ========================================
	// COMMENTS
	// ========================================

	ListComments(ctx context.Context, storyID primitive.ObjectID) ([]Comment, error)
	AddComment(ctx context.Context, callerID, storyID primitive.ObjectID, req CommentRequest) (*Comment, error)
	UpdateComment(ctx context.Context, callerID, storyID, commentID primitive.ObjectID, req CommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, callerID, storyID, commentID primitive.ObjectID) error

	// ========================================
	// RATINGS AND LIKES
	// ========================================

	// AddRating appends the caller's rating and recomputes the average.
	// ErrAlreadyRated when the caller rated before.
	AddRating(ctx context.Context, callerID, storyID primitive.ObjectID, req RatingRequest) error

	// ToggleLike flips the caller's like. liked reports the state after
	// the toggle.
	ToggleLike(ctx context.Context, callerID, storyID primitive.ObjectID) (liked bool, err error)
}
