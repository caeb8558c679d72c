package story

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the data access contract for the stories and
// comments collections. Comments live here rather than in a domain of
// their own: they only ever exist under a story.
type Repository interface {
	// ========================================
	// STORIES
	// ========================================

	// Create inserts a new story and fills in its id.
	Create(ctx context.Context, s *Story) error

	// FindByID returns ErrStoryNotFound when absent.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Story, error)

	List(ctx context.Context) ([]Story, error)

	// Update applies a partial $set and returns the updated story;
	// ErrStoryNotFound when absent.
	Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*Story, error)

	// Delete removes the story and returns the removed document so the
	// caller can unlink it from its author and owner.
	Delete(ctx context.Context, id primitive.ObjectID) (*Story, error)

	// ========================================
	// RATINGS AND LIKES
	// ========================================

	// PushRating appends a rating and returns the updated story so the
	// caller can recompute the average.
	PushRating(ctx context.Context, storyID primitive.ObjectID, r Rating) (*Story, error)

	// SetRatingAverage persists a recomputed average in a second write.
	SetRatingAverage(ctx context.Context, storyID primitive.ObjectID, avg float64) error

	PushLike(ctx context.Context, storyID, userID primitive.ObjectID) error
	PullLike(ctx context.Context, storyID, userID primitive.ObjectID) error

	// ========================================
	// COMMENTS
	// ========================================

	CreateComment(ctx context.Context, c *Comment) error

	// FindCommentByID returns ErrCommentNotFound when absent.
	FindCommentByID(ctx context.Context, id primitive.ObjectID) (*Comment, error)

	// ListCommentsByStory returns the comments with a matching storyId.
	ListCommentsByStory(ctx context.Context, storyID primitive.ObjectID) ([]Comment, error)

	// ListComments returns every comment, for reconciliation.
	ListComments(ctx context.Context) ([]Comment, error)

	// UpdateCommentText overwrites the text and returns the updated
	// comment; ErrCommentNotFound when absent.
	UpdateCommentText(ctx context.Context, id primitive.ObjectID, text string) (*Comment, error)

	DeleteComment(ctx context.Context, id primitive.ObjectID) error

	// DeleteCommentsByStory removes all comments of a story, returning
	// how many were deleted.
	DeleteCommentsByStory(ctx context.Context, storyID primitive.ObjectID) (int64, error)

	// Atomic array updates on the story's comment reference list.
	PushComment(ctx context.Context, storyID, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, storyID, commentID primitive.ObjectID) error
}
