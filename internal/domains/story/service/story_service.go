package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/genre"
	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/domains/story"
	"storyshare-backend/internal/domains/user"
	"storyshare-backend/pkg/cache"
	"storyshare-backend/pkg/logger"
)

const (
	storyListCacheKey = "stories:list"
	storyCachePattern = "stories:*"
	storyListCacheTTL = 5 * time.Minute
)

type storyService struct {
	repo      story.Repository
	userRepo  user.Repository
	ownerRepo owner.Repository
	genreRepo genre.Repository
	cache     cache.Cache
}

func NewStoryService(
	repo story.Repository,
	userRepo user.Repository,
	ownerRepo owner.Repository,
	genreRepo genre.Repository,
	c cache.Cache,
) story.Service {
	return &storyService{
		repo:      repo,
		userRepo:  userRepo,
		ownerRepo: ownerRepo,
		genreRepo: genreRepo,
		cache:     c,
	}
}

// ========================================
// READS
// ========================================

func (s *storyService) List(ctx context.Context) ([]story.ListItemDTO, error) {
	// 1. Try the cache; a miss or failure falls through to the database
	cached := []story.ListItemDTO{}
	if found, err := s.cache.Get(ctx, storyListCacheKey, &cached); err != nil {
		logger.Warn("Story list cache read failed", map[string]interface{}{"error": err.Error()})
	} else if found {
		return cached, nil
	}

	// 2. Load and resolve from the database
	stories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]story.ListItemDTO, 0, len(stories))
	for i := range stories {
		item, err := s.resolveListItem(ctx, &stories[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	// 3. Repopulate the cache, best effort
	if err := s.cache.Set(ctx, storyListCacheKey, items, storyListCacheTTL); err != nil {
		logger.Warn("Story list cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return items, nil
}

func (s *storyService) resolveListItem(ctx context.Context, st *story.Story) (*story.ListItemDTO, error) {
	item := story.ListItemDTO{
		ID:            st.ID,
		Title:         st.Title,
		Description:   st.Description,
		Poster:        st.Poster,
		Body:          st.Body,
		Ratings:       st.Ratings,
		RatingAverage: st.RatingAverage,
		User:          st.User,
		Likes:         st.Likes,
	}

	if !st.Owner.IsZero() {
		o, err := s.ownerRepo.FindByID(ctx, st.Owner)
		if err == nil {
			item.Owner = o
		} else if !errors.Is(err, owner.ErrOwnerNotFound) {
			return nil, err
		}
	}

	g, err := s.resolveGenre(ctx, st.Genres)
	if err != nil {
		return nil, err
	}
	item.Genres = g

	comments, err := s.resolveComments(ctx, st.ID, false)
	if err != nil {
		return nil, err
	}
	item.Comments = comments

	return &item, nil
}

func (s *storyService) Get(ctx context.Context, id primitive.ObjectID) (*story.DetailDTO, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := story.DetailDTO{
		ID:            st.ID,
		Title:         st.Title,
		Description:   st.Description,
		Poster:        st.Poster,
		Body:          st.Body,
		Ratings:       st.Ratings,
		RatingAverage: st.RatingAverage,
		Owner:         st.Owner,
		User:          st.User,
		Likes:         st.Likes,
	}

	g, err := s.resolveGenre(ctx, st.Genres)
	if err != nil {
		return nil, err
	}
	detail.Genres = g

	comments, err := s.resolveComments(ctx, st.ID, true)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	return &detail, nil
}

func (s *storyService) resolveGenre(ctx context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	if id.IsZero() {
		return nil, nil
	}

	g, err := s.genreRepo.FindByID(ctx, id)
	if err != nil {
		// dangling reference, serve the story without it
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return g, nil
}

// resolveComments loads a story's comments and attaches the commenter.
// restricted selects the detail view's commenter shape.
func (s *storyService) resolveComments(ctx context.Context, storyID primitive.ObjectID, restricted bool) ([]story.ResolvedComment, error) {
	comments, err := s.repo.ListCommentsByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	resolved := make([]story.ResolvedComment, 0, len(comments))
	for _, c := range comments {
		rc := story.ResolvedComment{
			ID:      c.ID,
			Comment: c.Comment,
			StoryID: c.StoryID,
		}

		commenter, err := s.userRepo.FindByID(ctx, c.Owner)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		if commenter != nil {
			if restricted {
				rc.Owner = story.RestrictCommenter(commenter)
			} else {
				rc.Owner = commenter.ToDTO()
			}
		}

		resolved = append(resolved, rc)
	}

	return resolved, nil
}

// ========================================
// MUTATIONS
// ========================================

func (s *storyService) Create(ctx context.Context, authorID primitive.ObjectID, req story.AddRequest) (*story.Story, error) {
	// 1. Persist the story with the caller as author
	st := &story.Story{
		Title:       req.Title,
		Description: req.Description,
		Poster:      req.Poster,
		Body:        req.Body,
		Genres:      req.GenreRef(),
		Owner:       req.OwnerRef(),
		User:        authorID,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	// 2. Link it into the author's and owner's story lists. Sequential
	// writes; the reconciliation job repairs a crash between them.
	if err := s.userRepo.PushStory(ctx, authorID, st.ID); err != nil {
		return nil, fmt.Errorf("link story to author: %w", err)
	}
	if !st.Owner.IsZero() {
		if err := s.ownerRepo.PushStory(ctx, st.Owner, st.ID); err != nil {
			return nil, fmt.Errorf("link story to owner: %w", err)
		}
	}

	s.invalidateCache(ctx)
	return st, nil
}

func (s *storyService) Update(ctx context.Context, callerID, id primitive.ObjectID, req story.EditRequest) (*story.Story, error) {
	// 1. Load the story and the caller
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// 2. Only an admin or the author may edit
	if !caller.IsAdmin() && st.User != callerID {
		return nil, story.ErrUnauthorizedAction
	}

	// 3. Unlink from the old owner, apply the edit, link the new owner
	oldOwner := st.Owner
	if !oldOwner.IsZero() {
		if err := s.ownerRepo.PullStory(ctx, oldOwner, st.ID); err != nil {
			return nil, fmt.Errorf("unlink story from owner: %w", err)
		}
	}

	set := map[string]interface{}{}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Poster != "" {
		set["poster"] = req.Poster
	}
	if req.Body != "" {
		set["body"] = req.Body
	}
	if req.Genres != "" {
		set["genres"] = req.GenreRef()
	}
	newOwner := oldOwner
	if req.Owner != "" {
		newOwner = req.OwnerRef()
		set["owner"] = newOwner
	}

	updated := st
	if len(set) > 0 {
		updated, err = s.repo.Update(ctx, id, set)
		if err != nil {
			return nil, err
		}
	}

	if !newOwner.IsZero() {
		if err := s.ownerRepo.PushStory(ctx, newOwner, st.ID); err != nil {
			return nil, fmt.Errorf("link story to owner: %w", err)
		}
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *storyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	// 1. Drop the story's comments first
	if _, err := s.repo.DeleteCommentsByStory(ctx, id); err != nil {
		return err
	}

	// 2. Remove the story itself
	st, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// 3. Unlink it from author and owner
	if err := s.userRepo.PullStory(ctx, st.User, st.ID); err != nil {
		return fmt.Errorf("unlink story from author: %w", err)
	}
	if !st.Owner.IsZero() {
		if err := s.ownerRepo.PullStory(ctx, st.Owner, st.ID); err != nil {
			return fmt.Errorf("unlink story from owner: %w", err)
		}
	}

	s.invalidateCache(ctx)
	return nil
}

// ========================================
// COMMENTS
// ========================================

func (s *storyService) ListComments(ctx context.Context, storyID primitive.ObjectID) ([]story.Comment, error) {
	if _, err := s.repo.FindByID(ctx, storyID); err != nil {
		return nil, err
	}

	return s.repo.ListCommentsByStory(ctx, storyID)
}

func (s *storyService) AddComment(ctx context.Context, callerID, storyID primitive.ObjectID, req story.CommentRequest) (*story.Comment, error) {
	if _, err := s.repo.FindByID(ctx, storyID); err != nil {
		return nil, err
	}

	c := &story.Comment{
		Comment: req.Comment,
		StoryID: storyID,
		Owner:   callerID,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	if err := s.repo.PushComment(ctx, storyID, c.ID); err != nil {
		return nil, fmt.Errorf("link comment to story: %w", err)
	}

	s.invalidateCache(ctx)
	return c, nil
}

// UpdateComment authorizes against the STORY's owner reference, not the
// comment's author. Kept as the platform's documented behavior; see
// DESIGN.md.
func (s *storyService) UpdateComment(ctx context.Context, callerID, storyID, commentID primitive.ObjectID, req story.CommentRequest) (*story.Comment, error) {
	st, err := s.repo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindCommentByID(ctx, commentID); err != nil {
		return nil, err
	}

	if st.Owner != callerID {
		return nil, story.ErrUnauthorizedAction
	}

	updated, err := s.repo.UpdateCommentText(ctx, commentID, req.Comment)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *storyService) DeleteComment(ctx context.Context, callerID, storyID, commentID primitive.ObjectID) error {
	if _, err := s.repo.FindByID(ctx, storyID); err != nil {
		return err
	}

	c, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && c.Owner != callerID {
		return story.ErrUnauthorizedAction
	}

	if err := s.repo.PullComment(ctx, storyID, commentID); err != nil {
		return fmt.Errorf("unlink comment from story: %w", err)
	}
	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// ========================================
// RATINGS AND LIKES
// ========================================

func (s *storyService) AddRating(ctx context.Context, callerID, storyID primitive.ObjectID, req story.RatingRequest) error {
	st, err := s.repo.FindByID(ctx, storyID)
	if err != nil {
		return err
	}

	if st.HasRatingFrom(callerID) {
		return story.ErrAlreadyRated
	}

	// Append, then persist the recomputed mean in a second write.
	updated, err := s.repo.PushRating(ctx, storyID, story.Rating{UserID: callerID, Rating: *req.Rating})
	if err != nil {
		return err
	}

	if err := s.repo.SetRatingAverage(ctx, storyID, updated.MeanRating()); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *storyService) ToggleLike(ctx context.Context, callerID, storyID primitive.ObjectID) (bool, error) {
	st, err := s.repo.FindByID(ctx, storyID)
	if err != nil {
		return false, err
	}

	if st.IsLikedBy(callerID) {
		if err := s.repo.PullLike(ctx, storyID, callerID); err != nil {
			return false, err
		}
		if err := s.userRepo.PullLike(ctx, callerID, st.ID); err != nil {
			return false, fmt.Errorf("unlink like from user: %w", err)
		}

		s.invalidateCache(ctx)
		return false, nil
	}

	if err := s.repo.PushLike(ctx, storyID, callerID); err != nil {
		return false, err
	}
	if err := s.userRepo.PushLike(ctx, callerID, st.ID); err != nil {
		return false, fmt.Errorf("link like to user: %w", err)
	}

	s.invalidateCache(ctx)
	return true, nil
}

func (s *storyService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, storyCachePattern); err != nil {
		logger.Warn("Story cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
