package job

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/domains/story"
	"storyshare-backend/internal/domains/user"
)

// ReconcileStoryRefsPayload is empty for now; the job always walks the
// whole stories collection.
type ReconcileStoryRefsPayload struct{}

// ============================================
// Story Cross-Reference Reconciliation
// ============================================
// Story mutations update several documents in sequence without a
// transaction, so a crash mid-sequence leaves the cross-references
// asymmetric. This handler restores the invariants:
//   - story id present in its author's and owner's story lists
//   - story.comments matches the comments collection
//   - story.likes and the likers' like lists mirror each other
// Every repair is an idempotent push or pull, so reruns are safe.

type ReconcileStoryRefsHandler struct {
	storyRepo story.Repository
	userRepo  user.Repository
	ownerRepo owner.Repository
}

func NewReconcileStoryRefsHandler(storyRepo story.Repository, userRepo user.Repository, ownerRepo owner.Repository) *ReconcileStoryRefsHandler {
	return &ReconcileStoryRefsHandler{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		ownerRepo: ownerRepo,
	}
}

func (h *ReconcileStoryRefsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	stories, err := h.storyRepo.List(ctx)
	if err != nil {
		return err
	}

	var repaired int
	for i := range stories {
		n, err := h.reconcileStory(ctx, &stories[i])
		if err != nil {
			return err
		}
		repaired += n
	}

	n, err := h.reconcileUserLikes(ctx, stories)
	if err != nil {
		return err
	}
	repaired += n

	log.Info().
		Int("stories", len(stories)).
		Int("repairs", repaired).
		Msg("Story cross-reference reconciliation finished")
	return nil
}

func (h *ReconcileStoryRefsHandler) reconcileStory(ctx context.Context, st *story.Story) (int, error) {
	var repaired int

	// 1. Author's story list
	author, err := h.userRepo.FindByID(ctx, st.User)
	switch {
	case err == nil:
		if !containsID(author.Stories, st.ID) {
			if err := h.userRepo.PushStory(ctx, author.ID, st.ID); err != nil {
				return repaired, err
			}
			repaired++
		}
	case errors.Is(err, user.ErrUserNotFound):
		// dangling author reference, nothing to repair
	default:
		return repaired, err
	}

	// 2. Owner's story list
	if !st.Owner.IsZero() {
		o, err := h.ownerRepo.FindByID(ctx, st.Owner)
		switch {
		case err == nil:
			if !containsID(o.Stories, st.ID) {
				if err := h.ownerRepo.PushStory(ctx, o.ID, st.ID); err != nil {
					return repaired, err
				}
				repaired++
			}
		case errors.Is(err, owner.ErrOwnerNotFound):
		default:
			return repaired, err
		}
	}

	// 3. Comment references against the comments collection
	comments, err := h.storyRepo.ListCommentsByStory(ctx, st.ID)
	if err != nil {
		return repaired, err
	}

	existing := make(map[primitive.ObjectID]bool, len(comments))
	for _, c := range comments {
		existing[c.ID] = true
	}

	referenced := make(map[primitive.ObjectID]bool, len(st.Comments))
	for _, id := range st.Comments {
		referenced[id] = true
		if !existing[id] {
			if err := h.storyRepo.PullComment(ctx, st.ID, id); err != nil {
				return repaired, err
			}
			repaired++
		}
	}
	for _, c := range comments {
		if !referenced[c.ID] {
			if err := h.storyRepo.PushComment(ctx, st.ID, c.ID); err != nil {
				return repaired, err
			}
			repaired++
		}
	}

	// 4. Likers' like lists
	for _, likerID := range st.Likes {
		liker, err := h.userRepo.FindByID(ctx, likerID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				continue
			}
			return repaired, err
		}
		if !containsID(liker.Likes, st.ID) {
			if err := h.userRepo.PushLike(ctx, liker.ID, st.ID); err != nil {
				return repaired, err
			}
			repaired++
		}
	}

	return repaired, nil
}

// reconcileUserLikes repairs the opposite direction: a user's like list
// naming a story whose like list has lost the user.
func (h *ReconcileStoryRefsHandler) reconcileUserLikes(ctx context.Context, stories []story.Story) (int, error) {
	byID := make(map[primitive.ObjectID]*story.Story, len(stories))
	for i := range stories {
		byID[stories[i].ID] = &stories[i]
	}

	users, err := h.userRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	var repaired int
	for i := range users {
		u := &users[i]
		for _, storyID := range u.Likes {
			st, ok := byID[storyID]
			if !ok {
				// liked story no longer exists
				if err := h.userRepo.PullLike(ctx, u.ID, storyID); err != nil {
					return repaired, err
				}
				repaired++
				continue
			}
			if !st.IsLikedBy(u.ID) {
				if err := h.storyRepo.PushLike(ctx, st.ID, u.ID); err != nil {
					return repaired, err
				}
				st.Likes = append(st.Likes, u.ID)
				repaired++
			}
		}
	}

	return repaired, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
