package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/genre"
	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/domains/story"
	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/shared"
)

// ========================================
// FAKES
// ========================================

type fakeStoryRepo struct {
	stories  map[primitive.ObjectID]*story.Story
	comments map[primitive.ObjectID]*story.Comment
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{
		stories:  map[primitive.ObjectID]*story.Story{},
		comments: map[primitive.ObjectID]*story.Comment{},
	}
}

func (r *fakeStoryRepo) Create(_ context.Context, s *story.Story) error {
	s.ID = primitive.NewObjectID()
	if s.Ratings == nil {
		s.Ratings = []story.Rating{}
	}
	if s.Comments == nil {
		s.Comments = []primitive.ObjectID{}
	}
	if s.Likes == nil {
		s.Likes = []primitive.ObjectID{}
	}
	r.stories[s.ID] = s
	return nil
}

func (r *fakeStoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*story.Story, error) {
	s, ok := r.stories[id]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStoryRepo) List(_ context.Context) ([]story.Story, error) {
	out := []story.Story{}
	for _, s := range r.stories {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStoryRepo) Update(_ context.Context, id primitive.ObjectID, set map[string]interface{}) (*story.Story, error) {
	s, ok := r.stories[id]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	for key, value := range set {
		switch key {
		case "title":
			s.Title = value.(string)
		case "description":
			s.Description = value.(string)
		case "poster":
			s.Poster = value.(string)
		case "body":
			s.Body = value.(string)
		case "genres":
			s.Genres = value.(primitive.ObjectID)
		case "owner":
			s.Owner = value.(primitive.ObjectID)
		}
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStoryRepo) Delete(_ context.Context, id primitive.ObjectID) (*story.Story, error) {
	s, ok := r.stories[id]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	delete(r.stories, id)
	return s, nil
}

func (r *fakeStoryRepo) PushRating(_ context.Context, storyID primitive.ObjectID, rating story.Rating) (*story.Story, error) {
	s, ok := r.stories[storyID]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	s.Ratings = append(s.Ratings, rating)
	copied := *s
	return &copied, nil
}

func (r *fakeStoryRepo) SetRatingAverage(_ context.Context, storyID primitive.ObjectID, avg float64) error {
	s, ok := r.stories[storyID]
	if !ok {
		return story.ErrStoryNotFound
	}
	s.RatingAverage = avg
	return nil
}

func (r *fakeStoryRepo) PushLike(_ context.Context, storyID, userID primitive.ObjectID) error {
	if s, ok := r.stories[storyID]; ok {
		s.Likes = append(s.Likes, userID)
	}
	return nil
}

func (r *fakeStoryRepo) PullLike(_ context.Context, storyID, userID primitive.ObjectID) error {
	if s, ok := r.stories[storyID]; ok {
		s.Likes = removeID(s.Likes, userID)
	}
	return nil
}

func (r *fakeStoryRepo) CreateComment(_ context.Context, c *story.Comment) error {
	c.ID = primitive.NewObjectID()
	r.comments[c.ID] = c
	return nil
}

func (r *fakeStoryRepo) FindCommentByID(_ context.Context, id primitive.ObjectID) (*story.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, story.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeStoryRepo) ListCommentsByStory(_ context.Context, storyID primitive.ObjectID) ([]story.Comment, error) {
	out := []story.Comment{}
	for _, c := range r.comments {
		if c.StoryID == storyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) ListComments(_ context.Context) ([]story.Comment, error) {
	out := []story.Comment{}
	for _, c := range r.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeStoryRepo) UpdateCommentText(_ context.Context, id primitive.ObjectID, text string) (*story.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, story.ErrCommentNotFound
	}
	c.Comment = text
	copied := *c
	return &copied, nil
}

func (r *fakeStoryRepo) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.comments[id]; !ok {
		return story.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeStoryRepo) DeleteCommentsByStory(_ context.Context, storyID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, c := range r.comments {
		if c.StoryID == storyID {
			delete(r.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeStoryRepo) PushComment(_ context.Context, storyID, commentID primitive.ObjectID) error {
	if s, ok := r.stories[storyID]; ok {
		s.Comments = append(s.Comments, commentID)
	}
	return nil
}

func (r *fakeStoryRepo) PullComment(_ context.Context, storyID, commentID primitive.ObjectID) error {
	if s, ok := r.stories[storyID]; ok {
		s.Comments = removeID(s.Comments, commentID)
	}
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*user.User{}}
}

func (r *fakeUserRepo) add(role user.Role) *user.User {
	u := &user.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Test",
		LastName:  "User",
		Email:     primitive.NewObjectID().Hex() + "@example.com",
		Role:      role,
		Stories:   []primitive.ObjectID{},
		Likes:     []primitive.ObjectID{},
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	u.ID = primitive.NewObjectID()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, em string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == em {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindAdminByEmail(_ context.Context, em string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == em && u.Role == user.RoleAdmin {
			return u, nil
		}
	}
	return nil, user.ErrAdminNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	out := []user.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	if u, ok := r.users[id]; ok {
		u.Password = hash
	}
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, firstName, lastName, avatar, passwordHash string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) PushStory(_ context.Context, userID, storyID primitive.ObjectID) error {
	if u, ok := r.users[userID]; ok {
		u.Stories = append(u.Stories, storyID)
	}
	return nil
}

func (r *fakeUserRepo) PullStory(_ context.Context, userID, storyID primitive.ObjectID) error {
	if u, ok := r.users[userID]; ok {
		u.Stories = removeID(u.Stories, storyID)
	}
	return nil
}

func (r *fakeUserRepo) PushLike(_ context.Context, userID, storyID primitive.ObjectID) error {
	if u, ok := r.users[userID]; ok {
		u.Likes = append(u.Likes, storyID)
	}
	return nil
}

func (r *fakeUserRepo) PullLike(_ context.Context, userID, storyID primitive.ObjectID) error {
	if u, ok := r.users[userID]; ok {
		u.Likes = removeID(u.Likes, storyID)
	}
	return nil
}

func (r *fakeUserRepo) ResolveStories(_ context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error) {
	return []shared.StorySummary{}, nil
}

type fakeOwnerRepo struct {
	owners map[primitive.ObjectID]*owner.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: map[primitive.ObjectID]*owner.Owner{}}
}

func (r *fakeOwnerRepo) add() *owner.Owner {
	o := &owner.Owner{
		ID:        primitive.NewObjectID(),
		FirstName: "Sami",
		LastName:  "Odeh",
		Type:      owner.TypeOwner,
		Stories:   []primitive.ObjectID{},
	}
	r.owners[o.ID] = o
	return o
}

func (r *fakeOwnerRepo) Create(_ context.Context, o *owner.Owner) error {
	o.ID = primitive.NewObjectID()
	r.owners[o.ID] = o
	return nil
}

func (r *fakeOwnerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*owner.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	return o, nil
}

func (r *fakeOwnerRepo) List(_ context.Context) ([]owner.Owner, error) {
	out := []owner.Owner{}
	for _, o := range r.owners {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, id primitive.ObjectID, set map[string]interface{}) (*owner.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	return o, nil
}

func (r *fakeOwnerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.owners[id]; !ok {
		return owner.ErrOwnerNotFound
	}
	delete(r.owners, id)
	return nil
}

func (r *fakeOwnerRepo) PushStory(_ context.Context, ownerID, storyID primitive.ObjectID) error {
	if o, ok := r.owners[ownerID]; ok {
		o.Stories = append(o.Stories, storyID)
	}
	return nil
}

func (r *fakeOwnerRepo) PullStory(_ context.Context, ownerID, storyID primitive.ObjectID) error {
	if o, ok := r.owners[ownerID]; ok {
		o.Stories = removeID(o.Stories, storyID)
	}
	return nil
}

func (r *fakeOwnerRepo) ResolveStories(_ context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error) {
	return []shared.StorySummary{}, nil
}

type fakeGenreRepo struct {
	genres map[primitive.ObjectID]*genre.Genre
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: map[primitive.ObjectID]*genre.Genre{}}
}

func (r *fakeGenreRepo) Create(_ context.Context, g *genre.Genre) (*genre.Genre, error) {
	g.ID = primitive.NewObjectID()
	r.genres[g.ID] = g
	return g, nil
}

func (r *fakeGenreRepo) FindByID(_ context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	g, ok := r.genres[id]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return g, nil
}

func (r *fakeGenreRepo) List(_ context.Context) ([]genre.Genre, error) {
	return []genre.Genre{}, nil
}

func (r *fakeGenreRepo) UpdateName(_ context.Context, id primitive.ObjectID, name string) (*genre.Genre, error) {
	g, ok := r.genres[id]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	g.Name = name
	return g, nil
}

func (r *fakeGenreRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.genres, id)
	return nil
}

// fakeCache stores JSON-encoded values in memory.
type fakeCache struct {
	store map[string][]byte
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = raw
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, _ string) error {
	c.store = map[string][]byte{}
	return nil
}

func (c *fakeCache) Ping(_ context.Context) error { return nil }

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

// ========================================
// FIXTURE
// ========================================

type fixture struct {
	svc    story.Service
	repo   *fakeStoryRepo
	users  *fakeUserRepo
	owners *fakeOwnerRepo
	genres *fakeGenreRepo
	cache  *fakeCache
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newFakeStoryRepo(),
		users:  newFakeUserRepo(),
		owners: newFakeOwnerRepo(),
		genres: newFakeGenreRepo(),
		cache:  newFakeCache(),
	}
	f.svc = NewStoryService(f.repo, f.users, f.owners, f.genres, f.cache)
	return f
}

func addRequest(ownerID string) story.AddRequest {
	return story.AddRequest{
		Title:       "The Lighthouse Keeper",
		Description: "A keeper's last winter on the rock.",
		Poster:      "https://cdn.example.com/posters/lighthouse.jpg",
		Body:        "The lamp had burned for forty years without pause.",
		Owner:       ownerID,
	}
}

// ========================================
// TESTS
// ========================================

func TestCreateLinksAuthorAndOwner(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	o := f.owners.add()

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(o.ID.Hex()))
	require.NoError(t, err)
	assert.Equal(t, author.ID, created.User)
	assert.Equal(t, o.ID, created.Owner)
	assert.Contains(t, author.Stories, created.ID)
	assert.Contains(t, o.Stories, created.ID)
}

func TestCreateWithoutOwner(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)
	assert.True(t, created.Owner.IsZero())
	assert.Contains(t, author.Stories, created.ID)
}

func TestUpdateRequiresAdminOrAuthor(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	stranger := f.users.add(user.RoleUser)
	admin := f.users.add(user.RoleAdmin)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), stranger.ID, created.ID, story.EditRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, story.ErrUnauthorizedAction)

	updated, err := f.svc.Update(context.Background(), author.ID, created.ID, story.EditRequest{Title: "Revised"})
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)

	updated, err = f.svc.Update(context.Background(), admin.ID, created.ID, story.EditRequest{Title: "Admin Edit"})
	require.NoError(t, err)
	assert.Equal(t, "Admin Edit", updated.Title)
}

func TestUpdateRelinksOwner(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	oldOwner := f.owners.add()
	newOwner := f.owners.add()

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(oldOwner.ID.Hex()))
	require.NoError(t, err)
	require.Contains(t, oldOwner.Stories, created.ID)

	updated, err := f.svc.Update(context.Background(), author.ID, created.ID, story.EditRequest{Owner: newOwner.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, newOwner.ID, updated.Owner)
	assert.NotContains(t, oldOwner.Stories, created.ID)
	assert.Contains(t, newOwner.Stories, created.ID)
}

func TestUpdateMissingStory(t *testing.T) {
	f := newFixture()
	caller := f.users.add(user.RoleAdmin)

	_, err := f.svc.Update(context.Background(), caller.ID, primitive.NewObjectID(), story.EditRequest{Title: "X"})
	assert.ErrorIs(t, err, story.ErrStoryNotFound)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	o := f.owners.add()

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(o.ID.Hex()))
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), author.ID, created.ID, story.CommentRequest{Comment: "lovely read"})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, story.ErrStoryNotFound)
	assert.Empty(t, f.repo.comments)
	assert.NotContains(t, author.Stories, created.ID)
	assert.NotContains(t, o.Stories, created.ID)
}

func TestAddRatingComputesAverage(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	rater1 := f.users.add(user.RoleUser)
	rater2 := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	four, one := 4.0, 1.0
	require.NoError(t, f.svc.AddRating(context.Background(), rater1.ID, created.ID, story.RatingRequest{Rating: &four}))
	require.NoError(t, f.svc.AddRating(context.Background(), rater2.ID, created.ID, story.RatingRequest{Rating: &one}))

	stored := f.repo.stories[created.ID]
	assert.InDelta(t, 2.5, stored.RatingAverage, 1e-9)
	assert.Len(t, stored.Ratings, 2)
}

func TestAddRatingRejectsSecondRating(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	rater := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	three, five := 3.0, 5.0
	require.NoError(t, f.svc.AddRating(context.Background(), rater.ID, created.ID, story.RatingRequest{Rating: &three}))

	err = f.svc.AddRating(context.Background(), rater.ID, created.ID, story.RatingRequest{Rating: &five})
	assert.ErrorIs(t, err, story.ErrAlreadyRated)

	stored := f.repo.stories[created.ID]
	assert.InDelta(t, 3.0, stored.RatingAverage, 1e-9)
}

func TestToggleLikeIsSymmetricInverse(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	liker := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	liked, err := f.svc.ToggleLike(context.Background(), liker.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Contains(t, f.repo.stories[created.ID].Likes, liker.ID)
	assert.Contains(t, liker.Likes, created.ID)

	liked, err = f.svc.ToggleLike(context.Background(), liker.ID, created.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NotContains(t, f.repo.stories[created.ID].Likes, liker.ID)
	assert.NotContains(t, liker.Likes, created.ID)
}

func TestAddCommentLinksStory(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	commenter := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	c, err := f.svc.AddComment(context.Background(), commenter.ID, created.ID, story.CommentRequest{Comment: "what an ending"})
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, c.Owner)
	assert.Equal(t, created.ID, c.StoryID)
	assert.Contains(t, f.repo.stories[created.ID].Comments, c.ID)
}

func TestUpdateCommentChecksStoryOwner(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	commenter := f.users.add(user.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	c, err := f.svc.AddComment(context.Background(), commenter.ID, created.ID, story.CommentRequest{Comment: "first draft"})
	require.NoError(t, err)

	// Editing compares the caller against the story's owner reference,
	// so even the comment's author is rejected here.
	_, err = f.svc.UpdateComment(context.Background(), commenter.ID, created.ID, c.ID, story.CommentRequest{Comment: "second draft"})
	assert.ErrorIs(t, err, story.ErrUnauthorizedAction)
}

func TestDeleteCommentAuthorOrAdmin(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	commenter := f.users.add(user.RoleUser)
	stranger := f.users.add(user.RoleUser)
	admin := f.users.add(user.RoleAdmin)

	created, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	c, err := f.svc.AddComment(context.Background(), commenter.ID, created.ID, story.CommentRequest{Comment: "delete me later"})
	require.NoError(t, err)

	err = f.svc.DeleteComment(context.Background(), stranger.ID, created.ID, c.ID)
	assert.ErrorIs(t, err, story.ErrUnauthorizedAction)

	err = f.svc.DeleteComment(context.Background(), commenter.ID, created.ID, c.ID)
	require.NoError(t, err)
	assert.NotContains(t, f.repo.stories[created.ID].Comments, c.ID)

	c2, err := f.svc.AddComment(context.Background(), commenter.ID, created.ID, story.CommentRequest{Comment: "admin removes this"})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteComment(context.Background(), admin.ID, created.ID, c2.ID))
}

func TestListCommentsMissingStory(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ListComments(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, story.ErrStoryNotFound)
}

func TestListServesFromCacheAndInvalidatesOnMutation(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)

	_, err := f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)

	first, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, f.cache.sets)

	// Second read hits the cache, no new write.
	second, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, f.cache.sets)

	// A mutation clears the cache; the next read repopulates it.
	_, err = f.svc.Create(context.Background(), author.ID, addRequest(""))
	require.NoError(t, err)
	assert.Empty(t, f.cache.store)

	third, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, f.cache.sets)
}

func TestGetResolvesGenreAndRestrictedCommenters(t *testing.T) {
	f := newFixture()
	author := f.users.add(user.RoleUser)
	commenter := f.users.add(user.RoleUser)
	g, err := f.genres.Create(context.Background(), &genre.Genre{Name: "Mystery"})
	require.NoError(t, err)

	req := addRequest("")
	req.Genres = g.ID.Hex()
	created, err := f.svc.Create(context.Background(), author.ID, req)
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), commenter.ID, created.ID, story.CommentRequest{Comment: "who did it?"})
	require.NoError(t, err)

	detail, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Genres)
	assert.Equal(t, "Mystery", detail.Genres.Name)
	require.Len(t, detail.Comments, 1)

	restricted, ok := detail.Comments[0].Owner.(story.CommenterDTO)
	require.True(t, ok)
	assert.Equal(t, commenter.ID, restricted.ID)
}
