package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validAdd() AddRequest {
	return AddRequest{
		Title:       "The Lighthouse Keeper",
		Description: "A keeper's last winter on the rock.",
		Poster:      "https://cdn.example.com/posters/lighthouse.jpg",
		Body:        "The lamp had burned for forty years without pause.",
	}
}

func TestAddRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AddRequest)
		wantErr bool
	}{
		{"valid", func(r *AddRequest) {}, false},
		{"valid with refs", func(r *AddRequest) {
			r.Genres = primitive.NewObjectID().Hex()
			r.Owner = primitive.NewObjectID().Hex()
		}, false},
		{"missing title", func(r *AddRequest) { r.Title = "" }, true},
		{"description too short", func(r *AddRequest) { r.Description = "abc" }, true},
		{"poster not a url", func(r *AddRequest) { r.Poster = "::: nope" }, true},
		{"missing poster", func(r *AddRequest) { r.Poster = "" }, true},
		{"body too short", func(r *AddRequest) { r.Body = "abcd" }, true},
		{"bad genre id", func(r *AddRequest) { r.Genres = "zzz" }, true},
		{"bad owner id", func(r *AddRequest) { r.Owner = "zzz" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAdd()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEditRequestAllFieldsOptional(t *testing.T) {
	assert.NoError(t, EditRequest{}.Validate())
	assert.NoError(t, EditRequest{Title: "New Title"}.Validate())
	assert.Error(t, EditRequest{Description: "abc"}.Validate())
}

func TestRatingRequestValidate(t *testing.T) {
	zero, five, six, neg := 0.0, 5.0, 6.0, -1.0

	assert.Error(t, RatingRequest{}.Validate(), "missing rating")
	assert.NoError(t, RatingRequest{Rating: &zero}.Validate(), "zero is a valid rating")
	assert.NoError(t, RatingRequest{Rating: &five}.Validate())
	assert.Error(t, RatingRequest{Rating: &six}.Validate())
	assert.Error(t, RatingRequest{Rating: &neg}.Validate())
}

func TestCommentRequestValidate(t *testing.T) {
	assert.Error(t, CommentRequest{}.Validate())
	assert.Error(t, CommentRequest{Comment: "ab"}.Validate())
	assert.NoError(t, CommentRequest{Comment: "abc"}.Validate())
}

func TestMeanRating(t *testing.T) {
	s := Story{}
	assert.Zero(t, s.MeanRating())

	s.Ratings = []Rating{
		{UserID: primitive.NewObjectID(), Rating: 2},
		{UserID: primitive.NewObjectID(), Rating: 5},
	}
	assert.InDelta(t, 3.5, s.MeanRating(), 1e-9)
}

func TestHasRatingFromAndIsLikedBy(t *testing.T) {
	rater := primitive.NewObjectID()
	liker := primitive.NewObjectID()

	s := Story{
		Ratings: []Rating{{UserID: rater, Rating: 4}},
		Likes:   []primitive.ObjectID{liker},
	}

	assert.True(t, s.HasRatingFrom(rater))
	assert.False(t, s.HasRatingFrom(primitive.NewObjectID()))
	assert.True(t, s.IsLikedBy(liker))
	assert.False(t, s.IsLikedBy(primitive.NewObjectID()))
}
