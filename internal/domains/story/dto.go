package story

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/genre"
	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/domains/user"
)

// ========================================
// REQUEST DTOS
// ========================================

// AddRequest creates a new story. The caller becomes the author;
// genre and owner references are optional.
type AddRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	Body        string `json:"body"`
	Genres      string `json:"genres,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

func (r AddRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(5, 1000)),
		validation.Field(&r.Poster, validation.Required, is.URL, validation.Length(0, 1000)),
		validation.Field(&r.Body, validation.Required, validation.Length(5, 0)),
		validation.Field(&r.Genres, validation.When(r.Genres != "", is.MongoID)),
		validation.Field(&r.Owner, validation.When(r.Owner != "", is.MongoID)),
	)
}

// GenreRef returns the genre reference, NilObjectID when absent.
func (r AddRequest) GenreRef() primitive.ObjectID { return objectIDOrNil(r.Genres) }

// OwnerRef returns the owner reference, NilObjectID when absent.
func (r AddRequest) OwnerRef() primitive.ObjectID { return objectIDOrNil(r.Owner) }

// EditRequest carries a partial update: only supplied fields change.
type EditRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Body        string `json:"body,omitempty"`
	Genres      string `json:"genres,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

func (r EditRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != "", validation.Length(1, 200))),
		validation.Field(&r.Description, validation.When(r.Description != "", validation.Length(5, 1000))),
		validation.Field(&r.Poster, validation.When(r.Poster != "", is.URL, validation.Length(0, 1000))),
		validation.Field(&r.Body, validation.When(r.Body != "", validation.Length(5, 0))),
		validation.Field(&r.Genres, validation.When(r.Genres != "", is.MongoID)),
		validation.Field(&r.Owner, validation.When(r.Owner != "", is.MongoID)),
	)
}

func (r EditRequest) GenreRef() primitive.ObjectID { return objectIDOrNil(r.Genres) }
func (r EditRequest) OwnerRef() primitive.ObjectID { return objectIDOrNil(r.Owner) }

// CommentRequest is shared by comment create, edit, and (a preserved
// contract oddity) delete.
type CommentRequest struct {
	Comment string `json:"comment"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.Required, validation.Length(3, 1000)),
	)
}

// RatingRequest scores a story 0-5. The pointer keeps an explicit 0
// distinguishable from a missing field.
type RatingRequest struct {
	Rating *float64 `json:"rating"`
}

func (r RatingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.NotNil, validation.Min(0.0), validation.Max(5.0)),
	)
}

func objectIDOrNil(raw string) primitive.ObjectID {
	if raw == "" {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// ========================================
// RESOLVED VIEWS
// ========================================

// CommenterDTO is the restricted commenter view served by
// GET /api/stories/:id (no password, email, likes, or role).
type CommenterDTO struct {
	ID        primitive.ObjectID   `json:"_id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Avatar    string               `json:"avatar"`
	Stories   []primitive.ObjectID `json:"stories"`
}

// ResolvedComment pairs a comment with its commenter, resolved to
// whichever view the endpoint serves.
type ResolvedComment struct {
	ID      primitive.ObjectID `json:"_id"`
	Comment string             `json:"comment"`
	StoryID primitive.ObjectID `json:"storyId"`
	Owner   interface{}        `json:"owner"`
}

// ListItemDTO is the list view: genre, owner, and comments (with full
// commenters) resolved into documents.
type ListItemDTO struct {
	ID            primitive.ObjectID   `json:"_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Poster        string               `json:"poster"`
	Body          string               `json:"body"`
	Ratings       []Rating             `json:"ratings"`
	RatingAverage float64              `json:"ratingAverage"`
	Owner         *owner.Owner         `json:"owner,omitempty"`
	User          primitive.ObjectID   `json:"user"`
	Genres        *genre.Genre         `json:"genres,omitempty"`
	Comments      []ResolvedComment    `json:"comments"`
	Likes         []primitive.ObjectID `json:"likes"`
}

// DetailDTO is the single-story view: genre and comments resolved,
// commenters restricted, owner left as a reference.
type DetailDTO struct {
	ID            primitive.ObjectID   `json:"_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Poster        string               `json:"poster"`
	Body          string               `json:"body"`
	Ratings       []Rating             `json:"ratings"`
	RatingAverage float64              `json:"ratingAverage"`
	Owner         primitive.ObjectID   `json:"owner,omitempty"`
	User          primitive.ObjectID   `json:"user"`
	Genres        *genre.Genre         `json:"genres,omitempty"`
	Comments      []ResolvedComment    `json:"comments"`
	Likes         []primitive.ObjectID `json:"likes"`
}

// RestrictCommenter projects a user onto the detail view's commenter
// shape.
func RestrictCommenter(u *user.User) CommenterDTO {
	stories := u.Stories
	if stories == nil {
		stories = []primitive.ObjectID{}
	}
	return CommenterDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Stories:   stories,
	}
}
