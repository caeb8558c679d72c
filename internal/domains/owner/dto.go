package owner

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/shared"
)

// AddRequest creates a new owner (admin only).
type AddRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Photo     string   `json:"photo,omitempty"`
	Type      string   `json:"type"`
	Stories   []string `json:"stories,omitempty"`
}

func (r AddRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Photo, validation.When(r.Photo != "", is.URL)),
		validation.Field(&r.Type, validation.Required, validation.In(TypeOwner)),
		validation.Field(&r.Stories, validation.Each(is.MongoID)),
	)
}

// EditRequest carries a partial update: only supplied fields change.
type EditRequest struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Photo     string   `json:"photo,omitempty"`
	Type      string   `json:"type,omitempty"`
	Stories   []string `json:"stories,omitempty"`
}

func (r EditRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.When(r.FirstName != "", validation.Length(2, 100))),
		validation.Field(&r.LastName, validation.When(r.LastName != "", validation.Length(2, 100))),
		validation.Field(&r.Photo, validation.When(r.Photo != "", is.URL)),
		validation.Field(&r.Type, validation.When(r.Type != "", validation.In(TypeOwner))),
		validation.Field(&r.Stories, validation.Each(is.MongoID)),
	)
}

// StoryRefs converts the request's story id strings into ObjectIDs.
// Validation has already vetted the format.
func (r AddRequest) StoryRefs() []primitive.ObjectID {
	return storyIDs(r.Stories)
}

// StoryRefs converts the request's story id strings into ObjectIDs.
func (r EditRequest) StoryRefs() []primitive.ObjectID {
	return storyIDs(r.Stories)
}

func storyIDs(raw []string) []primitive.ObjectID {
	if raw == nil {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// OwnerDTO is an owner with its story references resolved into story
// documents, the shape GET /api/owners responds with.
type OwnerDTO struct {
	ID        primitive.ObjectID    `json:"_id"`
	FirstName string                `json:"firstName"`
	LastName  string                `json:"lastName"`
	Photo     string                `json:"photo,omitempty"`
	Type      string                `json:"type,omitempty"`
	Stories   []shared.StorySummary `json:"stories"`
}
