package owner

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypeOwner is the only admitted value for the type tag; the field
// exists to distinguish authorial personas from other entities in the
// frontend.
const TypeOwner = "Owner"

// Owner is an in-fiction authorial persona that stories are attributed
// to, distinct from the authenticated user who wrote them. Persisted in
// the `owners` collection.
type Owner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`

	// Stories attributed to this persona; kept symmetric with the
	// story documents' owner field.
	Stories []primitive.ObjectID `bson:"stories" json:"stories"`
}
