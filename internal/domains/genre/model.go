package genre

import "go.mongodb.org/mongo-driver/bson/primitive"

// Genre is an admin-managed label stories can reference.
type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}
