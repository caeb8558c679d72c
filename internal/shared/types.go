package shared

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task types and queue names shared between the API (enqueue side) and
// the worker (processing side).
const (
	TypeSendResetEmail     = "email:reset_password"
	TypeReconcileStoryRefs = "story:reconcile_references"

	QueueDefault = "default"
	QueueEmail   = "email"
)

// StorySummary is the story document as embedded in resolved views
// (profile stories/likes, owner stories). It lives here instead of the
// story domain to avoid import cycles between domains.
type StorySummary struct {
	ID            primitive.ObjectID   `bson:"_id" json:"_id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	Poster        string               `bson:"poster" json:"poster"`
	Body          string               `bson:"body" json:"body"`
	RatingAverage float64              `bson:"ratingAverage" json:"ratingAverage"`
	Owner         primitive.ObjectID   `bson:"owner,omitempty" json:"owner,omitempty"`
	User          primitive.ObjectID   `bson:"user,omitempty" json:"user,omitempty"`
	Genres        primitive.ObjectID   `bson:"genres,omitempty" json:"genres,omitempty"`
	Comments      []primitive.ObjectID `bson:"comments" json:"comments"`
	Likes         []primitive.ObjectID `bson:"likes" json:"likes"`
}
