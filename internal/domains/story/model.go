package story

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating is a single user's score on a story, embedded in the story
// document. A user rates a story at most once.
type Rating struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Rating float64            `bson:"rating" json:"rating"`
}

// Story is the central document of the platform. Owner, author (user),
// genre, comments, and likes are held as cross-references; the
// reconciliation job repairs asymmetry the sequential writes can leave
// behind.
type Story struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	Poster        string               `bson:"poster" json:"poster"`
	Body          string               `bson:"body" json:"body"`
	Ratings       []Rating             `bson:"ratings" json:"ratings"`
	RatingAverage float64              `bson:"ratingAverage" json:"ratingAverage"`
	Owner         primitive.ObjectID   `bson:"owner,omitempty" json:"owner,omitempty"`
	User          primitive.ObjectID   `bson:"user" json:"user"`
	Genres        primitive.ObjectID   `bson:"genres,omitempty" json:"genres,omitempty"`
	Comments      []primitive.ObjectID `bson:"comments" json:"comments"`
	Likes         []primitive.ObjectID `bson:"likes" json:"likes"`
}

// HasRatingFrom reports whether the user already rated this story.
func (s *Story) HasRatingFrom(userID primitive.ObjectID) bool {
	for _, r := range s.Ratings {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// IsLikedBy reports whether the user's id is in the like list.
func (s *Story) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range s.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// MeanRating computes the arithmetic mean of the embedded ratings,
// 0 when there are none.
func (s *Story) MeanRating() float64 {
	if len(s.Ratings) == 0 {
		return 0
	}

	var sum float64
	for _, r := range s.Ratings {
		sum += r.Rating
	}
	return sum / float64(len(s.Ratings))
}

// Comment lives in its own collection and points back at both the
// story and the commenting user (its owner).
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Comment string             `bson:"comment" json:"comment"`
	StoryID primitive.ObjectID `bson:"storyId" json:"storyId"`
	Owner   primitive.ObjectID `bson:"owner" json:"owner"`
}
