package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the domain entity persisted in the `users` collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`

	// Password holds the bcrypt hash. Never serialized.
	Password string `bson:"password" json:"-"`

	Avatar string `bson:"avatar" json:"avatar"`
	Role   Role   `bson:"role" json:"role"`

	// Stories the user authored; Likes the user gave. Both hold story
	// ids and are kept symmetric with the story documents.
	Stories []primitive.ObjectID `bson:"stories" json:"stories"`
	Likes   []primitive.ObjectID `bson:"likes" json:"likes"`
}

// Role enum — the platform knows exactly two roles.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// IsValid reports whether the role is one of the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// IsAdmin is the single place role-based dispatch happens; handlers and
// services call this instead of comparing strings.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasLiked reports whether the user's like list contains the story.
func (u *User) HasLiked(storyID primitive.ObjectID) bool {
	for _, id := range u.Likes {
		if id == storyID {
			return true
		}
	}
	return false
}
