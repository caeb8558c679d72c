package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/shared/response"
)

// CheckObjectID rejects requests whose named path parameters are not
// well-formed document ids, before the handler runs.
//
// Usage:
//
//	stories.GET("/:id", middleware.CheckObjectID("id"), handler.GetByID)
func CheckObjectID(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, param := range params {
			if _, err := primitive.ObjectIDFromHex(c.Param(param)); err != nil {
				response.BadRequest(c, "the path parameter given is not a valid object id")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// PathObjectID parses a path parameter previously vetted by
// CheckObjectID into an ObjectID.
func PathObjectID(c *gin.Context, param string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(c.Param(param))
	return id
}
