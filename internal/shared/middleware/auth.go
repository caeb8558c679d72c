package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/shared/response"
	"storyshare-backend/pkg/jwt"
)

// ContextUserID is the gin context key under which the authenticated
// user's id is stored.
const ContextUserID = "userID"

// RequireUser authenticates the request from the Authorization header.
// The token is trusted once its signature verifies; no database lookup
// is performed. The decoded user id is injected into the context.
func RequireUser(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, jwtManager)
		if !ok {
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// RequireAdmin authenticates like RequireUser but additionally loads the
// user record and rejects anyone whose role is not Admin.
func RequireAdmin(jwtManager *jwt.Manager, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, jwtManager)
		if !ok {
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				response.NotFound(c, "user not found")
			} else {
				response.InternalServerError(c, err.Error())
			}
			c.Abort()
			return
		}

		if u.Role != user.RoleAdmin {
			response.Forbidden(c, "you are not an admin")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// authenticate extracts and verifies the bearer token, returning the
// token's user id. On failure it writes the error response and aborts.
func authenticate(c *gin.Context, jwtManager *jwt.Manager) (primitive.ObjectID, bool) {
	// The header carries the raw token; a "Bearer " prefix is tolerated
	// for clients that insist on the scheme.
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		response.Unauthorized(c, "token is missing")
		c.Abort()
		return primitive.NilObjectID, false
	}

	claims, err := jwtManager.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid token")
		c.Abort()
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "invalid user id in token")
		c.Abort()
		return primitive.NilObjectID, false
	}

	return userID, true
}

// GetUserID retrieves the authenticated user's id set by RequireUser or
// RequireAdmin. The zero ObjectID is returned when the middleware did
// not run.
func GetUserID(c *gin.Context) primitive.ObjectID {
	if v, exists := c.Get(ContextUserID); exists {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}
