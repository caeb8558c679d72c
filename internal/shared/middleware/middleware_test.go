package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/shared"
	"storyshare-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubUserRepo serves a fixed set of users to RequireAdmin.
type stubUserRepo struct {
	users map[primitive.ObjectID]*user.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Create(context.Context, *user.User) error { return nil }
func (r *stubUserRepo) FindByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (r *stubUserRepo) FindAdminByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrAdminNotFound
}
func (r *stubUserRepo) List(context.Context) ([]user.User, error) { return nil, nil }
func (r *stubUserRepo) Delete(context.Context, primitive.ObjectID) error {
	return nil
}
func (r *stubUserRepo) UpdatePassword(context.Context, primitive.ObjectID, string) error {
	return nil
}
func (r *stubUserRepo) UpdateProfile(context.Context, primitive.ObjectID, string, string, string, string) (*user.User, error) {
	return nil, nil
}
func (r *stubUserRepo) PushStory(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (r *stubUserRepo) PullStory(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (r *stubUserRepo) PushLike(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (r *stubUserRepo) PullLike(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (r *stubUserRepo) ResolveStories(context.Context, []primitive.ObjectID) ([]shared.StorySummary, error) {
	return nil, nil
}

func perform(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ========================================
// OBJECT ID MIDDLEWARE
// ========================================

func TestCheckObjectID(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", CheckObjectID("id"), func(c *gin.Context) {
		c.String(http.StatusOK, PathObjectID(c, "id").Hex())
	})

	id := primitive.NewObjectID()
	w := perform(router, http.MethodGet, "/items/"+id.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.Hex(), w.Body.String())

	w = perform(router, http.MethodGet, "/items/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ========================================
// AUTH MIDDLEWARE
// ========================================

func TestRequireUser(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	userID := primitive.NewObjectID()
	token, err := manager.GenerateAccessToken(userID.Hex())
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", RequireUser(manager), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c).Hex())
	})

	// raw token
	w := perform(router, http.MethodGet, "/protected", map[string]string{"Authorization": token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.Hex(), w.Body.String())

	// Bearer prefix tolerated
	w = perform(router, http.MethodGet, "/protected", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)

	// missing header
	w = perform(router, http.MethodGet, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is missing")

	// bad token
	w = perform(router, http.MethodGet, "/protected", map[string]string{"Authorization": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRequireAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	admin := &user.User{ID: primitive.NewObjectID(), Role: user.RoleAdmin}
	plain := &user.User{ID: primitive.NewObjectID(), Role: user.RoleUser}
	repo := &stubUserRepo{users: map[primitive.ObjectID]*user.User{
		admin.ID: admin,
		plain.ID: plain,
	}}

	router := gin.New()
	router.GET("/admin", RequireAdmin(manager, repo), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := manager.GenerateAccessToken(admin.ID.Hex())
	require.NoError(t, err)
	plainToken, err := manager.GenerateAccessToken(plain.ID.Hex())
	require.NoError(t, err)
	ghostToken, err := manager.GenerateAccessToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	w := perform(router, http.MethodGet, "/admin", map[string]string{"Authorization": adminToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/admin", map[string]string{"Authorization": plainToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "you are not an admin")

	w = perform(router, http.MethodGet, "/admin", map[string]string{"Authorization": ghostToken})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}
