package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyshare-backend/internal/shared/middleware"
	"storyshare-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupOwnerRoutes(api, c)
		setupGenreRoutes(api, c)
		setupStoryRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	requireUser := middleware.RequireUser(c.JWTManager)
	requireAdmin := middleware.RequireAdmin(c.JWTManager, c.UserRepo)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/add-admin", requireAdmin, c.UserHandler.AddAdmin)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/login/admin", c.UserHandler.LoginAdmin)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password/:token", c.UserHandler.ResetPassword)

		auth.GET("/profile", requireUser, c.UserHandler.GetProfile)
		auth.PUT("/profile", requireUser, c.UserHandler.UpdateProfile)

		auth.GET("/users", requireAdmin, c.UserHandler.ListUsers)
		auth.DELETE("/users/:id", requireAdmin, middleware.CheckObjectID("id"), c.UserHandler.DeleteUser)
	}
}

// ========================================
// OWNER ROUTES
// ========================================
func setupOwnerRoutes(api *gin.RouterGroup, c *container.Container) {
	requireAdmin := middleware.RequireAdmin(c.JWTManager, c.UserRepo)

	owners := api.Group("/owners")
	{
		owners.GET("", c.OwnerHandler.List)
		owners.POST("", requireAdmin, c.OwnerHandler.Create)
		owners.PUT("/:id", requireAdmin, middleware.CheckObjectID("id"), c.OwnerHandler.Update)
		owners.DELETE("/:id", requireAdmin, middleware.CheckObjectID("id"), c.OwnerHandler.Delete)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(api *gin.RouterGroup, c *container.Container) {
	requireAdmin := middleware.RequireAdmin(c.JWTManager, c.UserRepo)

	genres := api.Group("/genres")
	{
		genres.GET("", c.GenreHandler.List)
		genres.POST("", requireAdmin, c.GenreHandler.Create)
		genres.PUT("/:id", requireAdmin, middleware.CheckObjectID("id"), c.GenreHandler.Update)
		genres.DELETE("/:id", requireAdmin, middleware.CheckObjectID("id"), c.GenreHandler.Delete)
	}
}

// ========================================
// STORY ROUTES
// ========================================
func setupStoryRoutes(api *gin.RouterGroup, c *container.Container) {
	requireUser := middleware.RequireUser(c.JWTManager)
	requireAdmin := middleware.RequireAdmin(c.JWTManager, c.UserRepo)
	checkID := middleware.CheckObjectID("id")
	checkCommentIDs := middleware.CheckObjectID("id", "commentId")

	stories := api.Group("/stories")
	{
		stories.GET("", c.StoryHandler.List)
		stories.GET("/:id", checkID, c.StoryHandler.Get)
		stories.POST("", requireUser, c.StoryHandler.Create)
		stories.PUT("/:id", requireUser, checkID, c.StoryHandler.Update)
		stories.DELETE("/:id", requireAdmin, checkID, c.StoryHandler.Delete)

		stories.GET("/:id/comments", checkID, c.StoryHandler.ListComments)
		stories.POST("/:id/comments", requireUser, checkID, c.StoryHandler.AddComment)
		stories.PUT("/:id/comments/:commentId", requireUser, checkCommentIDs, c.StoryHandler.UpdateComment)
		stories.DELETE("/:id/comments/:commentId", requireUser, checkCommentIDs, c.StoryHandler.DeleteComment)

		stories.POST("/:id/ratings", requireUser, checkID, c.StoryHandler.AddRating)
		stories.GET("/:id/likes", requireUser, checkID, c.StoryHandler.ToggleLike)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		mongoStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			mongoStatus = "down"
		}

		redisStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if mongoStatus == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":  overall,
			"mongo":   mongoStatus,
			"redis":   redisStatus,
			"version": c.Config.App.Version,
		})
	}
}
