package main

import (
	"github.com/hibiken/asynq"

	storyJob "storyshare-backend/internal/domains/story/job"
	emailjob "storyshare-backend/internal/infrastructure/email/job"
	"storyshare-backend/internal/shared"
	"storyshare-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	resetPassword      *emailjob.ResetPasswordEmailHandler
	reconcileStoryRefs *storyJob.ReconcileStoryRefsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		resetPassword: emailjob.NewResetPasswordEmailHandler(c.EmailService),
		reconcileStoryRefs: storyJob.NewReconcileStoryRefsHandler(
			c.StoryRepo,
			c.UserRepo,
			c.OwnerRepo,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendResetEmail, h.resetPassword.ProcessTask)
	mux.HandleFunc(shared.TypeReconcileStoryRefs, h.reconcileStoryRefs.ProcessTask)
}
