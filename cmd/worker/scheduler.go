package main

import (
	"log"

	"storyshare-backend/internal/infrastructure/queue"
	"storyshare-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler for shutdown handling.
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates the scheduler and registers the recurring jobs.
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully stops the scheduler.
func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] ✓ Stopped")
}
