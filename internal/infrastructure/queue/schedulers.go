package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"storyshare-backend/internal/domains/story/job"
	"storyshare-backend/internal/shared"
	"storyshare-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs wires every recurring job into the scheduler.
func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcileStoryRefsJob()
}

// ================================================
// JOB: Reconcile story cross-references (daily at 3 AM)
// ================================================
// Cross-reference updates (story <-> owner/user lists, story <-> comments,
// likes) are sequences of single-document writes with no transaction, so a
// crash mid-sequence leaves the lists asymmetric. This job walks the
// stories collection and repairs every edge. It is idempotent, so running
// it against a consistent database is a no-op.
func (s *Scheduler) registerReconcileStoryRefsJob() error {
	payload, err := json.Marshal(job.ReconcileStoryRefsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileStoryRefs, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // daily at 3 AM, low traffic
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcileStoryRefs job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileStoryRefs: daily at 3 AM", map[string]interface{}{})
	return nil
}

// Run starts the scheduler loop (blocking).
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

// Start starts the scheduler without blocking.
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
