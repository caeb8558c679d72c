package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storyshare-backend/internal/infrastructure/email"
	"storyshare-backend/internal/shared"
)

// Client wraps the asynq client with typed enqueue helpers so callers
// never deal with task names or payload encoding.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueResetPasswordEmail queues the reset email for delivery by the
// worker process.
func (c *Client) EnqueueResetPasswordEmail(data email.ResetPasswordData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal reset email payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendResetEmail, payload)

	_, err = c.client.Enqueue(
		task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(1*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue reset email: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
