package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail   = "jobs:email"
	QueueCleanup = "jobs:cleanup"
)

const maxJobAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc processes one dequeued payload. A non-nil error triggers a
// retry; exhausting the attempts moves the job to the DLQ.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CleanupJobPayload is the job envelope sent to QueueCleanup.
type CleanupJobPayload struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes a notification email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, to, subject, body string) error {
	return d.enqueue(ctx, QueueEmail, "email", EmailJobPayload{ToEmail: to, Subject: subject, Body: body})
}

// EnqueueCleanup pushes a storage-object deletion job to Redis.
func (d *Dispatcher) EnqueueCleanup(ctx context.Context, bucket, path string) error {
	return d.enqueue(ctx, QueueCleanup, "cleanup", CleanupJobPayload{Bucket: bucket, Path: path})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle. handlers maps queue
// name to the processing function.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]HandlerFunc) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]HandlerFunc) {
	queues := []string{QueueEmail, QueueCleanup}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]HandlerFunc, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	handler, ok := handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler registered for queue")
		return
	}

	err := withRetry(ctx, maxJobAttempts, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Str("queue", queue).Str("type", job.Type).Int("attempt", attempt+1).Msg("retrying job")
		}
		return handler(ctx, job.Payload)
	})
	if err != nil {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), maxJobAttempts)
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
