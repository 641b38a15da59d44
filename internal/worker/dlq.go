package worker

// dlq.go — Dead letter queue for background jobs.
// An email or cleanup job that exhausts its retries lands on the Redis list
// dlq:{queue}, keeping the payload around for inspection and manual replay.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with enough context to replay it by hand.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339, UTC
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a failed job on the dead letter queue. Failures here are
// logged and swallowed: losing a DLQ entry must not take the worker down.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of parked entries for one source queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// DLQDepths reports the dead-letter depth of every job queue. Queues that
// cannot be read are skipped; the health endpoint surfaces what it can.
func DLQDepths(ctx context.Context, rdb *redis.Client) map[string]int64 {
	depths := make(map[string]int64)
	for _, queue := range []string{QueueEmail, QueueCleanup} {
		n, err := DLQLength(ctx, rdb, queue)
		if err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("dlq: depth probe failed")
			continue
		}
		depths[queue] = n
	}
	return depths
}
