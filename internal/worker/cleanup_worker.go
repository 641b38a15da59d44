package worker

// cleanup_worker.go
// Processes storage cleanup jobs from QueueCleanup: objects whose database
// row was replaced or never written. Deleting off the request path keeps
// uploads fast and makes removal retryable.

import (
	"context"
	"encoding/json"

	"github.com/parmenasoares/track-and-work/internal/infra"

	"github.com/rs/zerolog/log"
)

// CleanupWorker deletes orphaned storage objects.
type CleanupWorker struct {
	store *infra.ObjectStore
}

func NewCleanupWorker(store *infra.ObjectStore) *CleanupWorker {
	return &CleanupWorker{store: store}
}

// Process deletes one object. Deleting an already-missing object succeeds.
func (w *CleanupWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload CleanupJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cleanup_worker: invalid payload")
		return nil
	}
	if err := w.store.Delete(payload.Bucket, payload.Path); err != nil {
		log.Error().Err(err).Str("bucket", payload.Bucket).Str("path", payload.Path).
			Msg("cleanup_worker: delete failed")
		return err
	}
	log.Info().Str("bucket", payload.Bucket).Str("path", payload.Path).Msg("cleanup_worker: object removed")
	return nil
}
