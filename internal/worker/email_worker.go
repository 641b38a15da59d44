package worker

// email_worker.go
// Processes email jobs from QueueEmail: verification decisions, pending
// reminders. Plain text over SMTP.

import (
	"context"
	"encoding/json"

	"github.com/parmenasoares/track-and-work/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process delivers one email job.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
