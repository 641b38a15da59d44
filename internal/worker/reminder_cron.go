package worker

// reminder_cron.go
// Background goroutine that periodically looks for verification submissions
// sitting in PENDING past the stale cutoff and nudges the reviewers by email.
// A Redis SETNX key per calendar day keeps multiple instances (or restarts)
// from duplicating the reminder.

import (
	"context"
	"fmt"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reminderTickInterval = 1 * time.Hour
	reminderStaleAfter   = 72 * time.Hour
	reminderDedupeTTL    = 48 * time.Hour
)

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	Verifications repository.VerificationRepository
	Roles         repository.RoleRepository
	Dispatcher    *Dispatcher
	RDB           *redis.Client
}

// StartReminderCron launches a background goroutine that ticks hourly and
// emails admins when PENDING verifications have gone unreviewed too long.
// It respects the context for graceful shutdown.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reminder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg)
			}
		}
	}()
}

func processReminders(ctx context.Context, cfg ReminderCronConfig) {
	cutoff := time.Now().UTC().Add(-reminderStaleAfter)
	stale, err := cfg.Verifications.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query stale verifications")
		return
	}
	if len(stale) == 0 {
		return
	}

	// One reminder per day, cluster-wide.
	dedupeKey := "cron:verification_reminder:" + time.Now().UTC().Format("2006-01-02")
	ok, err := cfg.RDB.SetNX(ctx, dedupeKey, 1, reminderDedupeTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: dedupe check failed")
		return
	}
	if !ok {
		return
	}

	recipients, err := adminEmails(ctx, cfg.Roles)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to resolve admin recipients")
		return
	}
	if len(recipients) == 0 {
		log.Warn().Msg("reminder_cron: no admin recipients configured")
		return
	}

	subject := "Verificações de documentos pendentes"
	body := fmt.Sprintf("Existem %d verificações de documentos pendentes há mais de %d horas.\n",
		len(stale), int(reminderStaleAfter.Hours()))
	for _, v := range stale {
		if v.User != nil {
			body += fmt.Sprintf("  - %s (%s)\n", v.User.FullName(), v.User.Email)
		}
	}

	for _, to := range recipients {
		if err := cfg.Dispatcher.EnqueueEmail(ctx, to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Msg("reminder_cron: failed to enqueue reminder")
		}
	}
	log.Info().Int("stale", len(stale)).Int("recipients", len(recipients)).
		Msg("reminder_cron: reminders enqueued")
}

// adminEmails returns the distinct emails of ADMIN and SUPER_ADMIN holders.
func adminEmails(ctx context.Context, roles repository.RoleRepository) ([]string, error) {
	all, err := roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range all {
		if r.Role != model.RoleAdmin && r.Role != model.RoleSuperAdmin {
			continue
		}
		if r.User == nil || seen[r.User.Email] {
			continue
		}
		seen[r.User.Email] = true
		out = append(out, r.User.Email)
	}
	return out, nil
}
