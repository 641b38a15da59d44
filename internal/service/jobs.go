package service

import "context"

// Jobs is the background-work surface services enqueue onto. The Redis-backed
// dispatcher implements it; tests substitute a recorder.
type Jobs interface {
	// EnqueueEmail schedules a plain-text notification email.
	EnqueueEmail(ctx context.Context, to, subject, body string) error
	// EnqueueCleanup schedules deletion of a storage object that is no longer
	// referenced by any row.
	EnqueueCleanup(ctx context.Context, bucket, path string) error
}
