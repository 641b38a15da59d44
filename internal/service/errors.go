package service

import "errors"

// Sentinel errors shared across services. The string values double as the
// stable machine tokens surfaced in APIError.Code and matched by the public
// error mapper — keep them aligned with internal/i18n.
var (
	ErrNotFound         = errors.New("not_found")
	ErrUserNotFound     = errors.New("user_not_found")
	ErrEmailTaken       = errors.New("email_taken")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrCannotChangeSelf = errors.New("cannot_change_self")
	ErrNotAuthorized    = errors.New("not_authorized")
	ErrInvalidLogin     = errors.New("invalid login credentials")

	ErrActivityAlreadyOpen = errors.New("activity_already_open")
	ErrNoOpenActivity      = errors.New("no_open_activity")
	ErrActivityClosed      = errors.New("activity_already_closed")
	ErrOdometerBelowStart  = errors.New("end_odometer_below_start")

	ErrImageTooLarge    = errors.New("image_too_large")
	ErrInvalidImageType = errors.New("invalid_image_type")
	ErrFileTooLarge     = errors.New("file_too_large")
	ErrInvalidFileType  = errors.New("invalid_file_type")
	ErrInvalidDocType   = errors.New("invalid_doc_type")
	ErrInvalidPrefix    = errors.New("invalid_photo_prefix")
)
