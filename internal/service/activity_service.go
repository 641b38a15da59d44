package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/infra"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPhotoBytes caps a single activity photo upload.
const MaxPhotoBytes = 5 << 20

// Photo slot prefixes accepted on upload. The prefix names the slot the
// client will later attach the path to.
var photoPrefixes = map[string]bool{
	"start":          true,
	"start_odometer": true,
	"end":            true,
	"end_odometer":   true,
}

// ActivityService implements the operator activity lifecycle and the admin
// review flow.
type ActivityService interface {
	// Start opens a new activity. At most one open activity per operator.
	Start(ctx context.Context, operatorID uuid.UUID, req dto.StartActivityRequest) (*dto.ActivityResponse, error)
	// Open returns the operator's current open activity, or ErrNoOpenActivity.
	Open(ctx context.Context, operatorID uuid.UUID) (*dto.ActivityResponse, error)
	// Close fills the end fields of the operator's own open activity.
	Close(ctx context.Context, operatorID, activityID uuid.UUID, req dto.CloseActivityRequest) (*dto.ActivityResponse, error)
	ListMine(ctx context.Context, operatorID uuid.UUID) ([]dto.ActivityResponse, error)
	// ListForReview returns activities with names resolved for the admin
	// validation table. Empty status means all.
	ListForReview(ctx context.Context, status string) ([]dto.ActivityReviewRow, error)
	// Review flips the status of an activity to APPROVED or REJECTED.
	Review(ctx context.Context, activityID uuid.UUID, status string) error
	UploadPhoto(ctx context.Context, operatorID uuid.UUID, prefix, filename, contentType string, size int64, r io.Reader) (*dto.PhotoUploadResponse, error)
	// Photos returns 60s signed URLs for the activity's photo slots. Callers
	// who are neither the owner nor reviewers get ErrNotAuthorized.
	Photos(ctx context.Context, callerID uuid.UUID, isReviewer bool, activityID uuid.UUID) (*dto.ActivityPhotosResponse, error)
	// Report renders the printable PDF summary of one activity.
	Report(ctx context.Context, activityID uuid.UUID) (data []byte, filename string, err error)
}

type activityService struct {
	activities repository.ActivityRepository
	machines   repository.MachineRepository
	store      *infra.ObjectStore
}

func NewActivityService(
	activities repository.ActivityRepository,
	machines repository.MachineRepository,
	store *infra.ObjectStore,
) ActivityService {
	return &activityService{activities: activities, machines: machines, store: store}
}

func toGPSPoint(g *dto.GPS) *model.GPSPoint {
	if g == nil {
		return nil
	}
	return &model.GPSPoint{Lat: g.Lat, Lng: g.Lng, Accuracy: g.Accuracy}
}

func fromGPSPoint(g *model.GPSPoint) *dto.GPS {
	if g == nil {
		return nil
	}
	return &dto.GPS{Lat: g.Lat, Lng: g.Lng, Accuracy: g.Accuracy}
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapActivity(a *model.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:         a.ID.String(),
		OperatorID: a.OperatorID.String(),
		MachineID:  a.MachineID.String(),
		ClientID:   uuidPtrString(a.ClientID),
		LocationID: uuidPtrString(a.LocationID),
		ServiceID:  uuidPtrString(a.ServiceID),

		StartOdometer: a.StartOdometer,
		EndOdometer:   a.EndOdometer,
		StartGPS:      fromGPSPoint(a.StartGPS),
		EndGPS:        fromGPSPoint(a.EndGPS),

		StartPhotoPath:         a.StartPhotoPath,
		StartOdometerPhotoPath: a.StartOdometerPhotoPath,
		EndPhotoPath:           a.EndPhotoPath,
		EndOdometerPhotoPath:   a.EndOdometerPhotoPath,

		Notes:             a.Notes,
		AreaValue:         a.AreaValue,
		AreaUnit:          a.AreaUnit,
		AreaNotes:         a.AreaNotes,
		PerformanceRating: a.PerformanceRating,

		Status:    a.Status,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *activityService) Start(ctx context.Context, operatorID uuid.UUID, req dto.StartActivityRequest) (*dto.ActivityResponse, error) {
	if req.StartOdometer == nil || req.StartOdometer.IsNegative() {
		return nil, errors.New("invalid start odometer")
	}
	if _, err := s.activities.FindOpenByOperator(ctx, operatorID); err == nil {
		return nil, ErrActivityAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	machineID, err := uuid.Parse(req.MachineID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.machines.FindByID(ctx, machineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	clientID, err := parseUUIDPtr(req.ClientID)
	if err != nil {
		return nil, ErrNotFound
	}
	locationID, err := parseUUIDPtr(req.LocationID)
	if err != nil {
		return nil, ErrNotFound
	}
	serviceID, err := parseUUIDPtr(req.ServiceID)
	if err != nil {
		return nil, ErrNotFound
	}

	a := &model.Activity{
		OperatorID:    operatorID,
		MachineID:     machineID,
		ClientID:      clientID,
		LocationID:    locationID,
		ServiceID:     serviceID,
		StartOdometer: *req.StartOdometer,
		StartGPS:      toGPSPoint(req.StartGPS),
		Notes:         req.Notes,

		StartPhotoPath:         req.StartPhotoPath,
		StartOdometerPhotoPath: req.StartOdometerPhotoPath,

		Status:    model.ActivityPending,
		StartTime: time.Now().UTC(),
	}
	if err := s.activities.Create(ctx, a); err != nil {
		// The partial unique index backs the open-activity invariant against
		// concurrent starts; surface it as the domain error.
		if strings.Contains(err.Error(), "uni_activities_open_per_operator") {
			return nil, ErrActivityAlreadyOpen
		}
		return nil, err
	}
	resp := mapActivity(a)
	return &resp, nil
}

func (s *activityService) Open(ctx context.Context, operatorID uuid.UUID) (*dto.ActivityResponse, error) {
	a, err := s.activities.FindOpenByOperator(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenActivity
		}
		return nil, err
	}
	resp := mapActivity(a)
	return &resp, nil
}

func (s *activityService) Close(ctx context.Context, operatorID, activityID uuid.UUID, req dto.CloseActivityRequest) (*dto.ActivityResponse, error) {
	a, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.OperatorID != operatorID {
		return nil, ErrNotAuthorized
	}
	if !a.Open() {
		return nil, ErrActivityClosed
	}
	if req.EndOdometer == nil {
		return nil, errors.New("invalid end odometer")
	}
	if req.EndOdometer.LessThan(a.StartOdometer) {
		return nil, ErrOdometerBelowStart
	}

	now := time.Now().UTC()
	rating := req.PerformanceRating
	end := *req.EndOdometer
	a.EndOdometer = &end
	a.EndGPS = toGPSPoint(req.EndGPS)
	a.PerformanceRating = &rating
	a.AreaValue = req.AreaValue
	a.AreaUnit = req.AreaUnit
	a.AreaNotes = req.AreaNotes
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if req.EndPhotoPath != nil {
		a.EndPhotoPath = req.EndPhotoPath
	}
	if req.EndOdometerPhotoPath != nil {
		a.EndOdometerPhotoPath = req.EndOdometerPhotoPath
	}
	a.EndTime = &now

	if err := s.activities.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := mapActivity(a)
	return &resp, nil
}

func (s *activityService) ListMine(ctx context.Context, operatorID uuid.UUID) ([]dto.ActivityResponse, error) {
	list, err := s.activities.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for i := range list {
		out = append(out, mapActivity(&list[i]))
	}
	return out, nil
}

func (s *activityService) ListForReview(ctx context.Context, status string) ([]dto.ActivityReviewRow, error) {
	list, err := s.activities.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityReviewRow, 0, len(list))
	for i := range list {
		a := &list[i]
		row := dto.ActivityReviewRow{ActivityResponse: mapActivity(a)}
		if a.Operator != nil {
			row.OperatorName = a.Operator.FullName()
		}
		if a.Machine != nil {
			row.MachineName = a.Machine.Name
		}
		if a.Client != nil {
			row.ClientName = a.Client.Name
		}
		if a.Location != nil {
			row.LocationName = a.Location.Name
		}
		if a.Service != nil {
			row.ServiceName = a.Service.Name
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *activityService) Review(ctx context.Context, activityID uuid.UUID, status string) error {
	if status != model.ActivityApproved && status != model.ActivityRejected {
		return errors.New("invalid review status")
	}
	if err := s.activities.UpdateStatus(ctx, activityID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *activityService) UploadPhoto(ctx context.Context, operatorID uuid.UUID, prefix, filename, contentType string, size int64, r io.Reader) (*dto.PhotoUploadResponse, error) {
	if !photoPrefixes[prefix] {
		return nil, ErrInvalidPrefix
	}
	if size > MaxPhotoBytes {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidImageType
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectPath := fmt.Sprintf("%s/%s-%s%s", operatorID, uuid.New(), prefix, ext)
	if err := s.store.Save(infra.BucketActivityPhotos, objectPath, io.LimitReader(r, MaxPhotoBytes)); err != nil {
		return nil, err
	}
	return &dto.PhotoUploadResponse{Path: objectPath}, nil
}

func (s *activityService) Photos(ctx context.Context, callerID uuid.UUID, isReviewer bool, activityID uuid.UUID) (*dto.ActivityPhotosResponse, error) {
	a, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.OperatorID != callerID && !isReviewer {
		return nil, ErrNotAuthorized
	}

	signed := func(p *string) *string {
		if p == nil || *p == "" {
			return nil
		}
		url, err := s.store.SignedURL(infra.BucketActivityPhotos, *p)
		if err != nil {
			return nil
		}
		return &url
	}
	return &dto.ActivityPhotosResponse{
		StartPhotoURL:         signed(a.StartPhotoPath),
		StartOdometerPhotoURL: signed(a.StartOdometerPhotoPath),
		EndPhotoURL:           signed(a.EndPhotoPath),
		EndOdometerPhotoURL:   signed(a.EndOdometerPhotoPath),
	}, nil
}

func (s *activityService) Report(ctx context.Context, activityID uuid.UUID) ([]byte, string, error) {
	a, err := s.activities.FindByIDFull(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	data, err := infra.GenerateActivityReport(a)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("activity-%s.pdf", a.ID), nil
}
