package service

// In-memory repository fakes shared by the service tests. They honor the same
// contracts as the GORM implementations, including gorm.ErrRecordNotFound.

import (
	"context"
	"strings"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── users ────────────────────────────────────────────────────────────────────

type memUsers struct {
	byID map[uuid.UUID]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uuid.UUID]*model.User)}
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) Update(_ context.Context, u *model.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) ListWithRoles(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

// ── roles ────────────────────────────────────────────────────────────────────

type memRoles struct {
	rows []model.UserRole
}

func (m *memRoles) ListByUser(_ context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	var out []model.UserRole
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRoles) ReplaceForUser(_ context.Context, userID uuid.UUID, role string, createdBy uuid.UUID) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.rows = append(kept, model.UserRole{
		ID: uuid.New(), UserID: userID, Role: role, CreatedBy: &createdBy, CreatedAt: time.Now(),
	})
	return nil
}

func (m *memRoles) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *memRoles) ListAll(_ context.Context) ([]model.UserRole, error) {
	return append([]model.UserRole(nil), m.rows...), nil
}

func (m *memRoles) CountByRole(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, r := range m.rows {
		out[r.Role]++
	}
	return out, nil
}

// ── machines ─────────────────────────────────────────────────────────────────

type memMachines struct {
	byID map[uuid.UUID]*model.Machine
}

func newMemMachines() *memMachines {
	return &memMachines{byID: make(map[uuid.UUID]*model.Machine)}
}

func (m *memMachines) Create(_ context.Context, mc *model.Machine) error {
	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}
	m.byID[mc.ID] = mc
	return nil
}

func (m *memMachines) List(_ context.Context) ([]model.Machine, error) {
	out := make([]model.Machine, 0, len(m.byID))
	for _, mc := range m.byID {
		out = append(out, *mc)
	}
	return out, nil
}

func (m *memMachines) FindByID(_ context.Context, id uuid.UUID) (*model.Machine, error) {
	if mc, ok := m.byID[id]; ok {
		return mc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memMachines) Update(_ context.Context, mc *model.Machine) error {
	m.byID[mc.ID] = mc
	return nil
}

func (m *memMachines) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memMachines) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

// ── master data ──────────────────────────────────────────────────────────────

type memClients struct {
	byID map[uuid.UUID]*model.Client
}

func newMemClients() *memClients {
	return &memClients{byID: make(map[uuid.UUID]*model.Client)}
}

func (m *memClients) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memClients) List(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memClients) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memClients) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

type memLocations struct {
	byID map[uuid.UUID]*model.Location
}

func newMemLocations() *memLocations {
	return &memLocations{byID: make(map[uuid.UUID]*model.Location)}
}

func (m *memLocations) Create(_ context.Context, l *model.Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	m.byID[l.ID] = l
	return nil
}

func (m *memLocations) List(_ context.Context, clientID *uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range m.byID {
		if clientID == nil || l.ClientID == *clientID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLocations) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

type memServices struct {
	byID map[uuid.UUID]*model.Service
}

func newMemServices() *memServices {
	return &memServices{byID: make(map[uuid.UUID]*model.Service)}
}

func (m *memServices) Create(_ context.Context, s *model.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.byID[s.ID] = s
	return nil
}

func (m *memServices) List(_ context.Context) ([]model.Service, error) {
	out := make([]model.Service, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memServices) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

// ── activities ───────────────────────────────────────────────────────────────

type memActivities struct {
	byID map[uuid.UUID]*model.Activity
}

func newMemActivities() *memActivities {
	return &memActivities{byID: make(map[uuid.UUID]*model.Activity)}
}

func (m *memActivities) Create(_ context.Context, a *model.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.byID[a.ID] = a
	return nil
}

func (m *memActivities) FindByID(_ context.Context, id uuid.UUID) (*model.Activity, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memActivities) FindByIDFull(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	return m.FindByID(ctx, id)
}

func (m *memActivities) FindOpenByOperator(_ context.Context, operatorID uuid.UUID) (*model.Activity, error) {
	for _, a := range m.byID {
		if a.OperatorID == operatorID && a.Open() {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memActivities) ListByOperator(_ context.Context, operatorID uuid.UUID) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range m.byID {
		if a.OperatorID == operatorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memActivities) ListByStatus(_ context.Context, status string) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range m.byID {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memActivities) Update(_ context.Context, a *model.Activity) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memActivities) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *memActivities) CountByStatus(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, a := range m.byID {
		out[a.Status]++
	}
	return out, nil
}

func (m *memActivities) CountByMachineSince(_ context.Context, since time.Time) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	for _, a := range m.byID {
		if a.CreatedAt.After(since) || a.CreatedAt.Equal(since) {
			out[a.MachineID]++
		}
	}
	return out, nil
}

func (m *memActivities) CountByDaySince(_ context.Context, since time.Time) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, a := range m.byID {
		if !a.StartTime.Before(since) {
			out[a.StartTime.Format("2006-01-02")]++
		}
	}
	return out, nil
}

// ── compliance ───────────────────────────────────────────────────────────────

type memCompliance struct {
	byUser map[uuid.UUID]*model.UserCompliance
}

func newMemCompliance() *memCompliance {
	return &memCompliance{byUser: make(map[uuid.UUID]*model.UserCompliance)}
}

func (m *memCompliance) FindByUser(_ context.Context, userID uuid.UUID) (*model.UserCompliance, error) {
	if c, ok := m.byUser[userID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCompliance) Upsert(_ context.Context, c *model.UserCompliance) error {
	m.byUser[c.UserID] = c
	return nil
}

func (m *memCompliance) EnsureRow(_ context.Context, userID uuid.UUID) error {
	if _, ok := m.byUser[userID]; !ok {
		m.byUser[userID] = &model.UserCompliance{UserID: userID}
	}
	return nil
}

// ── verification ─────────────────────────────────────────────────────────────

type memVerification struct {
	byUser map[uuid.UUID]*model.UserVerification
}

func newMemVerification() *memVerification {
	return &memVerification{byUser: make(map[uuid.UUID]*model.UserVerification)}
}

func (m *memVerification) FindByUser(_ context.Context, userID uuid.UUID) (*model.UserVerification, error) {
	if v, ok := m.byUser[userID]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memVerification) EnsureRow(_ context.Context, userID uuid.UUID) error {
	if _, ok := m.byUser[userID]; !ok {
		m.byUser[userID] = &model.UserVerification{UserID: userID, Status: model.VerificationPending}
	}
	return nil
}

func (m *memVerification) Update(_ context.Context, v *model.UserVerification) error {
	m.byUser[v.UserID] = v
	return nil
}

func (m *memVerification) ListByStatus(_ context.Context, status string) ([]model.UserVerification, error) {
	var out []model.UserVerification
	for _, v := range m.byUser {
		if status == "" || v.Status == status {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *memVerification) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]model.UserVerification, error) {
	var out []model.UserVerification
	for _, v := range m.byUser {
		if v.Status == model.VerificationPending && v.SubmittedAt != nil && v.SubmittedAt.Before(cutoff) {
			out = append(out, *v)
		}
	}
	return out, nil
}

// ── documents ────────────────────────────────────────────────────────────────

type docKey struct {
	user    uuid.UUID
	docType string
}

type memDocuments struct {
	rows map[docKey]*model.UserDocumentFile
}

func newMemDocuments() *memDocuments {
	return &memDocuments{rows: make(map[docKey]*model.UserDocumentFile)}
}

func (m *memDocuments) ListByUser(_ context.Context, userID uuid.UUID) ([]model.UserDocumentFile, error) {
	var out []model.UserDocumentFile
	for k, d := range m.rows {
		if k.user == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDocuments) FindByUserAndType(_ context.Context, userID uuid.UUID, docType string) (*model.UserDocumentFile, error) {
	if d, ok := m.rows[docKey{userID, docType}]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDocuments) Upsert(_ context.Context, d *model.UserDocumentFile) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.rows[docKey{d.UserID, d.DocType}] = d
	return nil
}

func (m *memDocuments) Delete(_ context.Context, userID uuid.UUID, docType string) error {
	delete(m.rows, docKey{userID, docType})
	return nil
}

// ── jobs ─────────────────────────────────────────────────────────────────────

type recordedEmail struct {
	To, Subject, Body string
}

type recordedCleanup struct {
	Bucket, Path string
}

type memJobs struct {
	emails   []recordedEmail
	cleanups []recordedCleanup
}

func (m *memJobs) EnqueueEmail(_ context.Context, to, subject, body string) error {
	m.emails = append(m.emails, recordedEmail{to, subject, body})
	return nil
}

func (m *memJobs) EnqueueCleanup(_ context.Context, bucket, path string) error {
	m.cleanups = append(m.cleanups, recordedCleanup{bucket, path})
	return nil
}
