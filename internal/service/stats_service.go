package service

import (
	"context"
	"sort"
	"time"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
)

const (
	topMachinesWindow = 30 * 24 * time.Hour
	topMachinesLimit  = 5
)

// StatsService aggregates the super-admin dashboard counters.
type StatsService interface {
	SuperAdminStats(ctx context.Context) (*dto.SuperAdminStatsResponse, error)
}

type statsService struct {
	users      repository.UserRepository
	machines   repository.MachineRepository
	activities repository.ActivityRepository
	roles      repository.RoleRepository
}

func NewStatsService(
	users repository.UserRepository,
	machines repository.MachineRepository,
	activities repository.ActivityRepository,
	roles repository.RoleRepository,
) StatsService {
	return &statsService{users: users, machines: machines, activities: activities, roles: roles}
}

func (s *statsService) SuperAdminStats(ctx context.Context) (*dto.SuperAdminStatsResponse, error) {
	totalUsers, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalMachines, err := s.machines.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.activities.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	rolesBreakdown, err := s.roles.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	var totalActivities int64
	for _, n := range byStatus {
		totalActivities += n
	}

	now := time.Now().UTC()
	topMachines, err := s.topMachines(ctx, now.Add(-topMachinesWindow))
	if err != nil {
		return nil, err
	}
	last7, err := s.last7Days(ctx, now)
	if err != nil {
		return nil, err
	}

	return &dto.SuperAdminStatsResponse{
		TotalUsers:         totalUsers,
		TotalMachines:      totalMachines,
		TotalActivities:    totalActivities,
		ActivitiesByStatus: byStatus,
		RolesBreakdown:     rolesBreakdown,
		TopMachines:        topMachines,
		Last7Days:          last7,
	}, nil
}

func (s *statsService) topMachines(ctx context.Context, since time.Time) ([]dto.MachineActivityCount, error) {
	counts, err := s.activities.CountByMachineSince(ctx, since)
	if err != nil {
		return nil, err
	}
	machines, err := s.machines.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(machines))
	for _, m := range machines {
		names[m.ID] = m.Name
	}

	out := make([]dto.MachineActivityCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, dto.MachineActivityCount{
			MachineID:   id.String(),
			MachineName: names[id],
			Activities:  n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Activities != out[j].Activities {
			return out[i].Activities > out[j].Activities
		}
		return out[i].MachineName < out[j].MachineName
	})
	if len(out) > topMachinesLimit {
		out = out[:topMachinesLimit]
	}
	return out, nil
}

// last7Days returns one entry per calendar day, zero-filled, oldest first.
func (s *statsService) last7Days(ctx context.Context, now time.Time) ([]dto.DailyActivityCount, error) {
	start := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)
	counts, err := s.activities.CountByDaySince(ctx, start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyActivityCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, dto.DailyActivityCount{Day: day, Activities: counts[day]})
	}
	return out, nil
}
