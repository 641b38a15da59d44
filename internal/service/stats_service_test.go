package service

import (
	"context"
	"testing"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivity(t *testing.T, activities *memActivities, machineID uuid.UUID, status string, start time.Time) {
	t.Helper()
	require.NoError(t, activities.Create(context.Background(), &model.Activity{
		OperatorID: uuid.New(),
		MachineID:  machineID,
		Status:     status,
		StartTime:  start,
		CreatedAt:  start,
	}))
}

func TestSuperAdminStats(t *testing.T) {
	users := newMemUsers()
	machines := newMemMachines()
	activities := newMemActivities()
	roles := &memRoles{}
	svc := NewStatsService(users, machines, activities, roles)
	ctx := context.Background()

	admin := seedAccount(t, users, "admin@example.com")
	seedAccount(t, users, "op@example.com")
	require.NoError(t, roles.ReplaceForUser(ctx, admin.ID, model.RoleAdmin, uuid.New()))

	m1 := seedMachine(t, machines, "Trator 1")
	m2 := seedMachine(t, machines, "Ceifeira 2")

	now := time.Now().UTC()
	seedActivity(t, activities, m1.ID, model.ActivityPending, now)
	seedActivity(t, activities, m1.ID, model.ActivityApproved, now.AddDate(0, 0, -1))
	seedActivity(t, activities, m2.ID, model.ActivityRejected, now)

	stats, err := svc.SuperAdminStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalMachines)
	assert.Equal(t, int64(3), stats.TotalActivities)
	assert.Equal(t, int64(1), stats.ActivitiesByStatus[model.ActivityPending])
	assert.Equal(t, int64(1), stats.ActivitiesByStatus[model.ActivityApproved])
	assert.Equal(t, int64(1), stats.ActivitiesByStatus[model.ActivityRejected])
	assert.Equal(t, int64(1), stats.RolesBreakdown[model.RoleAdmin])
}

func TestSuperAdminStatsTopMachines(t *testing.T) {
	users := newMemUsers()
	machines := newMemMachines()
	activities := newMemActivities()
	svc := NewStatsService(users, machines, activities, &memRoles{})
	ctx := context.Background()

	now := time.Now().UTC()

	// Seven machines with descending usage; only the top five make the list.
	names := []string{"M1", "M2", "M3", "M4", "M5", "M6", "M7"}
	for i, name := range names {
		m := seedMachine(t, machines, name)
		for j := 0; j < len(names)-i; j++ {
			seedActivity(t, activities, m.ID, model.ActivityApproved, now)
		}
	}

	// Outside the 30-day window, must not count.
	old := seedMachine(t, machines, "Velha")
	seedActivity(t, activities, old.ID, model.ActivityApproved, now.AddDate(0, 0, -45))

	stats, err := svc.SuperAdminStats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.TopMachines, 5)
	assert.Equal(t, "M1", stats.TopMachines[0].MachineName)
	assert.Equal(t, int64(7), stats.TopMachines[0].Activities)
	assert.Equal(t, "M5", stats.TopMachines[4].MachineName)
	for _, entry := range stats.TopMachines {
		assert.NotEqual(t, "Velha", entry.MachineName)
	}
}

func TestSuperAdminStatsLast7DaysZeroFilled(t *testing.T) {
	users := newMemUsers()
	machines := newMemMachines()
	activities := newMemActivities()
	svc := NewStatsService(users, machines, activities, &memRoles{})
	ctx := context.Background()

	m := seedMachine(t, machines, "Trator 1")
	now := time.Now().UTC()
	seedActivity(t, activities, m.ID, model.ActivityApproved, now)
	seedActivity(t, activities, m.ID, model.ActivityApproved, now)
	seedActivity(t, activities, m.ID, model.ActivityApproved, now.AddDate(0, 0, -2))

	stats, err := svc.SuperAdminStats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.Last7Days, 7)
	// Oldest first, today last.
	assert.Equal(t, now.Format("2006-01-02"), stats.Last7Days[6].Day)
	assert.Equal(t, int64(2), stats.Last7Days[6].Activities)
	assert.Equal(t, int64(1), stats.Last7Days[4].Activities)
	assert.Equal(t, int64(0), stats.Last7Days[0].Activities)
}
