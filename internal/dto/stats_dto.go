package dto

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MachineActivityCount struct {
	MachineID   string `json:"machine_id"`
	MachineName string `json:"machine_name"`
	Activities  int64  `json:"activities"`
}

type DailyActivityCount struct {
	Day        string `json:"day"` // YYYY-MM-DD
	Activities int64  `json:"activities"`
}

// SuperAdminStatsResponse feeds the super-admin dashboard.
type SuperAdminStatsResponse struct {
	TotalUsers       int64                  `json:"total_users"`
	TotalMachines    int64                  `json:"total_machines"`
	TotalActivities  int64                  `json:"total_activities"`
	ActivitiesByStatus map[string]int64     `json:"activities_by_status"`
	RolesBreakdown   map[string]int64       `json:"roles_breakdown"`
	TopMachines      []MachineActivityCount `json:"top_machines"`
	Last7Days        []DailyActivityCount   `json:"last_7_days"`
}
