package domain

// DashboardStats is a point-in-time summary of campaigns, tasks and the team.
type DashboardStats struct {
	Campaigns    map[CampaignStatus]int64 `json:"campaigns"`
	Tasks        map[TaskStatus]int64     `json:"tasks"`
	OverdueTasks int64                    `json:"overdue_tasks"`
	TeamMembers  int64                    `json:"team_members"`
}
