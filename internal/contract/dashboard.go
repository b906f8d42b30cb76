package contract

import "github.com/alexanderramin/grindstone/internal/app"

type DashboardTask struct {
	Task
	DomainName  string `json:"domainName"`
	DomainColor string `json:"domainColor"`
	IsCompleted bool   `json:"isCompleted"`
}

type DomainScore struct {
	Domain string  `json:"domain"`
	Color  string  `json:"color"`
	Earned int     `json:"earned"`
	Total  int     `json:"total"`
	Ratio  float64 `json:"ratio"`
}

type DashboardResponse struct {
	Date           string          `json:"date"`
	IsLocked       bool            `json:"isLocked"`
	Tasks          []DashboardTask `json:"tasks"`
	Balance        []DomainScore   `json:"balance"`
	TodayPoints    int             `json:"todayPoints"`
	TasksCompleted int             `json:"tasksCompleted"`
	WalletBalance  int             `json:"walletBalance"`
}

func FromDashboard(v *app.DashboardView) DashboardResponse {
	out := DashboardResponse{
		Date:           v.Today.String(),
		IsLocked:       v.Lock.IsLocked(),
		Tasks:          make([]DashboardTask, 0, len(v.Tasks)),
		Balance:        make([]DomainScore, 0, len(v.Balance)),
		TodayPoints:    v.TodayPoints,
		TasksCompleted: v.TasksCompleted,
		WalletBalance:  v.WalletBalance,
	}
	for _, tv := range v.Tasks {
		out.Tasks = append(out.Tasks, DashboardTask{
			Task:        FromTask(tv.Task),
			DomainName:  tv.DomainName,
			DomainColor: tv.DomainColor,
			IsCompleted: tv.Completed,
		})
	}
	for _, s := range v.Balance {
		out.Balance = append(out.Balance, DomainScore{
			Domain: s.Domain.Name,
			Color:  s.Domain.Color,
			Earned: s.Earned,
			Total:  s.Total,
			Ratio:  s.Ratio,
		})
	}
	return out
}
