package contract

import (
	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/domain"
)

type AddTaskRequest struct {
	Text string `json:"text"`
}

type AddTaskResponse struct {
	Result
	Task *Task `json:"task,omitempty"`
}

type ToggleResponse struct {
	TaskID        string `json:"taskId"`
	IsCompleted   bool   `json:"isCompleted"`
	Delta         int    `json:"delta"`
	WalletBalance int    `json:"walletBalance"`
}

func FromToggle(o *app.ToggleOutcome) ToggleResponse {
	return ToggleResponse{
		TaskID:        o.Task.ID,
		IsCompleted:   o.Completed,
		Delta:         o.Delta,
		WalletBalance: o.WalletBalance,
	}
}

// SessionRequest is the debrief payload. Difficulty defaults to Active and
// recall to perfect when omitted.
type SessionRequest struct {
	ActualDuration    int      `json:"actualDuration"`
	Difficulty        int      `json:"difficulty"`
	ResistanceLevel   int      `json:"resistanceLevel"`
	RecallAccuracy    *float64 `json:"recallAccuracy"`
	FeynmanReflection string   `json:"feynmanReflection"`
}

func (r SessionRequest) Input() app.SessionInput {
	in := app.SessionInput{
		ActualDuration:  r.ActualDuration,
		Difficulty:      r.Difficulty,
		ResistanceLevel: r.ResistanceLevel,
		RecallAccuracy:  domain.RecallPerfect,
		Reflection:      r.FeynmanReflection,
	}
	if in.Difficulty == 0 {
		in.Difficulty = int(domain.DefaultDifficulty)
	}
	if r.RecallAccuracy != nil {
		in.RecallAccuracy = *r.RecallAccuracy
	}
	return in
}

type SessionResponse struct {
	Success       bool `json:"success"`
	Points        int  `json:"points"`
	WalletBalance int  `json:"walletBalance"`
	Task          Task `json:"task"`
}

func FromSession(o *app.SessionOutcome) SessionResponse {
	return SessionResponse{
		Success:       true,
		Points:        o.Points,
		WalletBalance: o.WalletBalance,
		Task:          FromTask(o.Task),
	}
}

type LockResponse struct {
	IsLocked bool   `json:"isLocked"`
	Date     string `json:"date"`
}

func FromLock(s app.LockStatus) LockResponse {
	return LockResponse{IsLocked: s.IsLocked(), Date: s.Day.String()}
}
