// Package contract defines the JSON shapes of the HTTP API and maps the
// application views onto them.
package contract

import (
	"github.com/alexanderramin/grindstone/internal/domain"
)

// Result is the body of a mutation that can be refused. Message is set when
// Success is false.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Task struct {
	ID                string  `json:"id"`
	DomainID          string  `json:"domainId"`
	Title             string  `json:"title"`
	IsActive          bool    `json:"isActive"`
	Points            int     `json:"points"`
	Difficulty        int     `json:"difficulty"`
	ResistanceLevel   int     `json:"resistanceLevel"`
	PlannedDuration   int     `json:"plannedDuration"`
	ActualDuration    int     `json:"actualDuration"`
	RecallAccuracy    float64 `json:"recallAccuracy"`
	FeynmanReflection string  `json:"feynmanReflection,omitempty"`
}

func FromTask(t *domain.Task) Task {
	return Task{
		ID:                t.ID,
		DomainID:          t.DomainID,
		Title:             t.Title,
		IsActive:          t.IsActive,
		Points:            t.Points,
		Difficulty:        int(t.Difficulty),
		ResistanceLevel:   t.ResistanceLevel,
		PlannedDuration:   t.PlannedDuration,
		ActualDuration:    t.ActualDuration,
		RecallAccuracy:    t.RecallAccuracy,
		FeynmanReflection: t.FeynmanReflection,
	}
}

type Domain struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

func FromDomains(ds []*domain.Domain) []Domain {
	out := make([]Domain, 0, len(ds))
	for _, d := range ds {
		out = append(out, Domain{ID: d.ID, Name: d.Name, Color: d.Color, Order: d.Order, IsActive: d.IsActive})
	}
	return out
}

type HistoryDay struct {
	Date           string `json:"date"`
	TotalPoints    int    `json:"totalPoints"`
	TasksCompleted int    `json:"tasksCompleted"`
}

func FromHistory(hs []*domain.DailyHistory) []HistoryDay {
	out := make([]HistoryDay, 0, len(hs))
	for _, h := range hs {
		out = append(out, HistoryDay{Date: h.Day.String(), TotalPoints: h.TotalPoints, TasksCompleted: h.TasksCompleted})
	}
	return out
}
