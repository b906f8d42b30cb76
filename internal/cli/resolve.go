package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/grindstone/internal/domain"
)

// resolveTask finds a task by its position on the today screen (1-based),
// a full or unique id prefix, or a case-insensitive exact title.
func resolveTask(ctx context.Context, app *App, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("task reference is empty")
	}

	if n, err := strconv.Atoi(ref); err == nil && n > 0 {
		view, err := app.Dashboard.Today(ctx)
		if err != nil {
			return nil, err
		}
		if n <= len(view.Tasks) {
			return view.Tasks[n-1].Task, nil
		}
	}

	tasks, err := app.Tasks.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var byPrefix []*domain.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("task id prefix %q is ambiguous (%d matches)", ref, len(byPrefix))
	}

	var byTitle []*domain.Task
	for _, t := range tasks {
		if strings.EqualFold(t.Title, ref) {
			byTitle = append(byTitle, t)
		}
	}
	switch len(byTitle) {
	case 1:
		return byTitle[0], nil
	case 0:
		return nil, fmt.Errorf("no task matches %q", ref)
	default:
		return nil, fmt.Errorf("title %q matches %d tasks; use the id", ref, len(byTitle))
	}
}

func domainNames(ds []*domain.Domain) map[string]string {
	names := make(map[string]string, len(ds))
	for _, d := range ds {
		names[d.ID] = d.Name
	}
	return names
}
