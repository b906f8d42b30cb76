package engine

import (
	"slices"

	"github.com/alexanderramin/grindstone/internal/domain"
)

// DomainScore is the share of a domain's points earned today.
type DomainScore struct {
	Domain domain.Domain
	Earned int
	Total  int
	// Ratio is Earned/Total in [0, 1]; 0 when the domain has no points on offer.
	Ratio float64
}

// DomainBalance scores each active domain by the points of its active tasks
// that are completed today, over the points of all its active tasks.
func DomainBalance(domains []domain.Domain, tasks []*domain.Task, completed map[string]bool) []DomainScore {
	active := activeDomains(domains)
	scores := make([]DomainScore, 0, len(active))
	for _, d := range active {
		s := DomainScore{Domain: d}
		for _, t := range tasks {
			if !t.IsActive || t.DomainID != d.ID {
				continue
			}
			s.Total += t.Points
			if completed[t.ID] {
				s.Earned += t.Points
			}
		}
		if s.Total > 0 {
			s.Ratio = float64(s.Earned) / float64(s.Total)
		}
		scores = append(scores, s)
	}
	return scores
}

func sortDomainsByOrder(ds []domain.Domain) {
	slices.SortStableFunc(ds, func(a, b domain.Domain) int {
		return a.Order - b.Order
	})
}
