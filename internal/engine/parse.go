package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/grindstone/internal/domain"
)

// PlaceholderTitle is used when nothing is left of the phrase after stripping.
const PlaceholderTitle = "New Task"

var pointsPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:pt|point|pts)`)

// ParsedTask is the best-effort reading of a free-text task phrase.
type ParsedTask struct {
	Title  string
	Points int
	Domain domain.Domain
}

// ParseTaskPhrase extracts a point value and a domain from a phrase like
// "Run 5k 3 pts physical". Points default to 1. The domain is the first
// active domain (in rank order) whose name appears in the phrase, falling back
// to the first active domain. The matched point phrase and domain name are
// removed to form the title.
func ParseTaskPhrase(text string, domains []domain.Domain) (ParsedTask, error) {
	active := activeDomains(domains)
	if len(active) == 0 {
		return ParsedTask{}, ErrNoActiveDomain
	}

	parsed := ParsedTask{Points: domain.DefaultTaskPoints, Domain: active[0]}
	title := text

	if m := pointsPattern.FindStringSubmatch(text); m != nil {
		// Out-of-range values keep the default points.
		if n, err := strconv.Atoi(m[1]); err == nil {
			parsed.Points = n
		}
		strip := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m[1]) + `\s*(?:pt|point|pts)s?`)
		title = strip.ReplaceAllString(title, " ")
	}

	lower := strings.ToLower(text)
	for _, d := range active {
		if d.Name != "" && strings.Contains(lower, strings.ToLower(d.Name)) {
			parsed.Domain = d
			strip := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(d.Name))
			title = strip.ReplaceAllString(title, " ")
			break
		}
	}

	parsed.Title = strings.Join(strings.Fields(title), " ")
	if parsed.Title == "" {
		parsed.Title = PlaceholderTitle
	}
	return parsed, nil
}

func activeDomains(domains []domain.Domain) []domain.Domain {
	var out []domain.Domain
	for _, d := range domains {
		if d.IsActive {
			out = append(out, d)
		}
	}
	// Stable so equal ranks keep their input order.
	sortDomainsByOrder(out)
	return out
}
