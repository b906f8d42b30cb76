package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/spf13/pflag"
)

// difficultyFlag accepts a tier by number (1-3) or by name.
type difficultyFlag domain.Difficulty

var _ pflag.Value = (*difficultyFlag)(nil)

func (f *difficultyFlag) String() string { return strconv.Itoa(int(*f)) }
func (f *difficultyFlag) Type() string   { return "difficulty" }

func (f *difficultyFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if !domain.Difficulty(n).Valid() {
			return fmt.Errorf("difficulty must be 1-3, got %d", n)
		}
		*f = difficultyFlag(n)
		return nil
	}
	for _, d := range []domain.Difficulty{domain.DifficultyPassive, domain.DifficultyActive, domain.DifficultySystemic} {
		if strings.ToLower(d.String()) == s {
			*f = difficultyFlag(d)
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q (passive, active or systemic)", s)
}
