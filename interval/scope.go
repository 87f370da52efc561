package interval

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

// Scope selects which staves are analyzed together.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeStaves
	ScopeParts
	ScopeGroups
	ScopeAll
)

var scopeNames = []string{"none", "staves", "parts", "groups", "all"}

var ErrUnknownScope = errors.New("interval: unknown scope")

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return ""
	}
	return scopeNames[s]
}

func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Scope) UnmarshalText(text []byte) error {
	v, err := ParseScope(string(text))
	*s = v
	return err
}

func ParseScope(name string) (Scope, error) {
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), nil
		}
	}
	return ScopeNone, errors.Wrapf(ErrUnknownScope, "%q", name)
}

// StaffBar is one staff's segments around the analyzed bar. Prev and Next
// keep their own bar-relative times; PrevLen and CurLen shift them.
type StaffBar struct {
	Part  int
	Staff int
	Group string

	Prev, Cur, Next []model.Segment
	PrevLen, CurLen frac.Frac
}

func (s StaffBar) key(scope Scope) string {
	switch scope {
	case ScopeStaves:
		return fmt.Sprintf("staff %d/%d", s.Part, s.Staff)
	case ScopeParts:
		return fmt.Sprintf("part %d", s.Part)
	case ScopeGroups:
		if s.Group == "" {
			return fmt.Sprintf("part %d", s.Part)
		}
		return "group " + s.Group
	}
	return "all"
}

// partition buckets staves by scope, in order of first appearance.
func partition(staves []StaffBar, scope Scope) [][]StaffBar {
	if scope == ScopeNone {
		return nil
	}
	index := map[string]int{}
	var out [][]StaffBar
	for _, s := range staves {
		k := s.key(scope)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], s)
	}
	return out
}
