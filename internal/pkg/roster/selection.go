package roster

import "github.com/samber/mo"

// Selection tracks which participant a single client is acting as. It is not
// shared between clients and not safe for concurrent use.
type Selection struct {
	registry *Registry
	index    int
}

// NewSelection starts with the first participant active.
func NewSelection(r *Registry) *Selection {
	return &Selection{registry: r}
}

// Active returns the acting participant, or None for an empty registry.
func (s *Selection) Active() mo.Option[Participant] {
	return s.registry.At(s.index)
}

func (s *Selection) ActiveIndex() int { return s.index }

// SetActive selects the participant at i. Out-of-range indexes are ignored.
func (s *Selection) SetActive(i int) bool {
	if i < 0 || i >= s.registry.Len() {
		return false
	}
	s.index = i
	return true
}

// SetActiveByName selects the named participant. Unknown names leave the
// selection unchanged.
func (s *Selection) SetActiveByName(name string) bool {
	i := s.registry.IndexOf(name)
	if i < 0 {
		return false
	}
	s.index = i
	return true
}

func (s *Selection) IsActive(i int) bool { return s.index == i }
