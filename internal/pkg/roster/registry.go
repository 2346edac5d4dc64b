// Package roster holds the configured participants and the per-client choice
// of which participant is acting.
package roster

import (
	"github.com/samber/mo"

	"github.com/FlintShadey/huddleuptime/internal/config"
)

// FallbackColor is returned by ColorOf for names that are not configured.
const FallbackColor = "#9E9E9E"

type Participant struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	DisplayColor string `json:"displayColor"`
	TextColor    string `json:"textColor"`
}

// Registry is the immutable, ordered participant list.
type Registry struct {
	participants []Participant
	byName       map[string]int
}

// NewRegistry builds a Registry in the given order. Later duplicates of a
// name are ignored; config validation rejects them before this point.
func NewRegistry(participants []Participant) *Registry {
	r := &Registry{
		participants: make([]Participant, 0, len(participants)),
		byName:       make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		if _, dup := r.byName[p.Name]; dup {
			continue
		}
		r.byName[p.Name] = len(r.participants)
		r.participants = append(r.participants, p)
	}
	return r
}

// FromConfig builds a Registry from the users section of cfg.
func FromConfig(cfg *config.Config) *Registry {
	ps := make([]Participant, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		display := u.DisplayColor
		if display == "" {
			display = u.Color
		}
		text := u.TextColor
		if text == "" {
			text = "#FFFFFF"
		}
		ps = append(ps, Participant{Name: u.Name, Color: u.Color, DisplayColor: display, TextColor: text})
	}
	return NewRegistry(ps)
}

// List returns a copy of the participants in configuration order.
func (r *Registry) List() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

func (r *Registry) Len() int { return len(r.participants) }

func (r *Registry) ByName(name string) mo.Option[Participant] {
	i, ok := r.byName[name]
	if !ok {
		return mo.None[Participant]()
	}
	return mo.Some(r.participants[i])
}

func (r *Registry) At(i int) mo.Option[Participant] {
	if i < 0 || i >= len(r.participants) {
		return mo.None[Participant]()
	}
	return mo.Some(r.participants[i])
}

// IndexOf returns the position of name, or -1.
func (r *Registry) IndexOf(name string) int {
	if i, ok := r.byName[name]; ok {
		return i
	}
	return -1
}

func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// ColorOf returns the highlight colour of name, or FallbackColor.
func (r *Registry) ColorOf(name string) string {
	if p, ok := r.ByName(name).Get(); ok {
		return p.Color
	}
	return FallbackColor
}

// TextColorOf returns the text colour drawn over ColorOf.
func (r *Registry) TextColorOf(name string) string {
	if p, ok := r.ByName(name).Get(); ok {
		return p.TextColor
	}
	return "#FFFFFF"
}
