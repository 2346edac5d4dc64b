package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlintShadey/huddleuptime/internal/config"
)

func testRegistry() *Registry {
	return NewRegistry([]Participant{
		{Name: "A", Color: "#111111", DisplayColor: "#101010", TextColor: "#FFFFFF"},
		{Name: "B", Color: "#222222", DisplayColor: "#202020", TextColor: "#000000"},
	})
}

func TestRegistryLookups(t *testing.T) {
	r := testRegistry()

	assert.Equal(t, 2, r.Len())
	p, ok := r.ByName("B").Get()
	require.True(t, ok)
	assert.Equal(t, "#222222", p.Color)

	assert.True(t, r.ByName("C").IsAbsent())
	assert.True(t, r.At(-1).IsAbsent())
	assert.True(t, r.At(2).IsAbsent())
	assert.Equal(t, "A", r.At(0).MustGet().Name)
}

func TestColorOfFallback(t *testing.T) {
	r := testRegistry()
	assert.Equal(t, "#111111", r.ColorOf("A"))
	assert.Equal(t, FallbackColor, r.ColorOf("nobody"))
	assert.Equal(t, "#000000", r.TextColorOf("B"))
}

func TestListReturnsCopy(t *testing.T) {
	r := testRegistry()
	list := r.List()
	list[0].Name = "changed"
	assert.Equal(t, "A", r.List()[0].Name)
}

func TestFromConfigKeepsOrderAndDefaultsColors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Users = append(cfg.Users, config.UserConfig{Name: "Solo", Color: "#123456"})

	r := FromConfig(cfg)
	require.Equal(t, 5, r.Len())
	assert.Equal(t, "Flint & Maryam", r.At(0).MustGet().Name)

	solo := r.ByName("Solo").MustGet()
	assert.Equal(t, "#123456", solo.DisplayColor)
	assert.Equal(t, "#FFFFFF", solo.TextColor)
}

func TestSelection(t *testing.T) {
	s := NewSelection(testRegistry())

	assert.Equal(t, 0, s.ActiveIndex())
	assert.True(t, s.IsActive(0))

	assert.True(t, s.SetActiveByName("B"))
	assert.Equal(t, "B", s.Active().MustGet().Name)

	assert.False(t, s.SetActiveByName("missing"))
	assert.Equal(t, 1, s.ActiveIndex())

	assert.False(t, s.SetActive(5))
	assert.True(t, s.SetActive(0))
	assert.False(t, s.IsActive(1))
}

func TestSelectionEmptyRegistry(t *testing.T) {
	s := NewSelection(NewRegistry(nil))
	assert.True(t, s.Active().IsAbsent())
}
