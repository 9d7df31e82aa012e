// Package preset exposes named slider configurations together with helpers to
// apply them to a model or capture one from it.
package preset

import (
	"strings"

	"github.com/edward-ap/rangeslider/internal/slider"
)

// Preset names a full slider configuration.
type Preset struct {
	Name  string       `json:"name" yaml:"name"`
	State slider.State `json:"state" yaml:"state"`
}

// Catalog keeps the available presets together with the selected one.
type Catalog struct {
	Presets []Preset
	Current Preset
}

// Internal copy of the bundled presets. They cover the shapes the demo
// exercises: plain percent, coarse range, fractional vertical, short scale.
var defaultPresets = []Preset{
	{
		Name:  "Percent",
		State: slider.DefaultState(),
	},
	{
		Name: "Price Range",
		State: slider.State{
			Min: 0, Max: 1000, Step: 10,
			IsRange: true, IsTips: true,
			Values: [2]float64{200, 800},
		},
	},
	{
		Name: "Temperature",
		State: slider.State{
			Min: -30, Max: 50, Step: 0.5,
			Orientation: slider.Vertical, IsTips: true,
			Values: [2]float64{21, 50},
		},
	},
	{
		Name: "Rating",
		State: slider.State{
			Min: 1, Max: 5, Step: 1,
			IsRange: true, IsTips: false,
			Values: [2]float64{2, 4},
		},
	},
}

// DefaultPresets returns a copy of the bundled presets so callers can modify
// entries without affecting the package defaults.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	copy(out, defaultPresets)
	return out
}

// FindPresetByName performs a case-insensitive lookup across default presets.
func FindPresetByName(name string) (Preset, bool) {
	return Find(defaultPresets, name)
}

// Find performs a case-insensitive lookup in list.
func Find(list []Preset, name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range list {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply writes p into m. Range mode is dropped first so SetState can place
// both values freely; switching it back on revalidates the high pointer.
func Apply(m *slider.Model, p Preset) {
	m.SetRange(false)
	m.SetState(p.State)
	m.SetOrientation(p.State.Orientation)
	m.SetTooltipVisibility(p.State.IsTips)
	m.SetRange(p.State.IsRange)
}

// Extract captures the current configuration of m under name.
func Extract(name string, m *slider.Model) Preset {
	return Preset{Name: strings.TrimSpace(name), State: m.State()}
}
