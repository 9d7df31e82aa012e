// Package slider implements the value-state model behind a single-value or
// two-ended range slider: bounds, step quantisation, pointer ordering,
// position/value mapping and change notification.
package slider

import (
	"fmt"
	"strings"
)

// Defaults applied when a slider is built from DefaultState.
const (
	DefaultMin  = 0
	DefaultMax  = 100
	DefaultStep = 1
)

// EventChange is emitted after every public mutator call.
const EventChange = "change"

// Pointer addresses one end of the slider. Any value other than High
// addresses the low pointer.
type Pointer int

const (
	// Low is the sole pointer of a single-value slider, or the lower end of a range.
	Low Pointer = 0
	// High is the upper end of a range; ignored by consumers in single mode.
	High Pointer = 1
)

func (p Pointer) index() int {
	if p == High {
		return 1
	}
	return 0
}

// Orientation is a presentation hint; it has no effect on value logic.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation accepts "horizontal" or "vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText encodes the orientation for JSON and YAML.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText decodes an orientation name.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// State is the complete slider configuration. It doubles as the construction
// object and as the snapshot returned by Model.State; Values is an array so a
// copied State never aliases the model's storage.
type State struct {
	Min         float64     `json:"min" yaml:"min"`
	Max         float64     `json:"max" yaml:"max"`
	Step        float64     `json:"step" yaml:"step"`
	IsRange     bool        `json:"isRange" yaml:"isRange"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	IsTips      bool        `json:"isTips" yaml:"isTips"`
	Values      [2]float64  `json:"values" yaml:"values"`
}

// DefaultState returns a single-value horizontal slider over [0, 100] with
// tooltips on.
func DefaultState() State {
	return State{
		Min:         DefaultMin,
		Max:         DefaultMax,
		Step:        DefaultStep,
		IsRange:     false,
		Orientation: Horizontal,
		IsTips:      true,
		Values:      [2]float64{DefaultMin, DefaultMax},
	}
}

// Bounds returns the [Min, Max] pair of s.
func (s State) Bounds() Bounds { return Bounds{Min: s.Min, Max: s.Max} }
