package slider

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/edward-ap/rangeslider/internal/observer"
)

// Model owns the canonical slider state. Every mutator corrects its input,
// commits, and then emits EventChange exactly once, whether or not anything
// changed. Invalid input is never reported; it is ignored or clamped.
//
// A Model is not safe for concurrent use.
type Model struct {
	state    State
	notifier *observer.Notifier
	log      zerolog.Logger
}

// Option customises a Model at construction.
type Option func(*Model)

// WithLogger routes rejection and commit traces to l. The default is silent.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New builds a model from initial. Min, Max, Step and Values are validated;
// IsRange, Orientation and IsTips are taken as given.
func New(initial State, opts ...Option) *Model {
	m := &Model{
		state:    DefaultState(),
		notifier: observer.New(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state.IsRange = initial.IsRange
	m.state.Orientation = initial.Orientation
	m.state.IsTips = initial.IsTips
	m.SetState(initial)
	return m
}

// AddListener registers fn for event and returns a handle that removes it.
func (m *Model) AddListener(event string, fn func()) observer.Subscription {
	return m.notifier.Subscribe(event, fn)
}

// OnChange is AddListener(EventChange, fn).
func (m *Model) OnChange(fn func()) observer.Subscription {
	return m.AddListener(EventChange, fn)
}

// SetState validates and replaces Min, Max, Step and Values in one step.
// The flags in s are ignored; use the dedicated setters for those.
func (m *Model) SetState(s State) {
	b, ok := ValidateMinMax(s.Bounds(), m.state.Bounds())
	if !ok {
		m.log.Debug().Float64("min", s.Min).Float64("max", s.Max).Msg("bounds rejected")
	}
	step, ok := ValidateStep(s.Step, b, m.state.Step)
	if !ok {
		m.log.Debug().Float64("step", s.Step).Float64("fallback", step).Msg("step rejected")
	}
	values, ok := ValidateValues(s.Values, b)
	if !ok {
		m.log.Debug().Floats64("values", s.Values[:]).Floats64("clamped", values[:]).Msg("values clamped")
	}
	m.state.Min, m.state.Max = b.Min, b.Max
	m.state.Step = step
	m.state.Values = values
	m.recalculateValue()
	m.emitChange()
}

// State returns a snapshot; mutating it does not affect the model.
func (m *Model) State() State { return m.state }

// SetMin accepts min only while min < Max.
func (m *Model) SetMin(min float64) {
	if isFinite(min) && min < m.state.Max {
		m.state.Min = min
		m.fitStep()
		m.recalculateValue()
	} else {
		m.log.Debug().Float64("min", min).Float64("max", m.state.Max).Msg("min rejected")
	}
	m.emitChange()
}

// Min returns the lower bound.
func (m *Model) Min() float64 { return m.state.Min }

// SetMax accepts max only while max > Min.
func (m *Model) SetMax(max float64) {
	if isFinite(max) && max > m.state.Min {
		m.state.Max = max
		m.fitStep()
		m.recalculateValue()
	} else {
		m.log.Debug().Float64("max", max).Float64("min", m.state.Min).Msg("max rejected")
	}
	m.emitChange()
}

// Max returns the upper bound.
func (m *Model) Max() float64 { return m.state.Max }

// SetStep accepts step when 0 < step <= Max-Min and re-snaps both pointers.
func (m *Model) SetStep(step float64) {
	if validStep(step, m.state.Bounds()) {
		m.state.Step = step
		m.recalculateValue()
	} else {
		m.log.Debug().Float64("step", step).Msg("step rejected")
	}
	m.emitChange()
}

// Step returns the quantisation unit.
func (m *Model) Step() float64 { return m.state.Step }

// SetRange switches between single and range mode. Switching on pulls a low
// pointer sitting at the top of the track down by one step (onto the grid)
// and revalidates the high pointer against it. Switching off only clears the
// flag.
func (m *Model) SetRange(isRange bool) {
	if !m.state.IsRange && isRange {
		m.state.IsRange = true
		m.fitLowPointer()
		m.setNewValue(m.state.Values[1], High)
	}
	m.state.IsRange = isRange
	m.emitChange()
}

// Range reports whether two pointers are active.
func (m *Model) Range() bool { return m.state.IsRange }

// SetOrientation stores the presentation hint.
func (m *Model) SetOrientation(o Orientation) {
	m.state.Orientation = o
	m.emitChange()
}

// Orientation returns the presentation hint.
func (m *Model) Orientation() Orientation { return m.state.Orientation }

// SetTooltipVisibility stores whether value labels should be shown.
func (m *Model) SetTooltipVisibility(visible bool) {
	m.state.IsTips = visible
	m.emitChange()
}

// TooltipVisibility reports whether value labels should be shown.
func (m *Model) TooltipVisibility() bool { return m.state.IsTips }

// SetValue moves pointer to value, snapped to the grid and clamped into
// [Min, Max]. In range mode a value that would reach or pass the sibling
// pointer is refused and the pointer keeps its previous value.
func (m *Model) SetValue(value float64, pointer Pointer) {
	if m.crossesSibling(value, pointer) {
		m.log.Debug().Int("pointer", pointer.index()).Float64("value", value).Msg("value crosses sibling pointer")
	} else {
		m.setNewValue(value, pointer)
	}
	m.emitChange()
}

func (m *Model) crossesSibling(value float64, pointer Pointer) bool {
	s := &m.state
	if !s.IsRange || math.IsNaN(value) {
		return false
	}
	v := value
	if v != s.Max {
		v = m.roundByStep(v)
	}
	v = clamp(v, s.Min, s.Max)
	if pointer.index() == 0 {
		return v > s.Values[1]-s.Step
	}
	return v < s.Values[0]+s.Step
}

// Value returns the current value of pointer.
func (m *Model) Value(pointer Pointer) float64 { return m.state.Values[pointer.index()] }

// Values returns both pointer values.
func (m *Model) Values() [2]float64 { return m.state.Values }

// SetPointPosition moves pointer to the normalised track position. A position
// of 1 or more lands exactly on Max.
func (m *Model) SetPointPosition(position float64, pointer Pointer) {
	m.setPointPosition(position, pointer)
	m.emitChange()
}

// PointPosition returns the normalised position of pointer. No clamping is
// applied.
func (m *Model) PointPosition(pointer Pointer) float64 {
	return (m.state.Values[pointer.index()] - m.state.Min) / (m.state.Max - m.state.Min)
}

// SetPosition handles a click on the track. At 1 or beyond, the active
// pointer (High in range mode) goes straight to Max without touching the
// other one. Otherwise, in range mode, the pointer on the near side of the
// click moves; a click between the pointers moves the closer one, preferring
// Low on a tie.
func (m *Model) SetPosition(position float64) {
	if position >= 1 {
		pointer := Low
		if m.state.IsRange {
			pointer = High
		}
		m.state.Values[pointer.index()] = m.state.Max
		m.emitChange()
		return
	}

	if m.state.IsRange {
		value := m.valueByPosition(position)
		switch {
		case value < m.state.Values[0]:
			m.setNewValue(value, Low)
		case value > m.state.Values[1]:
			m.setNewValue(value, High)
		default:
			m.setNewValue(value, m.closestPointer(value))
		}
	} else {
		m.setPointPosition(position, Low)
	}
	m.emitChange()
}

func (m *Model) setPointPosition(position float64, pointer Pointer) {
	value := m.state.Max
	if position < 1 {
		value = m.valueByPosition(position)
	}
	m.setNewValue(value, pointer)
}

// setNewValue is the constrained pointer-set shared by every value entry
// point: snap to the step grid (Max is exempt), then clamp into the interval
// left free by the sibling pointer.
func (m *Model) setNewValue(value float64, pointer Pointer) {
	if math.IsNaN(value) {
		m.log.Debug().Int("pointer", pointer.index()).Msg("NaN value ignored")
		return
	}
	lo, hi := m.constraint(pointer)
	rounded := value
	if value != m.state.Max {
		rounded = m.roundByStep(value)
	}
	if rounded < lo {
		rounded = lo
	} else if rounded > hi {
		rounded = hi
	}
	m.state.Values[pointer.index()] = rounded
	m.log.Trace().Int("pointer", pointer.index()).Float64("requested", value).Float64("value", rounded).Msg("pointer set")
}

// constraint returns the interval pointer may occupy. In range mode the
// pointers keep at least one step between them, and the low pointer's
// ceiling is snapped down onto the grid so an off-grid High never drags Low
// off it.
func (m *Model) constraint(pointer Pointer) (lo, hi float64) {
	s := &m.state
	if pointer.index() == 0 {
		hi = s.Max
		if s.IsRange {
			hi = m.gridFloor(s.Values[1] - s.Step)
		}
		return s.Min, hi
	}
	lo = s.Min
	if s.IsRange {
		lo = s.Values[0] + s.Step
	}
	return lo, s.Max
}

// recalculateValue restores pointer invariants after a bound or step change.
func (m *Model) recalculateValue() {
	s := &m.state
	if s.IsRange {
		m.fitLowPointer()
		high := s.Values[1]
		if high <= s.Min {
			high = s.Min + s.Step
		}
		m.setNewValue(high, High)
	}
	m.setNewValue(s.Values[0], Low)
}

// fitLowPointer keeps room for the high pointer above the low one. The low
// pointer is snapped and held between Min and the last grid value that still
// leaves a full step below Max; with Max on the grid that is Max-Step.
func (m *Model) fitLowPointer() {
	s := &m.state
	ceiling := m.gridFloor(s.Max - s.Step)
	s.Values[0] = clamp(m.roundByStep(s.Values[0]), s.Min, ceiling)
}

// gridFloor returns the largest grid value not above v.
func (m *Model) gridFloor(v float64) float64 {
	s := &m.state
	return s.Min + math.Floor((v-s.Min)/s.Step+gridEpsilon)*s.Step
}

// gridEpsilon absorbs float error when dividing a grid-aligned span by Step.
const gridEpsilon = 1e-9

// valueByPosition maps a normalised position onto the step grid.
func (m *Model) valueByPosition(position float64) float64 {
	s := &m.state
	return m.roundByStep((s.Max-s.Min)*position + s.Min)
}

// roundByStep rounds half up, matching the usual track-click behaviour for
// values exactly between two grid points.
func (m *Model) roundByStep(value float64) float64 {
	s := &m.state
	return math.Floor((value-s.Min)/s.Step+0.5)*s.Step + s.Min
}

func (m *Model) closestPointer(value float64) Pointer {
	toLow := value - m.state.Values[0]
	toHigh := m.state.Values[1] - value
	if toLow <= toHigh {
		return Low
	}
	return High
}

// fitStep shrinks Step to the new width when accepted bounds got narrower
// than one step.
func (m *Model) fitStep() {
	if w := m.state.Max - m.state.Min; m.state.Step > w {
		m.log.Debug().Float64("step", m.state.Step).Float64("width", w).Msg("step shrunk to width")
		m.state.Step = w
	}
}

func (m *Model) emitChange() { m.notifier.Emit(EventChange) }
