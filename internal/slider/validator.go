package slider

import "math"

// Bounds is a candidate or committed [Min, Max] pair.
type Bounds struct {
	Min float64
	Max float64
}

// Width is Max - Min.
func (b Bounds) Width() float64 { return b.Max - b.Min }

func (b Bounds) valid() bool {
	return isFinite(b.Min) && isFinite(b.Max) && b.Min < b.Max
}

// ValidateMinMax adopts proposed when Min < Max, otherwise keeps previous.
// The flag reports whether the proposal was accepted.
func ValidateMinMax(proposed, previous Bounds) (Bounds, bool) {
	if proposed.valid() {
		return proposed, true
	}
	if previous.valid() {
		return previous, false
	}
	return Bounds{Min: DefaultMin, Max: DefaultMax}, false
}

// ValidateStep accepts step when 0 < step <= b.Width(). A rejected step falls
// back to previous, then to DefaultStep, and finally to the full width when
// neither fits inside b.
func ValidateStep(step float64, b Bounds, previous float64) (float64, bool) {
	if validStep(step, b) {
		return step, true
	}
	if validStep(previous, b) {
		return previous, false
	}
	if validStep(DefaultStep, b) {
		return DefaultStep, false
	}
	return b.Width(), false
}

// ValidateValues clamps each pointer into b independently. Ordering between
// the pointers is left to the model.
func ValidateValues(values [2]float64, b Bounds) ([2]float64, bool) {
	out := values
	for i, v := range values {
		out[i] = clamp(v, b.Min, b.Max)
	}
	return out, out == values
}

func validStep(step float64, b Bounds) bool {
	return isFinite(step) && step > 0 && step <= b.Width()
}

// clamp constrains v to [lo, hi]; NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
