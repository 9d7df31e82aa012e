// Package sim drives a slider model from a textual list of operations. It backs
// the headless "sim" command and scenario tests.
//
// Each operation has the form name=value, for example:
//
//	min=10 max=70 step=5 range=true value=43 value1=80
//	point=0.3 point1=0.6 position=0.49 orientation=vertical tips=false
//
// A trailing 1 on value or point addresses the high pointer.
package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/edward-ap/rangeslider/internal/slider"
)

// ErrBadOp reports an operation that could not be parsed.
var ErrBadOp = errors.New("bad operation")

// Kind names an operation.
type Kind string

const (
	OpMin         Kind = "min"
	OpMax         Kind = "max"
	OpStep        Kind = "step"
	OpRange       Kind = "range"
	OpOrientation Kind = "orientation"
	OpTips        Kind = "tips"
	OpValue       Kind = "value"
	OpPoint       Kind = "point"
	OpPosition    Kind = "position"
)

// Op is one parsed operation.
type Op struct {
	Kind        Kind
	Pointer     slider.Pointer
	Number      float64
	Flag        bool
	Orientation slider.Orientation
}

func (o Op) String() string {
	suffix := ""
	if o.Pointer == slider.High {
		suffix = "1"
	}
	switch o.Kind {
	case OpRange, OpTips:
		return fmt.Sprintf("%s=%t", o.Kind, o.Flag)
	case OpOrientation:
		return fmt.Sprintf("%s=%s", o.Kind, o.Orientation)
	}
	return fmt.Sprintf("%s%s=%s", o.Kind, suffix, strconv.FormatFloat(o.Number, 'g', -1, 64))
}

// Parse turns raw name=value tokens into operations.
func Parse(raw []string) ([]Op, error) {
	ops := make([]Op, 0, len(raw))
	for _, tok := range raw {
		op, err := parseOne(tok)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOne(tok string) (Op, error) {
	name, val, ok := strings.Cut(strings.TrimSpace(tok), "=")
	if !ok {
		return Op{}, fmt.Errorf("%w %q: expected name=value", ErrBadOp, tok)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	val = strings.TrimSpace(val)

	op := Op{Pointer: slider.Low}
	if base, found := strings.CutSuffix(name, "1"); found && (base == string(OpValue) || base == string(OpPoint)) {
		name = base
		op.Pointer = slider.High
	}
	op.Kind = Kind(name)

	var err error
	switch op.Kind {
	case OpRange, OpTips:
		op.Flag, err = strconv.ParseBool(val)
	case OpOrientation:
		op.Orientation, err = slider.ParseOrientation(val)
	case OpMin, OpMax, OpStep, OpValue, OpPoint, OpPosition:
		op.Number, err = strconv.ParseFloat(val, 64)
	default:
		return Op{}, fmt.Errorf("%w %q: unknown operation %q", ErrBadOp, tok, name)
	}
	if err != nil {
		return Op{}, fmt.Errorf("%w %q: %v", ErrBadOp, tok, err)
	}
	return op, nil
}

// Result is the outcome of Run.
type Result struct {
	State   slider.State `json:"state" yaml:"state"`
	Changes int          `json:"changes" yaml:"changes"`
	Low     float64      `json:"lowPosition" yaml:"lowPosition"`
	High    float64      `json:"highPosition" yaml:"highPosition"`
}

// Run applies ops to m in order and reports the final state together with
// the number of change notifications observed.
func Run(m *slider.Model, ops []Op) Result {
	changes := 0
	sub := m.OnChange(func() { changes++ })
	defer sub.Cancel()

	for _, op := range ops {
		Apply(m, op)
	}
	return Result{
		State:   m.State(),
		Changes: changes,
		Low:     m.PointPosition(slider.Low),
		High:    m.PointPosition(slider.High),
	}
}

// Apply performs a single operation on m.
func Apply(m *slider.Model, op Op) {
	switch op.Kind {
	case OpMin:
		m.SetMin(op.Number)
	case OpMax:
		m.SetMax(op.Number)
	case OpStep:
		m.SetStep(op.Number)
	case OpRange:
		m.SetRange(op.Flag)
	case OpOrientation:
		m.SetOrientation(op.Orientation)
	case OpTips:
		m.SetTooltipVisibility(op.Flag)
	case OpValue:
		m.SetValue(op.Number, op.Pointer)
	case OpPoint:
		m.SetPointPosition(op.Number, op.Pointer)
	case OpPosition:
		m.SetPosition(op.Number)
	}
}
