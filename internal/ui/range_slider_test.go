package ui

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edward-ap/rangeslider/internal/slider"
)

func TestPositionFromPoint(t *testing.T) {
	size := fyne.NewSize(200, 100)
	tests := []struct {
		name   string
		point  fyne.Position
		size   fyne.Size
		orient slider.Orientation
		want   float64
		ok     bool
	}{
		{name: "horizontal middle", point: fyne.NewPos(100, 5), size: size, orient: slider.Horizontal, want: 0.5, ok: true},
		{name: "horizontal clamps left", point: fyne.NewPos(-20, 5), size: size, orient: slider.Horizontal, want: 0, ok: true},
		{name: "horizontal clamps right", point: fyne.NewPos(250, 5), size: size, orient: slider.Horizontal, want: 1, ok: true},
		{name: "vertical top is max", point: fyne.NewPos(5, 0), size: size, orient: slider.Vertical, want: 1, ok: true},
		{name: "vertical quarter", point: fyne.NewPos(5, 75), size: size, orient: slider.Vertical, want: 0.25, ok: true},
		{name: "zero width", point: fyne.NewPos(5, 5), size: fyne.NewSize(0, 10), orient: slider.Horizontal, ok: false},
		{name: "zero height", point: fyne.NewPos(5, 5), size: fyne.NewSize(10, 0), orient: slider.Vertical, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := positionFromPoint(tt.point, tt.size, tt.orient)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 0.0001 {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNearestPointer(t *testing.T) {
	tests := []struct {
		name           string
		pos, low, high float64
		want           slider.Pointer
	}{
		{name: "closer to low", pos: 0.2, low: 0.1, high: 0.9, want: slider.Low},
		{name: "closer to high", pos: 0.8, low: 0.1, high: 0.9, want: slider.High},
		{name: "stacked, drag up", pos: 0.7, low: 0.5, high: 0.5, want: slider.High},
		{name: "stacked, drag down", pos: 0.3, low: 0.5, high: 0.5, want: slider.Low},
		{name: "exact tie in between", pos: 0.5, low: 0.4, high: 0.6, want: slider.Low},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestPointer(tt.pos, tt.low, tt.high); got != tt.want {
				t.Fatalf("nearestPointer(%v, %v, %v) = %v, want %v", tt.pos, tt.low, tt.high, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v, step float64
		want    string
	}{
		{v: 45, step: 1, want: "45"},
		{v: 0.30000000000000004, step: 0.1, want: "0.3"},
		{v: -12.5, step: 0.5, want: "-12.5"},
		{v: 1000, step: 10, want: "1000"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.step); got != tt.want {
			t.Fatalf("FormatValue(%v, %v) = %q, want %q", tt.v, tt.step, got, tt.want)
		}
	}
}

func newTestSlider(t *testing.T, st slider.State) (*RangeSlider, *slider.Model) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	m := slider.New(st)
	s := NewRangeSlider(m)
	s.Resize(fyne.NewSize(200, 40))
	return s, m
}

func rangeState() slider.State {
	st := slider.DefaultState()
	st.IsRange = true
	return st
}

func TestRangeSliderTapUsesClickRules(t *testing.T) {
	s, m := newTestSlider(t, rangeState())

	s.Tapped(&fyne.PointEvent{Position: fyne.NewPos(100, 20)})
	assert.Equal(t, [2]float64{50, 100}, m.Values())

	s.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 20)})
	assert.Equal(t, [2]float64{50, 100}, m.Values())

	s.Tapped(&fyne.PointEvent{Position: fyne.NewPos(20, 20)})
	assert.Equal(t, 10.0, m.Value(slider.Low))
}

func TestRangeSliderDragKeepsStartingPointer(t *testing.T) {
	s, m := newTestSlider(t, rangeState())

	drag := func(x float32) {
		s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, 20)}})
	}
	drag(180)
	assert.Equal(t, 90.0, m.Value(slider.High))
	drag(20)
	assert.Equal(t, 10.0, m.Value(slider.High), "drag stays on the high pointer")
	assert.Equal(t, 0.0, m.Value(slider.Low))
	drag(-50)
	assert.Equal(t, 1.0, m.Value(slider.High), "high pointer stops one step above low")
	s.DragEnd()

	drag(100)
	assert.Equal(t, 50.0, m.Value(slider.High))
	s.DragEnd()
	drag(0)
	assert.Equal(t, 0.0, m.Value(slider.Low))
	assert.Equal(t, 50.0, m.Value(slider.High))
}

func TestRangeSliderScroll(t *testing.T) {
	s, m := newTestSlider(t, slider.DefaultState())
	m.SetStep(5)

	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	assert.Equal(t, 10.0, m.Value(slider.Low))

	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	assert.Equal(t, 5.0, m.Value(slider.Low))
	assert.NotPanics(t, func() { s.Scrolled(nil) })
}

func TestRangeSliderRendererFollowsModel(t *testing.T) {
	s, m := newTestSlider(t, slider.DefaultState())
	r, ok := test.WidgetRenderer(s).(*rangeSliderRenderer)
	require.True(t, ok)
	assert.Len(t, r.Objects(), 8)

	assert.False(t, r.highThumb.Visible())
	assert.True(t, r.lowTip.Visible())

	m.SetRange(true)
	m.SetValue(25, slider.Low)
	assert.True(t, r.highThumb.Visible())
	assert.True(t, r.highTip.Visible())
	assert.Equal(t, "25", r.lowTip.Text)
	assert.Equal(t, "100", r.maxLabel.Text)

	m.SetTooltipVisibility(false)
	assert.False(t, r.lowTip.Visible())
	assert.False(t, r.highTip.Visible())

	m.SetOrientation(slider.Vertical)
	assert.Equal(t, float32(180), s.MinSize().Height)
}

func TestRangeSliderOnChangedAndDetach(t *testing.T) {
	s, m := newTestSlider(t, slider.DefaultState())
	var got []slider.State
	s.OnChanged = func(st slider.State) { got = append(got, st) }

	m.SetValue(30, slider.Low)
	s.Detach()
	m.SetValue(40, slider.Low)

	require.Len(t, got, 1)
	assert.Equal(t, 30.0, got[0].Values[0])
}
