package ui

import (
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/rangeslider/internal/observer"
	"github.com/edward-ap/rangeslider/internal/slider"
)

// RangeSlider draws a slider.Model as a track with one or two thumbs and
// forwards taps, drags and wheel input back into the model. It never changes
// state itself; it redraws whenever the model emits a change.
type RangeSlider struct {
	widget.BaseWidget
	model *slider.Model
	sub   observer.Subscription

	active   slider.Pointer
	dragging bool

	// OnChanged is called after every model change with a snapshot.
	OnChanged func(slider.State)
}

// NewRangeSlider creates a widget bound to m.
func NewRangeSlider(m *slider.Model) *RangeSlider {
	s := &RangeSlider{model: m}
	s.ExtendBaseWidget(s)
	s.sub = m.OnChange(s.onModelChange)
	return s
}

// Model returns the bound model.
func (s *RangeSlider) Model() *slider.Model { return s.model }

// Detach stops listening to the model. The widget should not be used afterwards.
func (s *RangeSlider) Detach() { s.sub.Cancel() }

func (s *RangeSlider) onModelChange() {
	CallOnMain(s.Refresh)
	if s.OnChanged != nil {
		s.OnChanged(s.model.State())
	}
}

func (s *RangeSlider) CreateRenderer() fyne.WidgetRenderer {
	r := &rangeSliderRenderer{
		s:         s,
		track:     canvas.NewRectangle(theme.ShadowColor()),
		fill:      canvas.NewRectangle(theme.PrimaryColor()),
		lowThumb:  canvas.NewCircle(theme.ForegroundColor()),
		highThumb: canvas.NewCircle(theme.ForegroundColor()),
		lowTip:    newCaption(),
		highTip:   newCaption(),
		minLabel:  newCaption(),
		maxLabel:  newCaption(),
	}
	r.objs = []fyne.CanvasObject{
		r.track, r.fill, r.lowThumb, r.highThumb,
		r.lowTip, r.highTip, r.minLabel, r.maxLabel,
	}
	return r
}

func newCaption() *canvas.Text {
	t := canvas.NewText("", theme.ForegroundColor())
	t.TextSize = theme.CaptionTextSize()
	t.Alignment = fyne.TextAlignCenter
	return t
}

// Tapped moves the pointer chosen by the model's click rules.
func (s *RangeSlider) Tapped(e *fyne.PointEvent) {
	pos, ok := positionFromPoint(e.Position, s.Size(), s.model.Orientation())
	if !ok {
		return
	}
	s.model.SetPosition(pos)
}

// Dragged moves the pointer nearest to where the drag started.
func (s *RangeSlider) Dragged(e *fyne.DragEvent) {
	pos, ok := positionFromPoint(e.Position, s.Size(), s.model.Orientation())
	if !ok {
		return
	}
	if !s.dragging {
		s.dragging = true
		s.active = slider.Low
		if s.model.Range() {
			s.active = nearestPointer(pos, s.model.PointPosition(slider.Low), s.model.PointPosition(slider.High))
		}
	}
	s.model.SetPointPosition(pos, s.active)
}

func (s *RangeSlider) DragEnd() { s.dragging = false }

// Scrolled nudges the last dragged pointer by one step.
func (s *RangeSlider) Scrolled(ev *fyne.ScrollEvent) {
	if ev == nil {
		return
	}
	p := s.active
	if !s.model.Range() {
		p = slider.Low
	}
	step := s.model.Step()
	if ev.Scrolled.DY > 0 {
		s.model.SetValue(s.model.Value(p)+step, p)
	} else if ev.Scrolled.DY < 0 {
		s.model.SetValue(s.model.Value(p)-step, p)
	}
}

// MinSize leaves room for tips above and bound labels below the track.
func (s *RangeSlider) MinSize() fyne.Size {
	text := theme.CaptionTextSize() + theme.InnerPadding()
	if s.model.Orientation() == slider.Vertical {
		w := theme.IconInlineSize()
		if w < 20 {
			w = 20
		}
		return fyne.NewSize(w+2*labelWidth, 180)
	}
	return fyne.NewSize(120, theme.IconInlineSize()+2*text)
}

const labelWidth float32 = 40

// positionFromPoint maps a point inside a widget of the given size to a
// normalised track position. Vertical tracks grow upwards.
func positionFromPoint(p fyne.Position, size fyne.Size, o slider.Orientation) (float64, bool) {
	var frac float64
	if o == slider.Vertical {
		if size.Height <= 0 {
			return 0, false
		}
		frac = 1 - float64(p.Y/size.Height)
	} else {
		if size.Width <= 0 {
			return 0, false
		}
		frac = float64(p.X / size.Width)
	}
	return clampFloat64(frac, 0, 1), true
}

// nearestPointer picks the thumb closest to pos. When both are equally close
// the side of the click decides.
func nearestPointer(pos, low, high float64) slider.Pointer {
	dl := math.Abs(pos - low)
	dh := math.Abs(pos - high)
	switch {
	case dl < dh:
		return slider.Low
	case dh < dl:
		return slider.High
	case pos > high:
		return slider.High
	}
	return slider.Low
}

// FormatValue prints v with as many decimals as step needs.
func FormatValue(v, step float64) string {
	decimals := 0
	if s := strconv.FormatFloat(step, 'f', -1, 64); len(s) > 0 {
		for i := len(s) - 1; i >= 0; i-- {
			if s[i] == '.' {
				decimals = len(s) - 1 - i
				break
			}
		}
	}
	if decimals > 6 {
		decimals = 6
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

type rangeSliderRenderer struct {
	s         *RangeSlider
	track     *canvas.Rectangle
	fill      *canvas.Rectangle
	lowThumb  *canvas.Circle
	highThumb *canvas.Circle
	lowTip    *canvas.Text
	highTip   *canvas.Text
	minLabel  *canvas.Text
	maxLabel  *canvas.Text
	objs      []fyne.CanvasObject
}

func (r *rangeSliderRenderer) Layout(sz fyne.Size) {
	st := r.s.model.State()
	lowPos := float32(clampFloat64(r.s.model.PointPosition(slider.Low), 0, 1))
	highPos := float32(clampFloat64(r.s.model.PointPosition(slider.High), 0, 1))

	r.lowTip.Text = FormatValue(st.Values[0], st.Step)
	r.highTip.Text = FormatValue(st.Values[1], st.Step)
	r.minLabel.Text = FormatValue(st.Min, st.Step)
	r.maxLabel.Text = FormatValue(st.Max, st.Step)
	setVisible(r.highThumb, st.IsRange)
	setVisible(r.lowTip, st.IsTips)
	setVisible(r.highTip, st.IsTips && st.IsRange)

	fillFrom, fillTo := float32(0), lowPos
	if st.IsRange {
		fillFrom, fillTo = lowPos, highPos
	}
	if st.Orientation == slider.Vertical {
		r.layoutVertical(sz, fillFrom, fillTo, lowPos, highPos)
		return
	}
	r.layoutHorizontal(sz, fillFrom, fillTo, lowPos, highPos)
}

func (r *rangeSliderRenderer) layoutHorizontal(sz fyne.Size, fillFrom, fillTo, lowPos, highPos float32) {
	// track centered vertically
	trackH := float32(4)
	y := (sz.Height - trackH) / 2
	r.track.Move(fyne.NewPos(0, y))
	r.track.Resize(fyne.NewSize(sz.Width, trackH))

	r.fill.Move(fyne.NewPos(sz.Width*fillFrom, y))
	r.fill.Resize(fyne.NewSize(sz.Width*(fillTo-fillFrom), trackH))

	thumbR := theme.IconInlineSize() / 4
	cy := sz.Height / 2
	place := func(thumb *canvas.Circle, tip *canvas.Text, pos float32) {
		cx := pos * sz.Width
		if cx < thumbR {
			cx = thumbR
		}
		if cx > sz.Width-thumbR {
			cx = sz.Width - thumbR
		}
		thumb.Resize(fyne.NewSize(thumbR*2, thumbR*2))
		thumb.Move(fyne.NewPos(cx-thumbR, cy-thumbR))
		ts := tip.MinSize()
		tip.Resize(ts)
		tip.Move(fyne.NewPos(cx-ts.Width/2, cy-thumbR-ts.Height))
	}
	place(r.lowThumb, r.lowTip, lowPos)
	place(r.highThumb, r.highTip, highPos)

	below := cy + thumbR
	ms := r.minLabel.MinSize()
	r.minLabel.Resize(ms)
	r.minLabel.Move(fyne.NewPos(0, below))
	xs := r.maxLabel.MinSize()
	r.maxLabel.Resize(xs)
	r.maxLabel.Move(fyne.NewPos(sz.Width-xs.Width, below))
}

func (r *rangeSliderRenderer) layoutVertical(sz fyne.Size, fillFrom, fillTo, lowPos, highPos float32) {
	// track centered horizontally, value grows from the bottom up
	trackW := float32(4)
	x := (sz.Width - trackW) / 2
	r.track.Move(fyne.NewPos(x, 0))
	r.track.Resize(fyne.NewSize(trackW, sz.Height))

	r.fill.Move(fyne.NewPos(x, sz.Height*(1-fillTo)))
	r.fill.Resize(fyne.NewSize(trackW, sz.Height*(fillTo-fillFrom)))

	thumbR := theme.IconInlineSize() / 4
	cx := sz.Width / 2
	place := func(thumb *canvas.Circle, tip *canvas.Text, pos float32) {
		cy := sz.Height * (1 - pos)
		if cy < thumbR {
			cy = thumbR
		}
		if cy > sz.Height-thumbR {
			cy = sz.Height - thumbR
		}
		thumb.Resize(fyne.NewSize(thumbR*2, thumbR*2))
		thumb.Move(fyne.NewPos(cx-thumbR, cy-thumbR))
		ts := tip.MinSize()
		tip.Resize(ts)
		tip.Move(fyne.NewPos(cx-thumbR-ts.Width, cy-ts.Height/2))
	}
	place(r.lowThumb, r.lowTip, lowPos)
	place(r.highThumb, r.highTip, highPos)

	right := cx + thumbR
	xs := r.maxLabel.MinSize()
	r.maxLabel.Resize(xs)
	r.maxLabel.Move(fyne.NewPos(right, 0))
	ms := r.minLabel.MinSize()
	r.minLabel.Resize(ms)
	r.minLabel.Move(fyne.NewPos(right, sz.Height-ms.Height))
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

func (r *rangeSliderRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *rangeSliderRenderer) Refresh() {
	r.Layout(r.s.Size())
	for _, o := range r.objs {
		canvas.Refresh(o)
	}
}

func (r *rangeSliderRenderer) Destroy() {}

func (r *rangeSliderRenderer) Objects() []fyne.CanvasObject { return r.objs }
