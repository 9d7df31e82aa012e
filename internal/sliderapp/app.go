// Package sliderapp wires the slider model, the RangeSlider widget and the
// configuration layer together into the demo desktop window.
package sliderapp

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/edward-ap/rangeslider/internal/config"
	"github.com/edward-ap/rangeslider/internal/logging"
	"github.com/edward-ap/rangeslider/internal/preset"
	"github.com/edward-ap/rangeslider/internal/slider"
	"github.com/edward-ap/rangeslider/internal/ui"
)

// Options tune NewApp.
type Options struct {
	// ConfigPath overrides the per-user config file. JSON or YAML.
	ConfigPath string
	// Logger receives app and model logs; a console logger is used when nil.
	Logger *zerolog.Logger
}

// App owns the fyne application, main window, slider model and controls.
type App struct {
	fa         fyne.App
	w          fyne.Window
	config     *config.Config
	configPath string
	log        zerolog.Logger

	model   *slider.Model
	slider  *ui.RangeSlider
	catalog preset.Catalog

	// value readout bound to the model
	valueText binding.String

	// controls
	rangeCheck    *widget.Check
	verticalCheck *widget.Check
	tipsCheck     *widget.Check
	minEntry      *widget.Entry
	maxEntry      *widget.Entry
	stepEntry     *widget.Entry
	presetSelect  *widget.Select
	presetName    *widget.Entry
	deleteButton  *widget.Button

	// holds the slider so orientation changes can swap its surroundings
	sliderBox      *fyne.Container
	placedVertical bool

	// set while controls are synced from the model so their callbacks do not
	// write back into it
	silentUpdating bool
}

// NewApp loads configuration and builds a ready-to-run App.
func NewApp(opts Options) *App {
	log := logging.New(nil)
	if opts.Logger != nil {
		log = *opts.Logger
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		log.Error().Err(err).Str("path", opts.ConfigPath).Msg("config load error")
		cfg = config.NewDefault()
	}

	fa := app.NewWithID(config.AppID)
	fa.Settings().SetTheme(theme.DarkTheme())
	ui.UseCompactTheme(0.75)
	w := fa.NewWindow("RangeSlider")
	w.SetMaster()
	w.Resize(fyne.NewSize(float32(cfg.WindowW), float32(cfg.WindowH)))

	a := newApp(fa, w, cfg, opts.ConfigPath, log)
	w.SetCloseIntercept(func() {
		a.saveOnClose()
		w.Close()
		fa.Quit()
	})
	return a
}

// newApp builds the model and widgets around an existing fyne app and window.
func newApp(fa fyne.App, w fyne.Window, cfg *config.Config, configPath string, log zerolog.Logger) *App {
	a := &App{
		fa:         fa,
		w:          w,
		config:     cfg,
		configPath: configPath,
		log:        logging.Component(log, "app"),
		valueText:  binding.NewString(),
	}
	a.model = slider.New(cfg.Slider, slider.WithLogger(logging.Component(log, "slider")))
	a.slider = ui.NewRangeSlider(a.model)
	a.catalog = preset.Catalog{Presets: cfg.Presets()}
	if p, ok := preset.Find(a.catalog.Presets, cfg.LastPreset); ok {
		a.catalog.Current = p
	}

	a.model.OnChange(a.onModelChange)
	a.buildUI()
	a.syncControls()
	w.Canvas().SetOnTypedKey(a.handleShortcutKey)
	return a
}

// Run shows the window and enters the fyne event loop.
func (a *App) Run() {
	a.w.ShowAndRun()
}

// Model exposes the slider model driving the window.
func (a *App) Model() *slider.Model { return a.model }

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// buildUI lays out the slider above the control column.
func (a *App) buildUI() {
	value := widget.NewLabelWithData(a.valueText)
	value.Alignment = fyne.TextAlignCenter
	value.TextStyle = fyne.TextStyle{Bold: true}

	a.sliderBox = container.NewStack()
	a.placeSlider()

	content := container.NewBorder(
		container.NewVBox(value, widget.NewSeparator()),
		a.buildControls(),
		nil, nil,
		a.sliderBox,
	)
	a.w.SetContent(container.NewPadded(content))
}

// placeSlider wraps the slider so a vertical track is centred and a
// horizontal one stretches across the window.
func (a *App) placeSlider() {
	a.placedVertical = a.model.Orientation() == slider.Vertical
	var obj fyne.CanvasObject = container.NewVBox(a.slider)
	if a.placedVertical {
		obj = container.NewCenter(a.slider)
	}
	a.sliderBox.Objects = []fyne.CanvasObject{container.NewPadded(obj)}
	a.sliderBox.Refresh()
}

func (a *App) onModelChange() {
	st := a.model.State()
	_ = a.valueText.Set(describeValues(st))
	a.log.Trace().Floats64("values", st.Values[:]).Bool("range", st.IsRange).Msg("model changed")
	ui.CallOnMain(a.syncControls)
}

// syncControls reflects model state in the controls without feeding it back.
func (a *App) syncControls() {
	st := a.model.State()
	_ = a.valueText.Set(describeValues(st))
	if a.rangeCheck == nil {
		return
	}
	a.silentUpdating = true
	defer func() { a.silentUpdating = false }()

	a.rangeCheck.SetChecked(st.IsRange)
	a.verticalCheck.SetChecked(st.Orientation == slider.Vertical)
	a.tipsCheck.SetChecked(st.IsTips)
	setEntry(a.minEntry, ui.FormatValue(st.Min, st.Step))
	setEntry(a.maxEntry, ui.FormatValue(st.Max, st.Step))
	setEntry(a.stepEntry, ui.FormatValue(st.Step, st.Step))
	if a.sliderBox != nil && (st.Orientation == slider.Vertical) != a.placedVertical {
		a.placeSlider()
	}
}

func setEntry(e *widget.Entry, text string) {
	if e != nil && e.Text != text && !e.Disabled() {
		e.SetText(text)
	}
}

// describeValues renders the headline readout: "42" or "20 – 80".
func describeValues(st slider.State) string {
	low := ui.FormatValue(st.Values[0], st.Step)
	if !st.IsRange {
		return low
	}
	return low + " – " + ui.FormatValue(st.Values[1], st.Step)
}

// handleShortcutKey maps arrow keys onto one-step moves of the pointers and
// letters onto the flag toggles.
func (a *App) handleShortcutKey(ke *fyne.KeyEvent) {
	if ke == nil {
		return
	}
	step := a.model.Step()
	high := slider.Low
	if a.model.Range() {
		high = slider.High
	}
	switch ke.Name {
	case fyne.KeyLeft:
		a.model.SetValue(a.model.Value(slider.Low)-step, slider.Low)
	case fyne.KeyRight:
		a.model.SetValue(a.model.Value(slider.Low)+step, slider.Low)
	case fyne.KeyDown:
		a.model.SetValue(a.model.Value(high)-step, high)
	case fyne.KeyUp:
		a.model.SetValue(a.model.Value(high)+step, high)
	case fyne.KeyR:
		a.model.SetRange(!a.model.Range())
	case fyne.KeyT:
		a.model.SetTooltipVisibility(!a.model.TooltipVisibility())
	case fyne.KeyV:
		o := slider.Vertical
		if a.model.Orientation() == slider.Vertical {
			o = slider.Horizontal
		}
		a.model.SetOrientation(o)
	}
}

// saveOnClose captures window size and slider state and persists them.
func (a *App) saveOnClose() {
	sz := a.w.Canvas().Size()
	if sz.Width > 0 {
		a.config.WindowW = int(sz.Width)
	}
	if sz.Height > 0 {
		a.config.WindowH = int(sz.Height)
	}
	a.config.Slider = a.model.State()
	if a.catalog.Current.Name != "" {
		a.config.LastPreset = a.catalog.Current.Name
	}
	var err error
	if strings.TrimSpace(a.configPath) != "" {
		err = a.config.SaveFile(a.configPath)
	} else {
		err = a.config.Save()
	}
	if err != nil {
		a.log.Error().Err(err).Msg("config save error")
	}
	a.slider.Detach()
}
