package sliderapp

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/rangeslider/internal/preset"
	"github.com/edward-ap/rangeslider/internal/slider"
)

// buildControls assembles the flag toggles, the bounds editor and the preset
// row shown under the slider.
func (a *App) buildControls() fyne.CanvasObject {
	a.rangeCheck = widget.NewCheck("Range", func(b bool) {
		if !a.silentUpdating {
			a.model.SetRange(b)
		}
	})
	a.verticalCheck = widget.NewCheck("Vertical", func(b bool) {
		if a.silentUpdating {
			return
		}
		o := slider.Horizontal
		if b {
			o = slider.Vertical
		}
		a.model.SetOrientation(o)
	})
	a.tipsCheck = widget.NewCheck("Tooltips", func(b bool) {
		if !a.silentUpdating {
			a.model.SetTooltipVisibility(b)
		}
	})
	flags := container.NewHBox(a.rangeCheck, a.verticalCheck, a.tipsCheck)

	return container.NewVBox(
		widget.NewSeparator(),
		flags,
		a.buildBoundsRow(),
		a.buildPresetRow(),
	)
}

// buildBoundsRow renders min/max/step entries applied together.
func (a *App) buildBoundsRow() fyne.CanvasObject {
	a.minEntry = widget.NewEntry()
	a.minEntry.SetPlaceHolder("min")
	a.maxEntry = widget.NewEntry()
	a.maxEntry.SetPlaceHolder("max")
	a.stepEntry = widget.NewEntry()
	a.stepEntry.SetPlaceHolder("step")
	apply := widget.NewButton("Apply", func() {
		if err := a.applyBounds(a.minEntry.Text, a.maxEntry.Text, a.stepEntry.Text); err != nil {
			dialog.ShowError(err, a.w)
		}
	})
	grid := container.NewGridWithColumns(3, a.minEntry, a.maxEntry, a.stepEntry)
	return container.NewBorder(nil, nil, widget.NewLabel("Bounds"), apply, grid)
}

// applyBounds parses the bound entries and hands them to the model in one
// SetState call. The model silently keeps its old bounds or step when the new
// ones are unusable; the entries are then resynced to what it kept.
func (a *App) applyBounds(minText, maxText, stepText string) error {
	min, err := parseNumber("min", minText)
	if err != nil {
		return err
	}
	max, err := parseNumber("max", maxText)
	if err != nil {
		return err
	}
	step, err := parseNumber("step", stepText)
	if err != nil {
		return err
	}
	st := a.model.State()
	st.Min, st.Max, st.Step = min, max, step
	a.model.SetState(st)
	a.syncControls()
	return nil
}

func parseNumber(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, text)
	}
	return v, nil
}

// buildPresetRow renders the preset selector and the save/delete controls.
func (a *App) buildPresetRow() fyne.CanvasObject {
	a.presetSelect = widget.NewSelect(a.presetNames(), func(name string) {
		if a.silentUpdating {
			return
		}
		a.selectPreset(name)
	})
	a.presetSelect.PlaceHolder = "Preset"

	a.presetName = widget.NewEntry()
	a.presetName.SetPlaceHolder("preset name")

	save := widget.NewButton("Save", func() {
		if err := a.savePreset(a.presetName.Text); err != nil {
			dialog.ShowError(err, a.w)
		}
	})
	a.deleteButton = widget.NewButton("Delete", func() {
		a.deletePreset(a.presetName.Text)
	})

	if a.catalog.Current.Name != "" {
		a.silentUpdating = true
		a.presetSelect.SetSelected(a.catalog.Current.Name)
		a.presetName.SetText(a.catalog.Current.Name)
		a.silentUpdating = false
	}
	a.refreshDeleteButton()

	buttons := container.NewHBox(save, a.deleteButton)
	left := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, a.presetSelect.MinSize().Height)), a.presetSelect)
	return container.NewBorder(nil, nil, left, buttons, a.presetName)
}

func (a *App) presetNames() []string {
	names := make([]string, 0, len(a.catalog.Presets))
	for _, p := range a.catalog.Presets {
		names = append(names, p.Name)
	}
	return names
}

// selectPreset applies the named preset to the model and remembers it.
func (a *App) selectPreset(name string) {
	p, ok := preset.Find(a.catalog.Presets, name)
	if !ok {
		a.log.Warn().Str("preset", name).Msg("unknown preset")
		return
	}
	a.catalog.Current = p
	a.config.LastPreset = p.Name
	preset.Apply(a.model, p)
	if a.presetName != nil {
		a.presetName.SetText(p.Name)
	}
	a.refreshDeleteButton()
	a.log.Debug().Str("preset", p.Name).Msg("preset applied")
}

// savePreset captures the model under name as a custom preset. Bundled
// preset names are reserved.
func (a *App) savePreset(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name is empty")
	}
	if _, builtin := preset.FindPresetByName(name); builtin {
		return fmt.Errorf("preset %q is built in", name)
	}
	p := preset.Extract(name, a.model)
	a.config.UpsertPreset(p)
	a.catalog.Presets = a.config.Presets()
	a.catalog.Current = p
	a.config.LastPreset = p.Name
	a.refreshPresetSelect()
	a.log.Info().Str("preset", name).Msg("preset saved")
	return nil
}

// deletePreset drops a custom preset; bundled presets cannot be removed.
func (a *App) deletePreset(name string) {
	name = strings.TrimSpace(name)
	if !a.config.DeletePreset(name) {
		return
	}
	a.catalog.Presets = a.config.Presets()
	if strings.EqualFold(a.catalog.Current.Name, name) {
		a.catalog.Current = preset.Preset{}
		a.config.LastPreset = ""
	}
	a.refreshPresetSelect()
	a.log.Info().Str("preset", name).Msg("preset deleted")
}

func (a *App) refreshPresetSelect() {
	if a.presetSelect == nil {
		return
	}
	a.silentUpdating = true
	defer func() { a.silentUpdating = false }()
	a.presetSelect.Options = a.presetNames()
	if a.catalog.Current.Name != "" {
		a.presetSelect.SetSelected(a.catalog.Current.Name)
	} else {
		a.presetSelect.ClearSelected()
	}
	a.presetSelect.Refresh()
	a.refreshDeleteButton()
}

func (a *App) refreshDeleteButton() {
	if a.deleteButton == nil {
		return
	}
	if _, builtin := preset.FindPresetByName(a.catalog.Current.Name); builtin || a.catalog.Current.Name == "" {
		a.deleteButton.Disable()
	} else {
		a.deleteButton.Enable()
	}
}
