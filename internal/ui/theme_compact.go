package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactTheme shrinks the inline icon size, which RangeSlider uses for its
// thumbs, and the caption text used for tips and bound labels.
type compactTheme struct {
	fyne.Theme
	thumbScale float32
}

func (t compactTheme) Size(n fyne.ThemeSizeName) float32 {
	base := t.Theme.Size(n)
	switch n {
	case theme.SizeNameInlineIcon:
		return base * t.thumbScale
	case theme.SizeNameCaptionText:
		return base * 0.9
	}
	return base
}

// UseCompactTheme wraps the current app theme so thumbs are drawn at
// thumbScale of their usual size. Non-positive scales are ignored.
func UseCompactTheme(thumbScale float32) {
	app := fyne.CurrentApp()
	if app == nil || thumbScale <= 0 {
		return
	}
	app.Settings().SetTheme(compactTheme{Theme: app.Settings().Theme(), thumbScale: thumbScale})
}
