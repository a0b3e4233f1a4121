package charm

import (
	"github.com/charmbracelet/huh"
	"github.com/speakeasy-api/textmerge/internal/charm/styles"
)

// FormTheme styles huh forms with the CLI palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.BorderForeground(styles.Focused.GetForeground())
	f.Title = f.Title.Foreground(styles.Focused.GetForeground()).Bold(true)
	f.Description = f.Description.Foreground(styles.Dimmed.GetForeground()).Italic(true)
	f.ErrorIndicator = f.ErrorIndicator.Foreground(styles.Colors.Red)
	f.ErrorMessage = f.ErrorMessage.Foreground(styles.Colors.Red)
	f.SelectSelector = f.SelectSelector.Foreground(styles.Focused.GetForeground())
	f.SelectedOption = f.SelectedOption.Foreground(styles.Focused.GetForeground())

	b := &t.Blurred
	b.Description = b.Description.Italic(true)
	b.SelectSelector = b.SelectSelector.Foreground(styles.FocusedDimmed.GetForeground())
	b.SelectedOption = b.SelectedOption.Foreground(styles.FocusedDimmed.GetForeground())

	return t
}

func NewSelectPrompt(title string, description string, options []string, output *string) *huh.Group {
	return huh.NewGroup(huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(huh.NewOptions(options...)...).
		Value(output))
}

func NewInput(title, description string, output *string) *huh.Group {
	return huh.NewGroup(huh.NewInput().
		Title(title).
		Description(description).
		Value(output))
}
