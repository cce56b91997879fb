package cli

import (
	"strings"

	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pinboardHuhTheme returns a custom huh theme using the Gruvbox palette.
func pinboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// noteFormValues collects the fields of the "new note" wizard.
type noteFormValues struct {
	Content    string
	Color      string
	Importance string
	TagIDs     []string
}

func (v noteFormValues) note() *domain.Note {
	return &domain.Note{
		Content:    strings.TrimSpace(v.Content),
		Color:      domain.Color(v.Color),
		Importance: domain.Importance(v.Importance),
		TagIDs:     domain.NormalizeTagIDs(v.TagIDs),
	}
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Palette))
	for _, c := range domain.Palette {
		opts = append(opts, huh.NewOption(formatter.ColorSwatch(c), string(c)))
	}
	return opts
}

func importanceOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Importances))
	for _, i := range domain.Importances {
		opts = append(opts, huh.NewOption(i.Badge(), string(i)))
	}
	return opts
}

// newNoteForm builds the "new note" wizard. The tag step is skipped when
// the catalog is empty.
func newNoteForm(v *noteFormValues, catalog []domain.Tag) *huh.Form {
	if v.Color == "" {
		v.Color = string(domain.ColorYellow)
	}
	if v.Importance == "" {
		v.Importance = string(domain.ImportanceMedium)
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewText().
				Title("Content").
				Placeholder("What do you want to remember?").
				CharLimit(20000).
				Value(&v.Content),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()...).
				Value(&v.Color),
			huh.NewSelect[string]().
				Title("Importance").
				Options(importanceOptions()...).
				Value(&v.Importance),
		),
	}
	if len(catalog) > 0 {
		opts := make([]huh.Option[string], 0, len(catalog))
		for _, t := range catalog {
			opts = append(opts, huh.NewOption(t.Name, t.ID))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(opts...).
				Value(&v.TagIDs),
		))
	}
	return huh.NewForm(groups...).WithTheme(pinboardHuhTheme())
}

func newTagForm(name, color *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tag name").
				Value(name).
				Validate(func(s string) error {
					return (&domain.Tag{Name: s}).Validate()
				}),
			huh.NewInput().
				Title("Color (optional)").
				Placeholder("#83a598").
				Value(color),
		),
	).WithTheme(pinboardHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(ok),
		),
	).WithTheme(pinboardHuhTheme()).WithShowHelp(false)
}
