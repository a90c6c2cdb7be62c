package theme

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Shared styles for every ui package. These used to live in package ui but the
// overlay and the typeahead are imported by ui, so they need their own home.

const (
	Pink      = "#E03189"
	Orange    = "#ff6b35"
	Green     = "#BCE921"
	Red       = "#e74c3c"
	LightGray = "#999999"
	Gray      = "#5c5c5c"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Orange)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Red)).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Green))

	BrandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Pink)).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Green)).
			Italic(true)

	// CurrentModelStyle highlights the model the session is using right now
	CurrentModelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(Green)).
				Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(LightGray)).
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(LightGray)).
			Faint(true)

	// BoxStyle frames an overlay, width is applied by the caller
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Gray)).
			Padding(0, 1)
)

// NewFilterInput returns the query input used by the typeahead
func NewFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "› "
	ti.PromptStyle = BrandStyle
	ti.TextStyle = InfoStyle
	ti.PlaceholderStyle = AccentStyle.Faint(true)
	return ti
}

// NewSpinner returns the spinner shown while models are loading
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	return s
}
