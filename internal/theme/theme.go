package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	DisabledItem          *lipgloss.Style
	CheckedMark           *lipgloss.Style
	GroupHeader           *lipgloss.Style
	FieldTitle            *lipgloss.Style
	ActiveFieldTitle      *lipgloss.Style
	Value                 *lipgloss.Style
	Placeholder           *lipgloss.Style
	Tag                   *lipgloss.Style
	TagRemove             *lipgloss.Style
	Clear                 *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	Spinner               *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	DisabledItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
	),
	CheckedMark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	GroupHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Underline(true),
	),
	FieldTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	ActiveFieldTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Tag: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")),
	),
	TagRemove: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("24")).Bold(true),
	),
	Clear: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Spinner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
