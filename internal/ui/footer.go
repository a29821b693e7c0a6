package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// CompactWidth is the terminal width below which the footer drops the
// binding descriptions.
const CompactWidth = 80

var (
	styleFooterKey  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	styleFooterDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	styleFooterSep  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		part := styleFooterKey.Render(help.Key)
		if !compact {
			part += styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render(" | ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	return strings.Join(parts, sep)
}
