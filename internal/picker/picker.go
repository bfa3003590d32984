// Package picker provides the interactive module selector used when a
// command is invoked without a module argument.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ErrCancelled is returned when the user quits the picker without
// choosing.
var ErrCancelled = errors.New("selection cancelled")

const (
	defaultWidth  = 48
	listHeight    = 16
	maxTitleWidth = 60
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"}).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#909090"}).
			PaddingLeft(2)
)

type moduleItem string

func (m moduleItem) Title() string       { return string(m) }
func (m moduleItem) Description() string { return "" }
func (m moduleItem) FilterValue() string { return string(m) }

type model struct {
	list   list.Model
	choice string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// While filtering, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(moduleItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return "\n" + m.list.View() + "\n" + helpStyle.Render("enter: select • /: filter • q: cancel")
}

// Choose presents an interactive list and returns the selected entry.
// Cancelling yields ErrCancelled.
func Choose(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no items available")
	}

	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = moduleItem(opt)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, defaultWidth, listHeight)
	l.Title = runewidth.Truncate(title, maxTitleWidth, "…")
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	final, err := tea.NewProgram(model{list: l}).Run()
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.choice == "" {
		return "", ErrCancelled
	}
	return m.choice, nil
}
