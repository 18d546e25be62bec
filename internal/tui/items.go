package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/platform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle = lipgloss.NewStyle().MarginBottom(1)
)

// toplevelItem is a list item for a draggable window.
type toplevelItem struct {
	info ipc.ToplevelInfo
}

func (i toplevelItem) Title() string {
	if i.info.Title == "" {
		return platform.ToplevelHandle{ID: i.info.ID}.String()
	}
	return i.info.Title
}

func (i toplevelItem) Description() string {
	if i.info.AppID == "" {
		return fmt.Sprintf("%#x", i.info.ID)
	}
	return fmt.Sprintf("%s  %#x", i.info.AppID, i.info.ID)
}

func (i toplevelItem) FilterValue() string { return i.info.Title + " " + i.info.AppID }

// targetItem is a list item for a sidebar drop target.
type targetItem struct {
	info ipc.TargetInfo
}

func (i targetItem) workspace() string {
	return platform.WorkspaceHandle{ID: i.info.WorkspaceID, Name: i.info.WorkspaceName}.String()
}

func (i targetItem) output() string {
	return platform.Output{ID: i.info.OutputID, Name: i.info.OutputName}.String()
}

func (i targetItem) Title() string { return i.workspace() }

func (i targetItem) Description() string {
	return fmt.Sprintf("on %s  key %d", i.output(), i.info.Key)
}

func (i targetItem) FilterValue() string { return i.workspace() }

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func toplevelItems(data *ipc.ToplevelsData) []list.Item {
	if data == nil {
		return nil
	}
	items := make([]list.Item, 0, len(data.Toplevels))
	for _, t := range data.Toplevels {
		items = append(items, toplevelItem{info: t})
	}
	return items
}

func targetItems(data *ipc.TargetsData) []list.Item {
	if data == nil {
		return nil
	}
	items := make([]list.Item, 0, len(data.Targets))
	for _, t := range data.Targets {
		items = append(items, targetItem{info: t})
	}
	return items
}
