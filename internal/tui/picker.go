package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dragshell/internal/ipc"
)

// Daemon is the subset of the IPC client the picker needs.
type Daemon interface {
	ipc.Dragger
	ListToplevels() (*ipc.ToplevelsData, error)
	ListTargets() (*ipc.TargetsData, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseToplevel
	phaseTarget
	phaseConfirm
	phaseMoving
	phaseDone
)

type loadedMsg struct {
	toplevels *ipc.ToplevelsData
	targets   *ipc.TargetsData
	err       error
}

type movedMsg struct {
	drop *ipc.DropData
	err  error
}

// model picks a toplevel, then a drop target, confirms and drags.
type model struct {
	daemon Daemon
	phase  phase

	toplevels list.Model
	targets   list.Model

	form      *huh.Form
	confirmed *bool

	toplevel ipc.ToplevelInfo
	target   ipc.TargetInfo

	drop *ipc.DropData
	err  error

	width  int
	height int
}

func newModel(d Daemon) model {
	return model{
		daemon:    d,
		phase:     phaseLoading,
		toplevels: newList("Drag which window?"),
		targets:   newList("Drop on which workspace?"),
		confirmed: new(bool),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.load
}

func (m model) load() tea.Msg {
	toplevels, err := m.daemon.ListToplevels()
	if err != nil {
		return loadedMsg{err: err}
	}
	targets, err := m.daemon.ListTargets()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{toplevels: toplevels, targets: targets}
}

func (m model) move() tea.Msg {
	drop, err := ipc.DragToplevel(m.daemon, m.toplevel.ID, m.target.Key)
	return movedMsg{drop: drop, err: err}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 3
		if h < 1 {
			h = 1
		}
		m.toplevels.SetSize(msg.Width, h)
		m.targets.SetSize(msg.Width, h)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.phase = phaseDone
			return m, nil
		}
		m.toplevels.SetItems(toplevelItems(msg.toplevels))
		m.targets.SetItems(targetItems(msg.targets))
		m.phase = phaseToplevel
		return m, nil

	case movedMsg:
		m.drop = msg.drop
		m.err = msg.err
		m.phase = phaseDone
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.phase {
	case phaseToplevel:
		return m.updateToplevel(msg)
	case phaseTarget:
		return m.updateTarget(msg)
	case phaseConfirm:
		return m.updateConfirm(msg)
	case phaseDone:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateToplevel(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			item, ok := m.toplevels.SelectedItem().(toplevelItem)
			if !ok {
				return m, nil
			}
			m.toplevel = item.info
			m.phase = phaseTarget
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.toplevels, cmd = m.toplevels.Update(msg)
	return m, cmd
}

func (m model) updateTarget(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			m.phase = phaseToplevel
			return m, nil
		case "enter":
			item, ok := m.targets.SelectedItem().(targetItem)
			if !ok {
				return m, nil
			}
			m.target = item.info
			m.startConfirm(item)
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.targets, cmd = m.targets.Update(msg)
	return m, cmd
}

func (m *model) startConfirm(target targetItem) {
	*m.confirmed = true
	title := fmt.Sprintf("Move %s to %s?", toplevelItem{info: m.toplevel}.Title(), target.workspace())
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(fmt.Sprintf("drop target key %d on %s", target.info.Key, target.output())).
				Affirmative("Move").
				Negative("Back").
				Value(m.confirmed),
		),
	).WithShowHelp(false)
	m.phase = phaseConfirm
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.form = nil
		m.phase = phaseTarget
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		if !*m.confirmed {
			m.phase = phaseTarget
			return m, nil
		}
		m.phase = phaseMoving
		return m, m.move
	case huh.StateAborted:
		m.form = nil
		m.phase = phaseTarget
		return m, nil
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	switch m.phase {
	case phaseLoading:
		return dimStyle.Render("Loading windows and drop targets...")
	case phaseToplevel:
		return lipgloss.JoinVertical(lipgloss.Left, m.toplevels.View(), m.helpLine("enter: choose", "q: quit"))
	case phaseTarget:
		header := headerStyle.Render("Dragging " + okStyle.Render(toplevelItem{info: m.toplevel}.Title()))
		return lipgloss.JoinVertical(lipgloss.Left, header, m.targets.View(), m.helpLine("enter: drop", "esc: back", "q: quit"))
	case phaseConfirm:
		if m.form == nil {
			return ""
		}
		return m.form.View()
	case phaseMoving:
		return dimStyle.Render("Dropping...")
	default:
		return m.resultView() + "\n" + dimStyle.Render("press any key to exit")
	}
}

func (m model) resultView() string {
	switch {
	case m.err != nil:
		return errStyle.Render("Error: ") + m.err.Error()
	case m.drop == nil:
		return ""
	case m.drop.Outcome == "moved":
		return okStyle.Render("Moved") + fmt.Sprintf(" %s to key %d", toplevelItem{info: m.toplevel}.Title(), m.drop.Key)
	default:
		return warnStyle.Render("Rejected") + ": " + m.drop.Reason
	}
}

func (m model) helpLine(keys ...string) string {
	return dimStyle.Render(strings.Join(keys, "  "))
}
