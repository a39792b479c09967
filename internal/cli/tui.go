package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// errPromptAborted is returned when the user quits the prompt.
var errPromptAborted = errors.New("prompt aborted")

// =============================================================================
// SourceModel - Load an existing graph or generate a new one
// =============================================================================

// sourceStep is the screen the prompt is on.
type sourceStep int

const (
	stepChoose sourceStep = iota // pick load or generate
	stepDetail                   // enter the path or vertex count
)

// SourceChoice is the answer of the load-or-generate prompt.
type SourceChoice struct {
	Load     bool
	Path     string // graph file to load, or where to save a generated one
	Vertices int    // generated graph size
}

// SourceModel is the bubbletea model asking whether to load a saved graph
// or generate a new one.
type SourceModel struct {
	Cursor  int // 0 = load, 1 = generate
	Step    sourceStep
	Input   textinput.Model
	Choice  *SourceChoice
	Err     string
	Aborted bool

	defaultPath     string
	defaultVertices int
}

// NewSourceModel creates the prompt. path is offered as the file to load
// (or to save to), vertices as the size of a generated graph.
func NewSourceModel(path string, vertices int) SourceModel {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60
	return SourceModel{
		Input:           ti,
		defaultPath:     path,
		defaultVertices: vertices,
	}
}

func (m SourceModel) Init() tea.Cmd {
	return nil
}

func (m SourceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.Step == stepDetail {
			var cmd tea.Cmd
			m.Input, cmd = m.Input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc {
		m.Aborted = true
		return m, tea.Quit
	}

	if m.Step == stepChoose {
		return m.updateChoose(key)
	}
	return m.updateDetail(key)
}

func (m SourceModel) updateChoose(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.Aborted = true
		return m, tea.Quit
	case "up", "k":
		m.Cursor = 0
	case "down", "j":
		m.Cursor = 1
	case "y", "s":
		m.Cursor = 0
		return m.enterDetail()
	case "n", "g":
		m.Cursor = 1
		return m.enterDetail()
	case "enter":
		return m.enterDetail()
	}
	return m, nil
}

func (m SourceModel) enterDetail() (tea.Model, tea.Cmd) {
	m.Step = stepDetail
	if m.Cursor == 0 {
		m.Input.Prompt = "Graph file: "
		m.Input.SetValue(m.defaultPath)
	} else {
		m.Input.Prompt = "Vertices: "
		m.Input.SetValue(strconv.Itoa(m.defaultVertices))
	}
	m.Input.CursorEnd()
	return m, m.Input.Focus()
}

func (m SourceModel) updateDetail(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(key)
		m.Err = ""
		return m, cmd
	}

	value := strings.TrimSpace(m.Input.Value())
	if m.Cursor == 0 {
		if value == "" {
			m.Err = "enter a file path"
			return m, nil
		}
		m.Choice = &SourceChoice{Load: true, Path: value}
		return m, tea.Quit
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		m.Err = "enter a positive number of vertices"
		return m, nil
	}
	m.Choice = &SourceChoice{Path: m.defaultPath, Vertices: n}
	return m, tea.Quit
}

func (m SourceModel) View() string {
	if m.Choice != nil || m.Aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Graph Source"))
	b.WriteString("\n")

	if m.Step == stepChoose {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  y load  n generate  q quit"))
		b.WriteString("\n\n")
		options := []string{
			fmt.Sprintf("Load an existing graph (%s)", m.defaultPath),
			fmt.Sprintf("Generate a new graph (%d vertices)", m.defaultVertices),
		}
		for i, opt := range options {
			if i == m.Cursor {
				b.WriteString(listSelectedStyle.Render("▸ " + opt))
			} else {
				b.WriteString(listNormalStyle.Render("  " + opt))
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(listDimStyle.Render("⏎ confirm  esc quit"))
	b.WriteString("\n\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	if m.Err != "" {
		b.WriteString(StyleWarning.Render(m.Err))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Runner
// =============================================================================

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptSource runs the load-or-generate prompt on out.
func promptSource(out io.Writer, path string, vertices int) (SourceChoice, error) {
	if !isInteractive() {
		return SourceChoice{}, errors.New("--interactive needs a terminal on stdin")
	}
	p := tea.NewProgram(NewSourceModel(path, vertices), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return SourceChoice{}, err
	}
	m, ok := final.(SourceModel)
	if !ok {
		return SourceChoice{}, fmt.Errorf("unexpected model type from bubbletea: %T", final)
	}
	if m.Aborted || m.Choice == nil {
		return SourceChoice{}, errPromptAborted
	}
	return *m.Choice, nil
}
