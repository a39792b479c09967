package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m SourceModel, keys ...tea.KeyMsg) SourceModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		if m, ok = next.(SourceModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestSourceModelLoad(t *testing.T) {
	m := press(t, NewSourceModel("graph.txt", 15), runes("y"))
	if m.Step != stepDetail || m.Input.Value() != "graph.txt" {
		t.Fatalf("after y: step=%v value=%q", m.Step, m.Input.Value())
	}
	m = press(t, m, enter)
	if m.Choice == nil || !m.Choice.Load || m.Choice.Path != "graph.txt" {
		t.Errorf("choice = %+v", m.Choice)
	}
}

func TestSourceModelGenerate(t *testing.T) {
	m := press(t, NewSourceModel("graph.txt", 15),
		tea.KeyMsg{Type: tea.KeyDown}, enter)
	if m.Step != stepDetail || m.Input.Value() != "15" {
		t.Fatalf("after down+enter: step=%v value=%q", m.Step, m.Input.Value())
	}

	m.Input.SetValue("40")
	m = press(t, m, enter)
	if m.Choice == nil || m.Choice.Load || m.Choice.Vertices != 40 || m.Choice.Path != "graph.txt" {
		t.Errorf("choice = %+v", m.Choice)
	}
}

func TestSourceModelRejectsBadCount(t *testing.T) {
	m := press(t, NewSourceModel("graph.txt", 15), runes("n"))
	m.Input.SetValue("zero")
	m = press(t, m, enter)
	if m.Choice != nil {
		t.Fatalf("accepted %+v", m.Choice)
	}
	if m.Err == "" || !strings.Contains(m.View(), m.Err) {
		t.Errorf("error not shown: err=%q view=%q", m.Err, m.View())
	}
}

func TestSourceModelAbort(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}, runes("q")} {
		m := press(t, NewSourceModel("graph.txt", 15), k)
		if !m.Aborted || m.Choice != nil {
			t.Errorf("%v: aborted=%v choice=%+v", k, m.Aborted, m.Choice)
		}
		if m.View() != "" {
			t.Errorf("%v: view should be empty after abort", k)
		}
	}
}

func TestSourceModelViewListsOptions(t *testing.T) {
	view := NewSourceModel("my.txt", 7).View()
	for _, want := range []string{"my.txt", "7 vertices", "Graph Source"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
