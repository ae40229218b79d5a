// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/nodediff/internal/svutil"
)

func pickerVersions() []*svutil.Version {
	now := time.Now()
	versions := []*svutil.Version{
		{ID: "c", CreatedAt: now.Add(-time.Hour), Size: 2048},
		{ID: "b", CreatedAt: now.Add(-48 * time.Hour), Size: 1024},
		{ID: "a", CreatedAt: now.Add(-72 * time.Hour), Size: 10},
	}
	svutil.Number(versions)
	return versions
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

func TestPickerSelectsTwo(t *testing.T) {
	m := model{items: pickerVersions()}

	m, cmd := press(t, m, " ", "down", "down", " ", "enter")
	require.NotNil(t, cmd)
	require.Len(t, m.selected, 2)
	assert.Equal(t, "c", m.selected[0].ID)
	assert.Equal(t, "a", m.selected[1].ID)
}

func TestPickerToggleAndLimit(t *testing.T) {
	m := model{items: pickerVersions()}

	m, _ = press(t, m, " ", " ")
	assert.Empty(t, m.selected)

	m, _ = press(t, m, " ", "down", " ", "down", " ")
	assert.Len(t, m.selected, 2, "a third pick is ignored")

	m, cmd := press(t, m, "down", "down", "up", "up", "up")
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.cursor)
}

func TestPickerEnterNeedsTwo(t *testing.T) {
	m := model{items: pickerVersions()}
	_, cmd := press(t, m, " ", "enter")
	assert.Nil(t, cmd)
}

func TestPickerQuit(t *testing.T) {
	m := model{items: pickerVersions()}
	m, cmd := press(t, m, " ", "q")
	assert.NotNil(t, cmd)
	assert.Nil(t, m.selected)

	_, cmd = press(t, model{}, "esc")
	assert.NotNil(t, cmd)
}

func TestPickerView(t *testing.T) {
	m := model{items: pickerVersions()}
	m, _ = press(t, m, "down", " ")

	view := m.View()
	assert.Contains(t, view, ">")
	assert.Contains(t, view, "[x]    2 b")
	assert.Contains(t, view, "2 days ago")
	assert.Contains(t, view, "1.0 kB")
	assert.Contains(t, view, "ENTER: go")
}
