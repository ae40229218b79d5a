// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/nodediff/internal/svutil"
)

// SelectVersions lets the user pick two versions interactively. The result is
// in selection order, or empty when the picker was abandoned.
func SelectVersions(items []*svutil.Version) []*svutil.Version {
	p := tea.NewProgram(model{items: items})
	m, err := p.Run()
	if err != nil {
		return nil
	}
	return m.(model).selected
}

type model struct {
	items    []*svutil.Version
	cursor   int
	selected []*svutil.Version
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		if ok && (key.String() == "q" || key.String() == "esc") {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "space":
		current := m.items[m.cursor]
		if i := slices.IndexFunc(m.selected, func(v *svutil.Version) bool { return v.ID == current.ID }); i >= 0 {
			m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
		} else if len(m.selected) < 2 {
			m.selected = append(slices.Clone(m.selected), current)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("Select two versions:\n\n")
	for i, v := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.ContainsFunc(m.selected, func(s *svutil.Version) bool { return s.ID == v.ID }) {
			mark = "x"
		}

		fmt.Fprintf(&b, "%s [%s] %4d %-36s %-16s %s\n",
			cursor, mark, v.Serial, v.ID, humanize.Time(v.CreatedAt), humanize.Bytes(uint64(max(v.Size, 0))))
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}
