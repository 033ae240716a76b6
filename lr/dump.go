package lr

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/parsekit/rnglr/grammar"
)

// DumpTables renders t's ACTION/GOTO tables and any unresolved
// conflicts as a colorized terminal table, for interactively debugging
// a grammar, the terminal-output counterpart of the teacher's
// ActionTableAsHTML/GotoTableAsHTML browser export.
func DumpTables(t *Table) string {
	g := t.g
	var terms []*grammar.Symbol
	g.EachTerminal(func(term *grammar.Symbol) { terms = append(terms, term) })

	data := pterm.TableData{append([]string{"state"}, termHeader(terms)...)}
	for s := 0; s < t.StateCount(); s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, term := range terms {
			row = append(row, cellText(t, s, term))
		}
		data = append(data, row)
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	out := rendered
	if conflicts := t.Conflicts(); len(conflicts) > 0 {
		out += "\n" + pterm.Warning.Sprintf("%d conflict(s):\n", len(conflicts))
		for _, c := range conflicts {
			out += fmt.Sprintf("  state %d, %q: %v\n", c.State, c.Terminal.Name, c.Actions)
		}
	}
	return out
}

func termHeader(terms []*grammar.Symbol) []string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Name
	}
	return names
}

// cellText renders one ACTION-table cell: "sN" for shift, "acc" for
// accept, "rN" for an ordinary reduce, "rN*RN" for a right-nulled one,
// and a "/"-joined list when more than one action survives (GLR mode).
func cellText(t *Table, state int, term *grammar.Symbol) string {
	actions := t.Actions(state, term)
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		switch a {
		case ShiftAction:
			target, _ := t.Goto(state, term)
			parts[i] = fmt.Sprintf("s%d", target)
		case AcceptAction:
			parts[i] = "acc"
		default:
			parts[i] = fmt.Sprintf("r%d", a)
			if t.IsRightNulled(a) {
				parts[i] += "*RN"
			}
		}
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "/" + p
	}
	return out
}
