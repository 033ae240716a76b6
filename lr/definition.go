package lr

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr/sparse"
)

// ParserDefinition is the artifact a table-construction run produces:
// the grammar it was built from, the mode it was built in, and the
// resulting ACTION/GOTO tables. It is the thing a generator tool writes
// to disk and a parser binary loads back, instead of rebuilding tables
// from grammar source on every startup.
type ParserDefinition struct {
	Grammar *grammar.Grammar
	Mode    Mode
	Table   *Table

	// LayoutState is the CFSM state a Layout sub-parse resumes the main
	// grammar's parse from, or -1 when the grammar declares no Layout
	// non-terminal. No grammar builder API currently exposes declaring
	// one (see DESIGN.md), so this is always -1 today; the field exists
	// so a future Layout mechanism has an artifact slot to populate
	// without another wire-format migration.
	LayoutState int
}

// NewParserDefinition builds a ParserDefinition for g in the given mode.
// opts is optional table-construction configuration; see TableOptions.
func NewParserDefinition(g *grammar.Grammar, mode Mode, opts ...TableOptions) (*ParserDefinition, error) {
	an, err := grammar.Analyze(g)
	if err != nil {
		return nil, err
	}
	t, err := Build(g, an, mode, opts...)
	if err != nil {
		return nil, err
	}
	return &ParserDefinition{Grammar: g, Mode: mode, Table: t, LayoutState: -1}, nil
}

// ExpectedTokenKinds forwards to the underlying Table; see
// Table.ExpectedTokenKinds.
func (d *ParserDefinition) ExpectedTokenKinds(state int) []ExpectedTokenKind {
	return d.Table.ExpectedTokenKinds(state)
}

// definitionSnapshot is the flat, rezi-friendly encoding of a
// ParserDefinition: the grammar snapshot plus the ACTION/GOTO cells as
// plain triplet lists, and the right-nulled production list.
type definitionSnapshot struct {
	Grammar     grammar.Snapshot
	Mode        int8
	Opts        TableOptions
	LayoutState int32
	ActionRows  int32
	ActionCols  int32
	Actions     []actionCell
	TransRows   int32
	TransCols   int32
	Trans       []transCell
	RNProds     []rnSnapshot
}

type actionCell struct {
	State    int32
	Terminal int32
	Codes    []int32
}

type transCell struct {
	State  int32
	Column int32
	Target int32
}

type rnSnapshot struct {
	ProdIndex int32
	Length    int32
}

// MarshalBinary encodes d using rezi, implementing encoding.BinaryMarshaler.
func (d *ParserDefinition) MarshalBinary() ([]byte, error) {
	snap := definitionSnapshot{
		Grammar:     d.Grammar.ToSnapshot(),
		Mode:        int8(d.Mode),
		Opts:        d.Table.opts,
		LayoutState: int32(d.LayoutState),
		ActionRows:  int32(d.Table.action.M()),
		ActionCols:  int32(d.Table.action.N()),
		TransRows:   int32(d.Table.trans.M()),
		TransCols:   int32(d.Table.trans.N()),
	}
	for s := 0; s < d.Table.action.M(); s++ {
		for c := 0; c < d.Table.action.N(); c++ {
			if codes := d.Table.action.Values(s, c); len(codes) > 0 {
				snap.Actions = append(snap.Actions, actionCell{State: int32(s), Terminal: int32(c), Codes: codes})
			}
		}
	}
	for s := 0; s < d.Table.trans.M(); s++ {
		for c := 0; c < d.Table.trans.N(); c++ {
			if v := d.Table.trans.Value(s, c); v != d.Table.trans.NullValue() {
				snap.Trans = append(snap.Trans, transCell{State: int32(s), Column: int32(c), Target: v})
			}
		}
	}
	for _, rn := range d.Table.rnProds {
		snap.RNProds = append(snap.RNProds, rnSnapshot{ProdIndex: int32(rn.Prod.Index), Length: int32(rn.Length)})
	}
	return rezi.EncBinary(snap), nil
}

// UnmarshalBinary decodes d from data previously produced by
// MarshalBinary, implementing encoding.BinaryUnmarshaler. The grammar
// and tables are rebuilt directly from the flattened snapshot without
// re-running grammar validation or table construction.
func (d *ParserDefinition) UnmarshalBinary(data []byte) error {
	var snap definitionSnapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return fmt.Errorf("lr: decoding parser definition: %w", err)
	}
	g := grammar.FromSnapshot(snap.Grammar)
	an, err := grammar.Analyze(g)
	if err != nil {
		return fmt.Errorf("lr: re-analyzing decoded grammar: %w", err)
	}

	cfsm := &CFSM{g: g, an: an}
	t := &Table{
		g:    g,
		an:   an,
		cfsm: cfsm,
		mode: Mode(snap.Mode),
		opts: snap.Opts,
	}

	statecnt := 0
	for _, c := range snap.Trans {
		if int(c.State)+1 > statecnt {
			statecnt = int(c.State) + 1
		}
	}
	for _, c := range snap.Actions {
		if int(c.State)+1 > statecnt {
			statecnt = int(c.State) + 1
		}
	}
	for i := 0; i < statecnt; i++ {
		cfsm.states = append(cfsm.states, &State{ID: i})
	}

	t.action = sparse.NewActionMatrix(int(snap.ActionRows), int(snap.ActionCols), sparse.DefaultNullValue)
	for _, c := range snap.Actions {
		for _, code := range c.Codes {
			t.action.Add(int(c.State), int(c.Terminal), code)
		}
	}
	t.trans = sparse.NewIntMatrix(int(snap.TransRows), int(snap.TransCols), sparse.DefaultNullValue)
	for _, c := range snap.Trans {
		t.trans.Set(int(c.State), int(c.Column), c.Target)
	}
	for _, rn := range snap.RNProds {
		t.rnProds = append(t.rnProds, RNProduction{Prod: g.Rule(int(rn.ProdIndex)), Length: int(rn.Length)})
	}

	d.Grammar = g
	d.Mode = Mode(snap.Mode)
	d.Table = t
	d.LayoutState = int(snap.LayoutState)
	return nil
}
