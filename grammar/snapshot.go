package grammar

// Snapshot is a flat, serialization-friendly view of a Grammar: every
// field is a primitive or a slice of primitives, so it can round-trip
// through rezi without needing custom (de)serializers for the pointer
// graph a Grammar is built from internally.
type Snapshot struct {
	Name         string
	Terminals    []SymbolSnapshot
	NonTerminals []SymbolSnapshot
	Rules        []ProductionSnapshot
}

// SymbolSnapshot is the serializable form of a Symbol.
type SymbolSnapshot struct {
	Name     string
	Value    int32
	Tag      int8
	Priority int32
	Assoc    int8
	Finish   bool
}

// SymbolRef names a symbol by (tag, value) rather than by pointer.
type SymbolRef struct {
	Tag   int8
	Value int32
}

// ProductionSnapshot is the serializable form of a Production.
type ProductionSnapshot struct {
	Index    int32
	NTIndex  int32
	LHS      int32 // non-terminal Value
	RHS      []SymbolRef
	Priority int32
	Assoc    int8
}

// ToSnapshot flattens g into a Snapshot suitable for binary encoding.
func (g *Grammar) ToSnapshot() Snapshot {
	snap := Snapshot{Name: g.Name}
	for _, t := range g.terminals {
		snap.Terminals = append(snap.Terminals, symbolToSnapshot(t))
	}
	for _, nt := range g.nonterminals {
		snap.NonTerminals = append(snap.NonTerminals, symbolToSnapshot(nt))
	}
	for _, p := range g.rules {
		rhs := make([]SymbolRef, len(p.RHS))
		for i, sym := range p.RHS {
			rhs[i] = SymbolRef{Tag: int8(sym.Tag), Value: sym.Value}
		}
		snap.Rules = append(snap.Rules, ProductionSnapshot{
			Index:    int32(p.Index),
			NTIndex:  int32(p.NTIndex),
			LHS:      p.LHS.Value,
			RHS:      rhs,
			Priority: int32(p.Priority),
			Assoc:    int8(p.Assoc),
		})
	}
	return snap
}

func symbolToSnapshot(s *Symbol) SymbolSnapshot {
	return SymbolSnapshot{Name: s.Name, Value: s.Value, Tag: int8(s.Tag), Priority: int32(s.Priority), Assoc: int8(s.Assoc), Finish: s.Finish}
}

// FromSnapshot rebuilds a Grammar from a previously-flattened Snapshot.
// The snapshot is assumed to already describe a validated, augmented
// grammar (rule 0 is S' → S), so FromSnapshot skips re-running
// validation and priority inheritance.
func FromSnapshot(snap Snapshot) *Grammar {
	g := &Grammar{
		Name:        snap.Name,
		byName:      make(map[string]*Symbol, len(snap.Terminals)+len(snap.NonTerminals)),
		rulesForLHS: make(map[int32][]*Production),
	}
	for _, ts := range snap.Terminals {
		sym := symbolFromSnapshot(ts, TerminalTag)
		g.terminals = append(g.terminals, sym)
		g.byName[sym.Name] = sym
	}
	for _, ns := range snap.NonTerminals {
		sym := symbolFromSnapshot(ns, NonTerminalTag)
		g.nonterminals = append(g.nonterminals, sym)
		g.byName[sym.Name] = sym
	}
	g.stopSymbol = g.terminals[StopSymbolValue]

	byTag := func(ref SymbolRef) *Symbol {
		if SymbolTag(ref.Tag) == TerminalTag {
			return g.terminals[ref.Value]
		}
		return g.nonterminals[ref.Value]
	}
	for _, ps := range snap.Rules {
		rhs := make([]*Symbol, len(ps.RHS))
		for i, ref := range ps.RHS {
			rhs[i] = byTag(ref)
		}
		p := &Production{
			Index:    int(ps.Index),
			NTIndex:  int(ps.NTIndex),
			LHS:      g.nonterminals[ps.LHS],
			RHS:      rhs,
			Priority: int(ps.Priority),
			Assoc:    Associativity(ps.Assoc),
		}
		g.rules = append(g.rules, p)
		g.rulesForLHS[p.LHS.Value] = append(g.rulesForLHS[p.LHS.Value], p)
	}
	return g
}

func symbolFromSnapshot(s SymbolSnapshot, tag SymbolTag) *Symbol {
	return &Symbol{Name: s.Name, Value: s.Value, Tag: tag, Priority: int(s.Priority), Assoc: Associativity(s.Assoc), Finish: s.Finish}
}
