package grammar

import (
	"fmt"

	"github.com/parsekit/rnglr/errors"
)

// Builder incrementally constructs a Grammar. Clients call LHS(name) to
// begin a production, followed by a chain of T/N calls describing the RHS,
// terminated by End() (or Epsilon() for an ε-production).
//
//	b := grammar.NewBuilder("G")
//	b.LHS("S").N("A").T("a", 1).End()  // S → A a
//	b.LHS("A").Epsilon()               // A → ε
//	g, err := b.Build()
type Builder struct {
	name       string
	byName     map[string]*Symbol
	order      []*Symbol // declaration order, terminals and non-terminals mixed
	prods      []*pendingProd
	startName  string
	nextTokVal int32 // 1.. ; 0 is reserved for STOP
	errs       []error
}

type pendingProd struct {
	lhsName  string
	rhs      []*Symbol
	priority int
	assoc    Associativity
}

// NewBuilder creates a grammar builder. The first LHS encountered becomes
// the start symbol unless overridden with StartSymbol.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		byName:     make(map[string]*Symbol),
		nextTokVal: 1,
	}
}

// StartSymbol explicitly names the grammar's start non-terminal.
func (b *Builder) StartSymbol(name string) *Builder {
	b.startName = name
	return b
}

func (b *Builder) nonterminal(name string) *Symbol {
	if sym, ok := b.byName[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Tag: NonTerminalTag}
	b.byName[name] = sym
	b.order = append(b.order, sym)
	return sym
}

func (b *Builder) terminal(name string, tokval int32, priority int, assoc Associativity) *Symbol {
	if sym, ok := b.byName[name]; ok {
		return sym
	}
	if tokval <= 0 {
		tokval = b.nextTokVal
	}
	if tokval >= b.nextTokVal {
		b.nextTokVal = tokval + 1
	}
	sym := &Symbol{Name: name, Value: tokval, Tag: TerminalTag, Priority: priority, Assoc: assoc, Finish: true}
	b.byName[name] = sym
	b.order = append(b.order, sym)
	return sym
}

// RuleBuilder accumulates one production's RHS.
type RuleBuilder struct {
	b    *Builder
	prod *pendingProd
}

// LHS begins a new production with the given left-hand-side non-terminal.
func (b *Builder) LHS(name string) *RuleBuilder {
	b.nonterminal(name)
	p := &pendingProd{lhsName: name}
	return &RuleBuilder{b: b, prod: p}
}

// N appends a non-terminal reference to the RHS being built.
func (r *RuleBuilder) N(name string) *RuleBuilder {
	r.prod.rhs = append(r.prod.rhs, r.b.nonterminal(name))
	return r
}

// T appends a terminal reference to the RHS being built. tokval is only a
// provisional value (0 auto-assigns the next free one): Build renumbers
// every terminal densely in declaration order, with STOP at 0, so the
// final Value does not depend on it.
func (r *RuleBuilder) T(name string, tokval int32) *RuleBuilder {
	r.prod.rhs = append(r.prod.rhs, r.b.terminal(name, tokval, 0, AssocNone))
	return r
}

// Priority sets the production's priority, used to resolve conflicts: higher
// wins. Defaults to 0.
func (r *RuleBuilder) Priority(p int) *RuleBuilder {
	r.prod.priority = p
	return r
}

// Assoc sets the production's associativity, consulted on conflicts of
// equal priority.
func (r *RuleBuilder) Assoc(a Associativity) *RuleBuilder {
	r.prod.assoc = a
	return r
}

// End finalizes the production (RHS may be empty; prefer Epsilon() for
// readability when it's intentionally empty).
func (r *RuleBuilder) End() *Builder {
	r.b.prods = append(r.b.prods, r.prod)
	return r.b
}

// Epsilon finalizes the production as an explicit ε-production.
func (r *RuleBuilder) Epsilon() *Builder {
	r.prod.rhs = nil
	r.b.prods = append(r.b.prods, r.prod)
	return r.b
}

// TerminalPriority sets a bare terminal's priority/associativity, for use
// when the terminal itself (not a production) should break a conflict tie.
func (b *Builder) TerminalPriority(name string, priority int, assoc Associativity) *Builder {
	if sym, ok := b.byName[name]; ok && sym.IsTerminal() {
		sym.Priority = priority
		sym.Assoc = assoc
	}
	return b
}

// TerminalNoFinish marks a terminal's recognizer as never reporting a
// maximal match (the grammar description's nofinish attribute), for
// terminals like a string literal with escapes whose match could always
// extend further.
func (b *Builder) TerminalNoFinish(name string) *Builder {
	if sym, ok := b.byName[name]; ok && sym.IsTerminal() {
		sym.Finish = false
	}
	return b
}

// Build validates the accumulated declarations and constructs an immutable
// Grammar, augmenting it with S' → S and the STOP terminal.
func (b *Builder) Build() (*Grammar, error) {
	if len(b.prods) == 0 {
		return nil, errors.NewGrammarError(b.name, "no productions declared")
	}
	start := b.startName
	if start == "" {
		start = b.prods[0].lhsName
	}
	startSym, ok := b.byName[start]
	if !ok || startSym.Tag != NonTerminalTag {
		return nil, errors.NewGrammarError(b.name, fmt.Sprintf("start symbol %q is not a declared non-terminal", start)).WithSymbol(start)
	}

	stop := &Symbol{Name: "#stop", Value: StopSymbolValue, Tag: TerminalTag, Finish: true}
	startPrime := &Symbol{Name: "S'", Value: 0, Tag: NonTerminalTag}

	// dense-renumber: terminals (STOP first) then non-terminals (S' first).
	var terminals []*Symbol
	var nonterms []*Symbol
	terminals = append(terminals, stop)
	nonterms = append(nonterms, startPrime)
	for _, sym := range b.order {
		if sym.IsTerminal() {
			terminals = append(terminals, sym)
		} else {
			nonterms = append(nonterms, sym)
		}
	}
	for i, t := range terminals {
		t.Value = int32(i)
	}
	for i, nt := range nonterms {
		nt.Value = int32(i)
	}

	g := &Grammar{
		Name:         b.name,
		terminals:    terminals,
		nonterminals: nonterms,
		byName:       make(map[string]*Symbol, len(terminals)+len(nonterms)),
		rulesForLHS:  make(map[int32][]*Production),
		stopSymbol:   stop,
	}
	for _, s := range terminals {
		g.byName[s.Name] = s
	}
	for _, s := range nonterms {
		g.byName[s.Name] = s
	}

	augmented := &Production{Index: 0, LHS: startPrime, RHS: []*Symbol{startSym}}
	g.rules = append(g.rules, augmented)
	g.rulesForLHS[startPrime.Value] = []*Production{augmented}

	ntidx := make(map[int32]int)
	for _, p := range b.prods {
		lhs := g.byName[p.lhsName]
		idx := ntidx[lhs.Value]
		ntidx[lhs.Value] = idx + 1
		prod := &Production{
			Index:    len(g.rules),
			NTIndex:  idx,
			LHS:      lhs,
			RHS:      p.rhs,
			Priority: p.priority,
			Assoc:    p.assoc,
		}
		if prod.Priority == 0 && len(p.rhs) > 0 {
			if last := p.rhs[len(p.rhs)-1]; last.IsTerminal() {
				prod.Priority = last.Priority
				if prod.Assoc == AssocNone {
					prod.Assoc = last.Assoc
				}
			}
		}
		g.rules = append(g.rules, prod)
		g.rulesForLHS[lhs.Value] = append(g.rulesForLHS[lhs.Value], prod)
	}

	if err := validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// validate reports undefined symbol references, unreachable
// non-terminals and unproductive non-terminals. Empty-FIRST-set errors
// are raised later by the FIRST/FOLLOW engine, once fixed-point
// computation has run (§4.1).
func validate(g *Grammar) error {
	defined := make(map[int32]bool)
	for _, p := range g.rules {
		defined[p.LHS.Value] = true
	}
	for _, p := range g.rules {
		for _, sym := range p.RHS {
			if !sym.IsTerminal() && !defined[sym.Value] {
				return errors.NewGrammarError(g.Name,
					fmt.Sprintf("production %v references undefined non-terminal %q", p, sym.Name)).
					WithSymbol(sym.Name)
			}
		}
	}
	reachable := make(map[int32]bool)
	reachable[g.StartSymbol().Value] = true
	changed := true
	for changed {
		changed = false
		for _, p := range g.rules {
			if !reachable[p.LHS.Value] {
				continue
			}
			for _, sym := range p.RHS {
				if !sym.IsTerminal() && !reachable[sym.Value] {
					reachable[sym.Value] = true
					changed = true
				}
			}
		}
	}
	for _, nt := range g.nonterminals {
		if nt.Name == "S'" {
			continue
		}
		if !reachable[nt.Value] {
			return errors.NewGrammarError(g.Name,
				fmt.Sprintf("non-terminal %q is unreachable from the start symbol", nt.Name)).
				WithSymbol(nt.Name)
		}
	}
	if err := checkProductive(g); err != nil {
		return err
	}
	return nil
}

// checkProductive rejects a non-terminal that can never derive a string
// of terminals: no production of it consists solely of terminals and
// already-productive symbols, under fixed-point closure.
func checkProductive(g *Grammar) error {
	productive := make(map[int32]bool)
	changed := true
	for changed {
		changed = false
		for _, p := range g.rules {
			if productive[p.LHS.Value] {
				continue
			}
			ok := true
			for _, sym := range p.RHS {
				if !sym.IsTerminal() && !productive[sym.Value] {
					ok = false
					break
				}
			}
			if ok {
				productive[p.LHS.Value] = true
				changed = true
			}
		}
	}
	for _, nt := range g.nonterminals {
		if nt.Name == "S'" {
			continue
		}
		if !productive[nt.Value] {
			return errors.NewGrammarError(g.Name,
				fmt.Sprintf("non-terminal %q is unproductive: no production of it reduces to terminals", nt.Name)).
				WithSymbol(nt.Name)
		}
	}
	return nil
}
