/*
Package lr implements LR(1) parser table construction and a
deterministic LR runtime.

Building a Grammar

Grammars are built with package grammar and analysed with
grammar.Analyze, which computes the FIRST and FOLLOW sets:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").T("a", 0).End()  // S  ->  A a
    b.LHS("A").T("b", 0).End()         // A  ->  b
    b.LHS("A").Epsilon()               // A  ->
    g, err := b.Build()                // adds S' -> S and the #stop terminal
    ...
    an, err := grammar.Analyze(g)

Parser Construction

BuildCFSM builds the characteristic finite state machine (CFSM) from
LR(1) items by closure and GOTO; states whose items share the same
(production, dot) cores are merged, their lookaheads unioned. Build
turns the CFSM into ACTION and GOTO tables:

    tbl, err := lr.Build(g, an, lr.LRMode)

In LRMode a cell with competing actions is resolved by priority and
associativity, or Build fails. In GLRMode every competing action is
kept and right-nulled reductions are added, for the RNGLR runtime in
package lr/glr. NewParserDefinition wraps a table into a serializable
ParserDefinition, and DumpTables renders the ACTION table for debugging.

Parsing

Runtime drives an LRMode table over a Scanner, reporting shift, reduce
and accept events to a Builder.


BSD License

Copyright (c) 2017–2020, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package lr

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
