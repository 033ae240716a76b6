/*
Package rnglr is a toolbox for LR-family grammars: offline LR(1)
table construction and a Right-Nulled Generalized LR (RNGLR) runtime
that drives those tables and produces a Shared Packed Parse Forest for
ambiguous input.

Package structure is as follows:

■ grammar: symbol table, productions, priorities/associativity, and
the FIRST/FOLLOW fixed-point engine.

■ lr: canonical LR(1) item/closure computation, the table builder
(incl. the right-nulled transform and conflict resolution), the
ParserDefinition artifact, and a deterministic single-stack runtime
for unambiguous grammars. No Layout sub-grammar mechanism is
implemented.

■ lr/gss, lr/sppf: the Graph-Structured Stack and Shared Packed Parse
Forest data structures used by the GLR runtime.

■ lr/glr: the RNGLR parsing engine itself.

■ lr/lexer: the lexer contract (expected-token-driven recognizer
dispatch).

■ lr/builder: Semantic, a reference implementation of the Builder
contract (the lr.Builder interface), backed by a typed value stack.

■ errors: the shared error taxonomy (GrammarError, ParseError, and the
Invariant panic helper) used across grammar, table construction and
both runtimes.

■ parser: the top-level Parser facade tying a ParserDefinition, a
Lexer and a Builder together into the three runtime entry points
(Parse, ParseWithContext, ParseFile). It lives in its own package
rather than here because it depends on lr/grammar/glr, all of which
import this package for Token and Span; folding it in here would
create an import cycle.

The base package contains data types used throughout the other
packages: Token, TokType and Span.

BSD License

Copyright (c) 2024, ParseKit Contributors

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
package rnglr

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
