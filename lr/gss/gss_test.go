package gss

import "testing"

func TestFindHeadSharesState(t *testing.T) {
	g := New()
	h1 := g.NewHead(3, 0)
	h2, ok := g.FindHead(3, 0)
	if !ok || h1 != h2 {
		t.Fatalf("expected FindHead to return the shared head")
	}
}

func TestAddEdgeRejectsCycle(t *testing.T) {
	g := New()
	a := g.NewHead(0, 0)
	b := g.NewHead(1, 0)
	if _, ok := g.AddEdge(b, a, "X", nil); !ok {
		t.Fatalf("expected first edge to succeed")
	}
	if _, ok := g.AddEdge(a, b, "Y", nil); ok {
		t.Fatalf("expected cyclic edge to be rejected")
	}
}

func TestAddEdgePacksPossibilities(t *testing.T) {
	g := New()
	a := g.NewHead(0, 0)
	b := g.NewHead(1, 0)
	e1, ok := g.AddEdge(a, b, "E", "first")
	if !ok {
		t.Fatalf("expected edge to be created")
	}
	e2, ok := g.AddEdge(a, b, "E", "second")
	if !ok || e1 != e2 {
		t.Fatalf("expected the same edge to be reused for a second possibility")
	}
	if len(e1.Possibility) != 2 {
		t.Fatalf("expected 2 packed possibilities, got %d", len(e1.Possibility))
	}
}

func TestPathsOfLength(t *testing.T) {
	g := New()
	a := g.NewHead(0, 0)
	b := g.NewHead(1, 0)
	c := g.NewHead(2, 0)
	g.AddEdge(b, a, "x", nil)
	g.AddEdge(c, b, "y", nil)

	paths := PathsOfLength(c, 2)
	if len(paths) != 1 {
		t.Fatalf("expected exactly 1 path of length 2 from c, got %d", len(paths))
	}
	if paths[0][0].To != b || paths[0][1].To != a {
		t.Fatalf("unexpected path: %v", paths[0])
	}
}

func TestPathsOfLengthZero(t *testing.T) {
	g := New()
	a := g.NewHead(0, 0)
	paths := PathsOfLength(a, 0)
	if len(paths) != 1 || len(paths[0]) != 0 {
		t.Fatalf("expected a single empty path, got %v", paths)
	}
}
