package sparse

import "testing"

func TestIntMatrixSetAndValue(t *testing.T) {
	m := NewIntMatrix(10, 10, DefaultNullValue)
	m.Set(2, 3, 4711)
	if v := m.Value(2, 3); v != 4711 {
		t.Fatalf("expected 4711, got %d", v)
	}
	if v := m.Value(5, 5); v != DefaultNullValue {
		t.Fatalf("expected null-value, got %d", v)
	}
	if m.ValueCount() != 1 {
		t.Fatalf("expected 1 stored value, got %d", m.ValueCount())
	}
}

func TestIntMatrixOverwrite(t *testing.T) {
	m := NewIntMatrix(3, 3, DefaultNullValue)
	m.Set(1, 1, 1)
	m.Set(1, 1, 2)
	if m.ValueCount() != 1 || m.Value(1, 1) != 2 {
		t.Fatalf("expected overwrite in place, got count=%d value=%d", m.ValueCount(), m.Value(1, 1))
	}
}

func TestIntMatrixOrderIndependentInsertion(t *testing.T) {
	m := NewIntMatrix(5, 5, DefaultNullValue)
	m.Set(3, 1, 31)
	m.Set(1, 4, 14)
	m.Set(1, 1, 11)
	if m.Value(3, 1) != 31 || m.Value(1, 4) != 14 || m.Value(1, 1) != 11 {
		t.Fatalf("out-of-order insertion corrupted stored values")
	}
}

func TestActionMatrixAccumulatesMultipleActions(t *testing.T) {
	m := NewActionMatrix(4, 4, DefaultNullValue)
	m.Add(0, 0, -1) // shift
	m.Add(0, 0, 5)  // reduce rule 5
	if !m.HasConflict(0, 0) {
		t.Fatalf("expected conflict after adding two actions")
	}
	vs := m.Values(0, 0)
	if len(vs) != 2 || vs[0] != -1 || vs[1] != 5 {
		t.Fatalf("expected [-1,5] in insertion order, got %v", vs)
	}
}

func TestActionMatrixAddIsIdempotent(t *testing.T) {
	m := NewActionMatrix(2, 2, DefaultNullValue)
	m.Add(0, 0, 7)
	m.Add(0, 0, 7)
	if len(m.Values(0, 0)) != 1 {
		t.Fatalf("expected duplicate add to be a no-op")
	}
}

func TestActionMatrixSetReplaces(t *testing.T) {
	m := NewActionMatrix(2, 2, DefaultNullValue)
	m.Add(0, 0, 1)
	m.Add(0, 0, 2)
	m.Set(0, 0, 9)
	vs := m.Values(0, 0)
	if len(vs) != 1 || vs[0] != 9 {
		t.Fatalf("expected Set to replace prior actions, got %v", vs)
	}
}

func TestActionMatrixEmptyCell(t *testing.T) {
	m := NewActionMatrix(2, 2, DefaultNullValue)
	if v := m.Value(1, 1); v != DefaultNullValue {
		t.Fatalf("expected null-value for empty cell, got %d", v)
	}
	if m.HasConflict(1, 1) {
		t.Fatalf("empty cell should not report a conflict")
	}
}
