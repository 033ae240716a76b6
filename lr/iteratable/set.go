/*
Package iteratable implements a small iteratable set container, suitable
for the kind of fixed-point, worklist-driven algorithms that closure and
GOTO computation boil down to.

Unusually, all set operations are destructive: Union and friends mutate
the receiver and return it, rather than allocating a new set;
Difference mutates the receiver and returns a new set holding the
elements it removed. This matches the way closure construction is normally phrased
("add these new items to the set") and avoids a lot of incidental
allocation in a routine that is run once per CFSM state.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package iteratable

import (
	"fmt"
	"sort"
)

// EqualFunc compares two set elements for equality. Sets default to Go's
// built-in == via an interface comparison when no EqualFunc is supplied,
// which is sufficient for pointer-identity elements (Items, CFSM states)
// but not for value types that need field-wise comparison.
type EqualFunc func(a, b interface{}) bool

// Set is a destructive-semantics, insertion-ordered set of arbitrary
// values. The zero value is not usable; construct with NewSet.
type Set struct {
	items []interface{}
	equal EqualFunc

	// iteration cursor; -1 means "not iterating"
	cursor int
}

// NewSet creates a new set, optionally pre-populated with items.
func NewSet(items ...interface{}) *Set {
	return &Set{items: append([]interface{}{}, items...), cursor: -1}
}

// NewSetWithEqual creates a new set using a custom equality predicate.
func NewSetWithEqual(equal EqualFunc, items ...interface{}) *Set {
	s := NewSet(items...)
	s.equal = equal
	return s
}

func (s *Set) eq(a, b interface{}) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return a == b
}

func (s *Set) indexOf(item interface{}) int {
	for i, x := range s.items {
		if s.eq(x, item) {
			return i
		}
	}
	return -1
}

// Contains reports whether item is a member of s.
func (s *Set) Contains(item interface{}) bool {
	return s.indexOf(item) >= 0
}

// Add inserts item if not already present. Returns s for chaining.
func (s *Set) Add(item interface{}) *Set {
	if s.indexOf(item) < 0 {
		s.items = append(s.items, item)
	}
	return s
}

// Remove deletes item if present. Returns s for chaining.
func (s *Set) Remove(item interface{}) *Set {
	if i := s.indexOf(item); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s
}

// Union destructively adds every element of other not already in s.
func (s *Set) Union(other *Set) *Set {
	for _, x := range other.items {
		s.Add(x)
	}
	return s
}

// Difference destructively removes from s every element present in other,
// returning a NEW set of the elements that were removed (gorgo's
// closure loop relies on this to discover newly-added items each pass).
func (s *Set) Difference(other *Set) *Set {
	removed := NewSet()
	removed.equal = s.equal
	kept := s.items[:0:0]
	for _, x := range s.items {
		if other.Contains(x) {
			removed.items = append(removed.items, x)
		} else {
			kept = append(kept, x)
		}
	}
	s.items = kept
	return removed
}

// Copy returns a shallow copy of s, independent of further mutation.
func (s *Set) Copy() *Set {
	c := NewSet(append([]interface{}{}, s.items...)...)
	c.equal = s.equal
	return c
}

// Size returns the number of elements in s.
func (s *Set) Size() int {
	return len(s.items)
}

// Empty reports whether s has no elements.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}

// Values returns the set's elements in insertion order. The returned
// slice must not be mutated by the caller.
func (s *Set) Values() []interface{} {
	return s.items
}

// FirstMatch returns the first element for which pred holds, and true,
// or nil/false if none matches.
func (s *Set) FirstMatch(pred func(interface{}) bool) (interface{}, bool) {
	for _, x := range s.items {
		if pred(x) {
			return x, true
		}
	}
	return nil, false
}

// Equals reports whether s and other contain the same elements,
// irrespective of order.
func (s *Set) Equals(other *Set) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// Sort orders the set's elements in place using less.
func (s *Set) Sort(less func(a, b interface{}) bool) *Set {
	sort.SliceStable(s.items, func(i, j int) bool {
		return less(s.items[i], s.items[j])
	})
	return s
}

// IterateOnce resets the iteration cursor to the start of the set's
// CURRENT contents. Elements added after IterateOnce is called (e.g. by
// Union during a closure fixed-point loop) are visited too, matching the
// teacher's worklist-style "keep iterating until nothing new" usage.
func (s *Set) IterateOnce() *Set {
	s.cursor = -1
	return s
}

// Next advances the iteration cursor, returning false once every element
// (including ones appended mid-iteration) has been visited.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.items)
}

// Item returns the element at the current iteration cursor. Panics if
// called without a prior, still-valid Next().
func (s *Set) Item() interface{} {
	return s.items[s.cursor]
}

// Dump returns the set's elements rendered as strings (it does not log
// them), using fmt's default verb for each element. Intended for ad-hoc debugging, mirrors
// the teacher's CFSMState.Dump / itemSetString helpers.
func (s *Set) Dump() []string {
	out := make([]string, len(s.items))
	for i, x := range s.items {
		if st, ok := x.(fmt.Stringer); ok {
			out[i] = st.String()
		} else {
			out[i] = fmt.Sprintf("%v", x)
		}
	}
	return out
}
