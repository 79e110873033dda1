package equation

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which case of a Solution holds.
type Kind string

const (
	// KindNoRoots means the equation has no real roots.
	KindNoRoots Kind = "no_roots"
	// KindOneRoot means the equation has exactly one real root.
	KindOneRoot Kind = "one_root"
	// KindTwoRoots means the equation has two distinct real roots.
	KindTwoRoots Kind = "two_roots"
	// KindInfiniteRoots means every real number satisfies the equation.
	KindInfiniteRoots Kind = "infinite_roots"
)

// Valid reports whether k is one of the four solution kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNoRoots, KindOneRoot, KindTwoRoots, KindInfiniteRoots:
		return true
	}
	return false
}

// Solution is the outcome of solving an Equation. Root values are only
// present for KindOneRoot and KindTwoRoots.
type Solution struct {
	kind  Kind
	roots [2]float64
}

// NoRoots returns a solution with no real roots.
func NoRoots() Solution {
	return Solution{kind: KindNoRoots}
}

// OneRoot returns a solution with the single root x.
func OneRoot(x float64) Solution {
	return Solution{kind: KindOneRoot, roots: [2]float64{x}}
}

// TwoRoots returns a solution with roots x1 and x2. By convention x1 comes
// from the +sqrt(D) branch of the quadratic formula.
func TwoRoots(x1, x2 float64) Solution {
	return Solution{kind: KindTwoRoots, roots: [2]float64{x1, x2}}
}

// InfiniteRoots returns a solution where every real number is a root.
func InfiniteRoots() Solution {
	return Solution{kind: KindInfiniteRoots}
}

// Kind returns which case holds.
func (s Solution) Kind() Kind {
	if s.kind == "" {
		return KindNoRoots
	}
	return s.kind
}

// Roots returns a fresh slice of the root values; nil when there are none
// to list.
func (s Solution) Roots() []float64 {
	switch s.kind {
	case KindOneRoot:
		return []float64{s.roots[0]}
	case KindTwoRoots:
		return []float64{s.roots[0], s.roots[1]}
	default:
		return nil
	}
}

// Root returns the single root of a KindOneRoot solution.
func (s Solution) Root() (float64, bool) {
	if s.kind != KindOneRoot {
		return 0, false
	}
	return s.roots[0], true
}

// Pair returns both roots of a KindTwoRoots solution.
func (s Solution) Pair() (x1, x2 float64, ok bool) {
	if s.kind != KindTwoRoots {
		return 0, 0, false
	}
	return s.roots[0], s.roots[1], true
}

// Count returns the number of real roots, or -1 when every real number is a root.
func (s Solution) Count() int {
	switch s.kind {
	case KindOneRoot:
		return 1
	case KindTwoRoots:
		return 2
	case KindInfiniteRoots:
		return -1
	default:
		return 0
	}
}

// String renders the solution for humans.
func (s Solution) String() string {
	switch s.kind {
	case KindOneRoot:
		return fmt.Sprintf("x = %g", s.roots[0])
	case KindTwoRoots:
		return fmt.Sprintf("x1 = %g, x2 = %g", s.roots[0], s.roots[1])
	case KindInfiniteRoots:
		return "any real number"
	default:
		return "no real roots"
	}
}

type solutionJSON struct {
	Kind  Kind      `json:"kind"`
	Roots []float64 `json:"roots,omitempty"`
}

// MarshalJSON encodes the solution as {"kind": ..., "roots": [...]}.
func (s Solution) MarshalJSON() ([]byte, error) {
	return json.Marshal(solutionJSON{Kind: s.Kind(), Roots: s.Roots()})
}

// UnmarshalJSON decodes a solution and checks the root count matches its kind.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw solutionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if !raw.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, raw.Kind)
	}
	want := 0
	switch raw.Kind {
	case KindOneRoot:
		want = 1
	case KindTwoRoots:
		want = 2
	}
	if len(raw.Roots) != want {
		return fmt.Errorf("solution kind %s needs %d roots, got %d", raw.Kind, want, len(raw.Roots))
	}

	*s = Solution{kind: raw.Kind}
	copy(s.roots[:], raw.Roots)
	return nil
}
