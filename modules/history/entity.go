package history

import (
	"fmt"
	"time"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/events"
	"github.com/google/uuid"
)

// SolutionRecord is one solved equation as stored in the history table.
// Root1 and Root2 are NULL when the solution has fewer roots.
type SolutionRecord struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	A         float64   `gorm:"not null" json:"a"`
	B         float64   `gorm:"not null" json:"b"`
	C         float64   `gorm:"not null" json:"c"`
	Kind      string    `gorm:"size:20;not null;index" json:"kind"`
	Root1     *float64  `json:"root1,omitempty"`
	Root2     *float64  `json:"root2,omitempty"`
	Tolerance float64   `gorm:"not null" json:"tolerance"`
	Cached    bool      `gorm:"not null;default:false" json:"cached"`
	SolvedAt  time.Time `gorm:"not null;index" json:"solved_at"`
}

// TableName returns the table name for SolutionRecord model.
func (SolutionRecord) TableName() string {
	return "solutions"
}

// NewRecord builds a record with a fresh id from an EquationSolved event.
func NewRecord(event events.EquationSolvedEvent) *SolutionRecord {
	rec := &SolutionRecord{
		ID:        uuid.New().String(),
		A:         event.Equation.A,
		B:         event.Equation.B,
		C:         event.Equation.C,
		Kind:      string(event.Solution.Kind()),
		Tolerance: event.Tolerance,
		Cached:    event.Cached,
		SolvedAt:  event.SolvedAt,
	}
	if rec.SolvedAt.IsZero() {
		rec.SolvedAt = time.Now().UTC()
	}

	roots := event.Solution.Roots()
	if len(roots) > 0 {
		rec.Root1 = &roots[0]
	}
	if len(roots) > 1 {
		rec.Root2 = &roots[1]
	}
	return rec
}

// Equation returns the stored coefficients.
func (r *SolutionRecord) Equation() equation.Equation {
	return equation.New(r.A, r.B, r.C)
}

// Solution rebuilds the solution from the stored kind and roots.
func (r *SolutionRecord) Solution() (equation.Solution, error) {
	switch equation.Kind(r.Kind) {
	case equation.KindNoRoots:
		return equation.NoRoots(), nil
	case equation.KindInfiniteRoots:
		return equation.InfiniteRoots(), nil
	case equation.KindOneRoot:
		if r.Root1 == nil {
			return equation.Solution{}, fmt.Errorf("record %s: one_root without a root", r.ID)
		}
		return equation.OneRoot(*r.Root1), nil
	case equation.KindTwoRoots:
		if r.Root1 == nil || r.Root2 == nil {
			return equation.Solution{}, fmt.Errorf("record %s: two_roots without both roots", r.ID)
		}
		return equation.TwoRoots(*r.Root1, *r.Root2), nil
	default:
		return equation.Solution{}, fmt.Errorf("record %s: %w %q", r.ID, equation.ErrUnknownKind, r.Kind)
	}
}
