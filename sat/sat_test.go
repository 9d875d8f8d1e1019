package sat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yasat-dev/yasat/sat"
)

// This test suite checks the solver end to end through the public facade,
// using small hand-written instances instead of a testdata/ fixture tree
// (none was available to carry forward): each case states the clause set as
// signed literals and the expected set of models (or no models, for an
// unsatisfiable instance).

// toString returns a binary string representation of model, e.g.
// [true, false, false] becomes "100".
func toString(model []bool) string {
	s := make([]byte, 0, len(model))
	for _, b := range model {
		if b {
			s = append(s, '1')
		} else {
			s = append(s, '0')
		}
	}
	return string(s)
}

func toSet(models [][]bool) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range models {
		set[toString(m)] = struct{}{}
	}
	return set
}

// clause builds a clause from signed, 1-indexed literals (DIMACS convention).
func clause(signed ...int) []sat.Literal {
	lits := make([]sat.Literal, len(signed))
	for i, l := range signed {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return lits
}

// solveAll returns every model of s, blocking each one found so search
// continues to the next.
func solveAll(t *testing.T, s *sat.Solver) [][]bool {
	t.Helper()
	for s.Solve() == sat.StatusSAT {
		model := s.Models[len(s.Models)-1]
		block := make([]sat.Literal, len(model))
		for i, b := range model {
			if b {
				block[i] = sat.NegativeLiteral(i)
			} else {
				block[i] = sat.PositiveLiteral(i)
			}
		}
		if err := s.AddClause(block); err != nil {
			t.Fatalf("AddClause: %s", err)
		}
	}
	return s.Models
}

type instance struct {
	name       string
	nVars      int
	clauses    [][]int
	wantModels [][]bool
}

func buildSolver(t *testing.T, in instance) *sat.Solver {
	t.Helper()
	s := sat.NewDefaultSolver()
	for i := 0; i < in.nVars; i++ {
		s.AddVariable()
	}
	for _, c := range in.clauses {
		if err := s.AddClause(clause(c...)); err != nil {
			t.Fatalf("AddClause: %s", err)
		}
	}
	return s
}

func TestSolveAll(t *testing.T) {
	cases := []instance{
		{
			name:  "unit propagation chain",
			nVars: 3,
			// x1, x1 -> x2 (!x1 v x2), x2 -> x3 (!x2 v x3)
			clauses: [][]int{
				{1},
				{-1, 2},
				{-2, 3},
			},
			wantModels: [][]bool{{true, true, true}},
		},
		{
			name:  "two disjoint solutions",
			nVars: 2,
			// (x1 v x2) ^ (!x1 v !x2) : exactly one of x1, x2 true.
			clauses: [][]int{
				{1, 2},
				{-1, -2},
			},
			wantModels: [][]bool{
				{true, false},
				{false, true},
			},
		},
		{
			name:  "conflicting unit clauses are unsatisfiable",
			nVars: 2,
			clauses: [][]int{
				{1},
				{-1},
			},
			wantModels: nil,
		},
		{
			name:  "all free variables",
			nVars: 2,
			clauses: [][]int{
				{1, 2},
			},
			wantModels: [][]bool{
				{true, false},
				{true, true},
				{false, true},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := buildSolver(t, tc)
			got := solveAll(t, s)
			if len(got) != len(tc.wantModels) {
				t.Errorf("got %d models, want %d", len(got), len(tc.wantModels))
			}
			if !cmp.Equal(toSet(got), toSet(tc.wantModels)) {
				t.Errorf("model mismatch: got %v, want %v", got, tc.wantModels)
			}
		})
	}
}

func TestUnsatDetectedAtRootLevel(t *testing.T) {
	s := sat.NewDefaultSolver()
	s.AddVariable()
	if err := s.AddClause(clause(1)); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := s.AddClause(clause(-1)); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if status := s.Solve(); status != sat.StatusUNSAT {
		t.Errorf("got %s, want UNSATISFIABLE", status)
	}
}

func TestFreezeKeepsVariableInFinalModel(t *testing.T) {
	s := sat.NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()
	s.Freeze(0)
	if err := s.AddClause(clause(1, 2)); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := s.AddClause(clause(-1, 2)); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	status := s.Solve()
	if status != sat.StatusSAT {
		t.Fatalf("got %s, want SATISFIABLE", status)
	}
	model := s.Models[len(s.Models)-1]
	if !model[1] {
		t.Errorf("x2 must be true to satisfy both clauses regardless of x1's value")
	}
}
