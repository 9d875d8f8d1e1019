// Package sat is the public facade over internal/core: the CDCL engine
// generalized from yass's MiniSat-style solver into the fuller Glucose-style
// design (two-watched-literal propagation, First-UIP learning with LBD,
// EMA-driven restarts, rephasing, bounded variable elimination and
// subsumption).
//
// Grounded on yass's own sat/ facade package, which re-exports internal/sat
// types (Literal, LBool, Options, Solver) behind a stable public surface so
// that internal/sat can be refactored without breaking callers; this
// package plays the same role over internal/core.
package sat

import (
	"github.com/yasat-dev/yasat/internal/config"
	"github.com/yasat-dev/yasat/internal/core"
)

// Re-exported types so callers never need to import internal/core directly.
type (
	Literal = core.Literal
	LBool   = core.LBool
	Status  = core.Status
	Options = config.Options
)

const (
	False   = core.False
	Unknown = core.Unknown
	True    = core.True
)

const (
	StatusUnknown = core.StatusUnknown
	StatusSAT     = core.StatusSAT
	StatusUNSAT   = core.StatusUNSAT
	StatusAborted = core.StatusAborted
)

// PositiveLiteral and NegativeLiteral build literals from a 0-indexed
// variable number, matching the convention parsers use when loading a
// DIMACS instance (1-indexed literals shifted down by one).
func PositiveLiteral(v int) Literal { return core.PosLiteral(int32(v)) }
func NegativeLiteral(v int) Literal { return core.NegLiteral(int32(v)) }

// DefaultOptions is the configuration used when no explicit Options is
// supplied.
var DefaultOptions = config.Default()

// ProofSink receives DRAT records as the solver produces them.
type ProofSink = core.ProofSink

// Solver is a CDCL SAT solver instance. The zero value is not usable; build
// one with NewSolver or NewDefaultSolver.
type Solver struct {
	core *core.Solver

	// Models accumulates every satisfying assignment found so far, updated
	// after each call to Solve that returns True. Mirrors yass's exported
	// Models field so callers can block a model and re-solve in a loop to
	// enumerate every solution.
	Models [][]bool
}

// NewSolver creates an empty solver configured by opt.
func NewSolver(opt Options) *Solver {
	return &Solver{core: core.NewSolver(opt)}
}

// NewDefaultSolver creates an empty solver using DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// SetProofSink installs a DRAT sink; pass nil to disable certification.
func (s *Solver) SetProofSink(sink ProofSink) { s.core.SetProofSink(sink) }

// Interrupt requests a cooperative stop at the next safe point.
func (s *Solver) Interrupt() { s.core.Interrupt() }

// AddVariable allocates a new variable and returns its 0-indexed number.
func (s *Solver) AddVariable() int { return int(s.core.AddVariable()) }

// Freeze marks variable v as ineligible for elimination.
func (s *Solver) Freeze(v int) { s.core.Freeze(int32(v)) }

// AddClause adds a clause at the root decision level.
func (s *Solver) AddClause(lits []Literal) error { return s.core.AddClause(lits) }

func (s *Solver) NumVariables() int   { return s.core.NumVariables() }
func (s *Solver) NumAssigns() int     { return s.core.NumAssigns() }
func (s *Solver) NumConstraints() int { return s.core.NumConstraints() }
func (s *Solver) NumLearnts() int     { return s.core.NumLearnts() }

// VarValue returns the current value of variable v (0-indexed).
func (s *Solver) VarValue(v int) LBool { return s.core.VarValue(int32(v)) }

// Solve runs CDCL search to completion, interruption, or timeout. Every
// call to Solve that returns StatusSAT appends the model found to Models.
func (s *Solver) Solve() Status {
	status := s.core.Solve()
	if status == core.StatusSAT {
		s.Models = s.core.Models()
	}
	return status
}

// Statistics mirrors internal/core.Statistics.
type Statistics = core.Statistics

// Stats returns a snapshot of the solver's search counters.
func (s *Solver) Stats() Statistics { return s.core.Stats }
