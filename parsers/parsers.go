// Package parsers wires the external github.com/rhartert/dimacs reader into
// the sat facade, adding the bounds-checking and malformed-clause diagnostics
// that internal/dimacs/dimacs.go already performs for the solver-agnostic
// model checker (see SPEC_FULL.md §7), since dimacs.Builder itself reports
// nothing beyond what its caller chooses to validate.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"
	"github.com/yasat-dev/yasat/sat"
)

// SATSolver is the subset of sat.Solver's surface a DIMACS load needs.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename and loads its formula
// into solver. gzipped is auto-detected from a ".gz" suffix when the caller
// passes false and the filename ends in ".gz".
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	gzipped = gzipped || strings.HasSuffix(filename, ".gz")
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if b.nClauses >= 0 && b.clauseCount != b.nClauses {
		return fmt.Errorf("%s: header declared %d clauses, found %d", filename, b.nClauses, b.clauseCount)
	}
	return nil
}

// builder adapts a SATSolver to dimacs.Builder, rejecting clauses the
// external reader would otherwise hand the solver unchecked: empty clauses
// and literals outside the declared variable range.
type builder struct {
	solver SATSolver

	nVars       int
	nClauses    int
	clauseCount int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem")
	}
	b.nVars = nVars
	b.nClauses = nClauses
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	if len(tmpClause) == 0 {
		return fmt.Errorf("clause %d: empty clause", b.clauseCount+1)
	}
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l == 0 || abs(l) > b.nVars {
			return fmt.Errorf("clause %d: literal %d outside declared variable range [1, %d]", b.clauseCount+1, l, b.nVars)
		}
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	b.clauseCount++
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ReadModels returns the list of models (if any) contained in filename,
// using the one-model-per-line convention: each line is a DIMACS-style
// clause whose literals' signs give the model's polarity. Models of
// inconsistent width (the usual symptom of a hand-edited or truncated
// file) are rejected rather than silently loaded.
func ReadModels(filename string) ([][]bool, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
	width  int // literal count of the first model, for consistency checking
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error { return nil }

func (b *modelBuilder) Clause(tmpClause []int) error {
	if len(tmpClause) == 0 {
		return fmt.Errorf("model %d: empty model line", len(b.models)+1)
	}
	if len(b.models) == 0 {
		b.width = len(tmpClause)
	} else if len(tmpClause) != b.width {
		return fmt.Errorf("model %d: has %d literals, want %d (width of model 1)", len(b.models)+1, len(tmpClause), b.width)
	}
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
