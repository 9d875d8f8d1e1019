package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const unsatCNF = `c minimalist unsat instance
p cnf 3 8
1 2 3 0
1 2 -3 0
1 -2 3 0
-1 2 3 0
-1 -2 3 0
-1 2 -3 0
1 -2 -3 0
-1 -2 -3 0
`

func TestParse(t *testing.T) {
	want := &Instance{
		Variables: 3,
		Clauses: [][]int32{
			{1, 2, 3},
			{1, 2, -3},
			{1, -2, 3},
			{-1, 2, 3},
			{-1, -2, 3},
			{-1, 2, -3},
			{1, -2, -3},
			{-1, -2, -3},
		},
		Comments: []string{"c minimalist unsat instance"},
	}

	got, err := Parse(strings.NewReader(unsatCNF))
	if err != nil {
		t.Fatalf("Parse(): unexpected error: %s", err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Instance{})); diff != "" {
		t.Errorf("Parse(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_multilineClause(t *testing.T) {
	const cnf = "p cnf 3 1\n1 2\n3 0\n"

	got, err := Parse(strings.NewReader(cnf))
	if err != nil {
		t.Fatalf("Parse(): unexpected error: %s", err)
	}
	want := [][]int32{{1, 2, 3}}
	if diff := cmp.Diff(want, got.Clauses); diff != "" {
		t.Errorf("Parse(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_emptyClauseIsUNSATMarker(t *testing.T) {
	const cnf = "p cnf 1 1\n0\n"

	got, err := Parse(strings.NewReader(cnf))
	if err != nil {
		t.Fatalf("Parse(): unexpected error: %s", err)
	}
	if len(got.Clauses) != 1 || len(got.Clauses[0]) != 0 {
		t.Errorf("Parse(): want one empty clause, got %+v", got.Clauses)
	}
}

func TestParse_missingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2 0\n"))
	if err == nil {
		t.Errorf("Parse(): want error for missing header, got none")
	}
}

func TestParse_literalOutOfRange(t *testing.T) {
	_, err := Parse(strings.NewReader("p cnf 2 1\n1 5 0\n"))
	if err == nil {
		t.Errorf("Parse(): want error for out-of-range literal, got none")
	}
}

func TestParse_unterminatedClause(t *testing.T) {
	_, err := Parse(strings.NewReader("p cnf 2 1\n1 2\n"))
	if err == nil {
		t.Errorf("Parse(): want error for clause missing terminating 0, got none")
	}
}
