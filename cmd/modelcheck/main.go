// Command modelcheck is a standalone certificate verifier: it never links
// against the solver, only the DIMACS parser and the proof record format,
// so a bug in the search engine cannot also hide in the checker that is
// supposed to catch it.
//
// Grounded on other_examples/adenizgelir0-satfarm__verify_sat.go's
// VerifySatAssignment (open the CNF, scan each clause, check the signed
// assignment satisfies it) for the SAT-certificate path; the UNSAT path
// (replaying a DRAT proof by reverse unit propagation) has no teacher
// analogue and is a from-scratch RUP checker, documented in DESIGN.md.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yasat-dev/yasat/internal/dimacs"
	"github.com/yasat-dev/yasat/internal/proof"
)

var (
	flagCNF        = flag.String("cnf", "", "path to the DIMACS CNF instance")
	flagAssignment = flag.String("assignment", "", "path to a signed-literal assignment file (SAT certificate)")
	flagProof      = flag.String("proof", "", "path to a DRAT proof file (UNSAT certificate)")
)

func main() {
	flag.Parse()
	if *flagCNF == "" {
		log.Fatal("missing -cnf")
	}

	instance, err := dimacs.ParseFile(*flagCNF)
	if err != nil {
		log.Fatalf("parsing instance: %s", err)
	}

	switch {
	case *flagAssignment != "":
		assignment, err := readAssignment(*flagAssignment)
		if err != nil {
			log.Fatalf("reading assignment: %s", err)
		}
		if err := verifySAT(instance.Clauses, assignment); err != nil {
			fmt.Println("INVALID")
			log.Fatal(err)
		}
		fmt.Println("VALID SAT certificate")
	case *flagProof != "":
		f, err := os.Open(*flagProof)
		if err != nil {
			log.Fatalf("opening proof: %s", err)
		}
		defer f.Close()
		records, err := proof.ReadAll(f)
		if err != nil {
			log.Fatalf("reading proof: %s", err)
		}
		if err := verifyUNSAT(instance.Clauses, records); err != nil {
			fmt.Println("INVALID")
			log.Fatal(err)
		}
		fmt.Println("VALID UNSAT certificate")
	default:
		log.Fatal("must supply either -assignment or -proof")
	}
}

func readAssignment(filename string) ([]int32, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lits []int32
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "v") {
			line = strings.TrimPrefix(line, "v")
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("invalid literal %q: %w", tok, err)
			}
			if v == 0 {
				continue
			}
			lits = append(lits, int32(v))
		}
	}
	return lits, sc.Err()
}

// verifySAT checks that every clause of the original formula is satisfied
// by assignment.
func verifySAT(clauses [][]int32, assignment []int32) error {
	assign := make(map[int32]bool, len(assignment))
	for _, lit := range assignment {
		if lit > 0 {
			assign[lit] = true
		} else {
			assign[-lit] = false
		}
	}

	for i, clause := range clauses {
		satisfied := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			val, ok := assign[v]
			if !ok {
				continue // unassigned: treated as not contributing
			}
			if (lit > 0) == val {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("clause %d is unsatisfied by the assignment", i)
		}
	}
	return nil
}

// verifyUNSAT replays a DRAT proof against the original clause set using
// reverse unit propagation (RUP): every addition must be derivable by unit
// propagation from its negation, and the final addition must be the empty
// clause. This accepts every RUP proof (which covers every clause a CDCL
// solver learns by construction) but not every general RAT proof; see
// DESIGN.md.
func verifyUNSAT(original [][]int32, records []proof.Record) error {
	live := map[int]struct{}{}
	clauses := make([][]int32, len(original))
	copy(clauses, original)
	for i := range clauses {
		live[i] = struct{}{}
	}

	for _, rec := range records {
		if rec.Delete {
			removeClause(clauses, live, rec.Lits)
			continue
		}
		if !isRUP(clauses, live, rec.Lits) {
			return fmt.Errorf("proof step %v is not a valid RUP addition", rec.Lits)
		}
		idx := len(clauses)
		clauses = append(clauses, rec.Lits)
		live[idx] = struct{}{}
		if len(rec.Lits) == 0 {
			return nil // empty clause derived: contradiction established
		}
	}
	return fmt.Errorf("proof did not derive the empty clause")
}

func removeClause(clauses [][]int32, live map[int]struct{}, lits []int32) {
	for i := range clauses {
		if _, ok := live[i]; !ok {
			continue
		}
		if sameClause(clauses[i], lits) {
			delete(live, i)
			return
		}
	}
}

func sameClause(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[int32]bool{}
	for _, l := range a {
		seen[l] = true
	}
	for _, l := range b {
		if !seen[l] {
			return false
		}
	}
	return true
}

// isRUP reports whether lits follows from clauses by reverse unit
// propagation: assuming the negation of every literal in lits, unit
// propagation over the live clauses must derive a conflict.
func isRUP(clauses [][]int32, live map[int]struct{}, lits []int32) bool {
	assign := map[int32]int8{} // 1 = true, -1 = false, 0/absent = unknown
	for _, l := range lits {
		v, val := litVar(l)
		assign[v] = opposite(val)
	}

	for {
		progressed := false
		for i := range clauses {
			if _, ok := live[i]; !ok {
				continue
			}
			status, unit := clauseStatus(clauses[i], assign)
			switch status {
			case clauseFalse:
				return true // conflict: lits follows by RUP
			case clauseUnit:
				v, val := litVar(unit)
				assign[v] = val
				progressed = true
			}
		}
		if !progressed {
			return false
		}
	}
}

type clauseState int

const (
	clauseSatisfied clauseState = iota
	clauseUnit
	clauseFalse
	clauseUndetermined
)

func clauseStatus(clause []int32, assign map[int32]int8) (clauseState, int32) {
	var unassignedCount int
	var lastUnassigned int32
	for _, l := range clause {
		v, want := litVar(l)
		got, ok := assign[v]
		if !ok {
			unassignedCount++
			lastUnassigned = l
			continue
		}
		if got == want {
			return clauseSatisfied, 0
		}
	}
	switch unassignedCount {
	case 0:
		return clauseFalse, 0
	case 1:
		return clauseUnit, lastUnassigned
	default:
		return clauseUndetermined, 0
	}
}

func litVar(l int32) (v int32, val int8) {
	if l < 0 {
		return -l, -1
	}
	return l, 1
}

func opposite(val int8) int8 { return -val }
