package core

// analyze implements First-UIP conflict analysis (spec.md §4.2): walk the
// trail backward from the conflicting clause, resolving away every literal
// assigned at the current decision level except the last one reached (the
// UIP), and recording every lower-level antecedent into the learnt clause.
//
// Grounded on internal/sat/solver.go's analyze/explain, adapted to read
// clauses through the arena (db.Get) instead of *Clause, and extended with
// LBD computation, one-level self-subsumption minimization (grounded on
// crillab-gophersat/solver/learn.go's minimizeLearned) and reason-side
// activity rewarding.
func (s *Solver) analyze(conflict ClauseRef) (learnt []Literal, backtrackLevel int, lbd int) {
	nImplicationPoints := 0

	s.tmpLearnts = append(s.tmpLearnts[:0], LitNull) // slot 0 reserved for the UIP
	s.seen.Clear()

	nextIdx := len(s.trail) - 1
	l := LitNull
	ref := conflict

	for {
		for _, q := range s.reasonLiterals(ref, l != LitNull) {
			v := q.Var()
			if s.seen.Contains(v) {
				continue
			}
			s.seen.Add(v)
			if s.opt.ReasonSide {
				s.bumpVarActivity(v)
			}
			if s.varLevel[v] == int32(s.decisionLevel()) {
				nImplicationPoints++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := int(s.varLevel[v]); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		// Select the next seen literal on the trail to resolve against.
		for {
			l = s.trail[nextIdx]
			nextIdx--
			v := l.Var()
			ref = s.reason[v]
			if s.seen.Contains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()
	if !s.opt.ReasonSide {
		s.bumpVarActivity(l.Var())
	}

	learnt = s.minimize(s.tmpLearnts)
	lbd = s.computeLBD(learnt)
	return learnt, backtrackLevel, lbd
}

// reasonLiterals returns the antecedent literals for a propagation, as the
// negation of a clause's literals (the reason they forced the implied
// literal false in the opposite direction). When skipFirst is true, the
// clause's own implied literal (always stored at lits[0], per
// Solver.enqueue/record) is excluded; pass false only for the conflicting
// clause itself, every literal of which is false.
func (s *Solver) reasonLiterals(ref ClauseRef, skipFirst bool) []Literal {
	c := s.db.Get(ref)
	start := 0
	if skipFirst {
		start = 1
	}
	s.tmpReason = s.tmpReason[:0]
	for i := start; i < len(c.lits); i++ {
		s.tmpReason = append(s.tmpReason, c.lits[i].Opposite())
	}
	if c.IsLearnt() {
		s.bumpClauseActivity(ref)
	}
	return s.tmpReason
}

// minimize drops learnt-clause literals whose reason clause is already
// entirely explained by other literals in the learnt clause or literals
// fixed at the root level. This is a shallow (one antecedent deep) check,
// not the fixpoint/recursive minimization MiniSat performs, matching the
// non-recursive style of crillab-gophersat's minimizeLearned.
func (s *Solver) minimize(lits []Literal) []Literal {
	out := lits[:1]
	for _, l := range lits[1:] {
		if !s.litRedundant(l) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Solver) litRedundant(l Literal) bool {
	ref := s.reason[l.Var()]
	if ref == RefNone {
		return false
	}
	c := s.db.Get(ref)
	for i := 1; i < len(c.lits); i++ {
		v := c.lits[i].Var()
		if s.varLevel[v] == 0 || s.seen.Contains(v) {
			continue
		}
		return false
	}
	return true
}

// computeLBD counts the number of distinct decision levels represented in
// lits (spec.md §3/§4.4), the clause-quality signal driving both reduction
// and restarts. Levels are deduplicated via lbdLevels, a generation-stamped
// set indexed by decision level rather than by variable.
func (s *Solver) computeLBD(lits []Literal) int {
	s.lbdLevels.Clear()
	n := 0
	for _, l := range lits {
		lvl := s.varLevel[l.Var()]
		if lvl == 0 {
			continue // root-level literals never contribute to LBD
		}
		if !s.lbdLevels.Contains(lvl) {
			s.lbdLevels.Add(lvl)
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}
