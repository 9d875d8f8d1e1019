package core

import "sort"

// reduceDB implements spec.md §4.5 learnt-clause reduction: binary clauses,
// clauses protected at learning time (LBD <= 2, see Solver.record) and
// clauses currently serving as another literal's antecedent are kept
// unconditionally; the remainder is sorted by (LBD ascending, activity
// descending) and the worse half is deleted.
//
// Grounded on internal/sat/solver.go's ReduceDB (sort + keep-locked-half
// structure), extended with LBD as the primary sort key per spec.md's
// Glucose-style design.
func (s *Solver) reduceDB() {
	keep := s.learnts[:0:0]
	candidates := make([]ClauseRef, 0, len(s.learnts))

	for _, ref := range s.learnts {
		c := s.db.Get(ref)
		if c.isDeleted() {
			continue
		}
		if c.IsBinary() || c.isProtected() || s.isLocked(ref) {
			keep = append(keep, ref)
			continue
		}
		candidates = append(candidates, ref)
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := s.db.Get(candidates[i]), s.db.Get(candidates[j])
		if ci.lbd != cj.lbd {
			return ci.lbd < cj.lbd
		}
		return ci.activity > cj.activity
	})

	half := len(candidates) / 2
	keep = append(keep, candidates[:half]...)
	for _, ref := range candidates[half:] {
		s.deleteClause(ref)
	}

	s.learnts = keep
}

// isLocked reports whether ref is currently the antecedent of its implied
// literal (Solver.enqueue/record always places the implied literal at
// lits[0]); such a clause cannot be deleted without invalidating the trail.
func (s *Solver) isLocked(ref ClauseRef) bool {
	c := s.db.Get(ref)
	v := c.lits[0].Var()
	return s.VarValue(v) != Unknown && s.reason[v] == ref
}

// deleteClause unwatches ref's first two literals and marks it dead in the
// arena. The slot is only reclaimed on the next garbageCollect.
func (s *Solver) deleteClause(ref ClauseRef) {
	c := s.db.Get(ref)
	if s.proof != nil {
		s.tmpLits32 = toSigned(s.tmpLits32[:0], c.lits)
		_ = s.proof.DeleteClause(append([]int32(nil), s.tmpLits32...))
	}
	s.watches.Unwatch(c.lits[0].Opposite(), ref)
	s.watches.Unwatch(c.lits[1].Opposite(), ref)
	s.db.Delete(ref)
}
