package core

// garbageCollect compacts the clause arena once wasted space crosses the
// threshold (ClauseDB.NeedsGC), then rewrites every ClauseRef the solver
// holds outside the arena using the remap table GC returns: watch lists,
// trail antecedents, the constraint/learnt index lists, and the
// eliminator's occurrence lists and subsumption queue (its elimination
// stack holds literal copies, not references).
//
// Grounded on spec.md §9's relocatable-arena requirement and
// other_examples/togatoga-gatosat__clauseallocator.go's compaction pattern;
// internal/sat never relocates clauses (its Clause is a live pointer), so
// there is no teacher analogue for the remap step itself.
func (s *Solver) garbageCollect() {
	remap := s.db.GC()

	for lit := 0; lit < len(s.watches.lists); lit++ {
		ws := s.watches.lists[lit]
		j := 0
		for _, w := range ws {
			if nr := remap[w.ref]; nr != RefNone {
				w.ref = nr
				ws[j] = w
				j++
			}
		}
		s.watches.lists[lit] = ws[:j]
	}

	for v := range s.reason {
		if s.reason[v] != RefNone {
			s.reason[v] = remap[s.reason[v]]
		}
	}

	s.constraints = remapRefs(s.constraints, remap)
	s.learnts = remapRefs(s.learnts, remap)
	s.elim.remap(remap)
}

func remapRefs(refs []ClauseRef, remap []ClauseRef) []ClauseRef {
	out := refs[:0]
	for _, ref := range refs {
		if nr := remap[ref]; nr != RefNone {
			out = append(out, nr)
		}
	}
	return out
}
