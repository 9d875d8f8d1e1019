package core

// propagate implements spec.md §4.1: drain propQ, processing each newly
// assigned literal's watch list until either the queue empties (RefNone) or
// some clause becomes false under the current assignment (its ref is
// returned). Does not change the decision level.
//
// Grounded on internal/sat/solver.go's Propagate/Clause.Propagate, adapted
// to dereference clauses through the arena (db.Get) instead of holding
// *Clause directly, and to use the watch-list's cached blocker literal
// (spec.md §3) to skip dereferencing a clause whose blocker is already
// true.
func (s *Solver) propagate() ClauseRef {
	for s.propQ.Len() > 0 {
		l := s.propQ.Pop()
		s.Stats.Propagations++

		// Watch lists are keyed by the literal that, once assigned true,
		// means the clause's watched literal (its Opposite) just became
		// false — i.e. registered under lits[i].Opposite() and looked up
		// directly by l, not l.Opposite(). See newClause's Watch calls.
		falseLit := l.Opposite()
		ws := s.watches.List(l)

		s.tmpWatchers = append(s.tmpWatchers[:0], ws...)
		s.watches.SetList(l, ws[:0])

		for i := 0; i < len(s.tmpWatchers); i++ {
			w := s.tmpWatchers[i]

			if s.LitValue(w.blocker) == True {
				s.watches.Watch(l, w.ref, w.blocker)
				continue
			}

			conflict, newBlocker := s.propagateOne(w.ref, falseLit)
			if newBlocker != LitNull {
				// Clause kept watching falseLit (no literal swap): re-attach
				// with the (possibly updated) blocker, conflicting or not.
				s.watches.Watch(l, w.ref, newBlocker)
			}
			if !conflict {
				// Either re-attached above, or the watch moved to a
				// different literal inside propagateOne.
				continue
			}

			// Conflict: restore remaining watchers and report.
			rest := s.tmpWatchers[i+1:]
			s.watches.SetList(l, append(s.watches.List(l), rest...))
			s.propQ.Clear()
			return w.ref
		}
	}
	return RefNone
}

// propagateOne processes clause ref against the newly-false literal
// falseLit. Returns:
//   - (false, newBlocker != LitNull): clause still watches falseLit, caller
//     should re-attach the watcher with newBlocker.
//   - (false, LitNull): the watch moved to a different literal already (no
//     action needed from the caller).
//   - (true, newBlocker != LitNull): the clause is conflicting; it still
//     watches falseLit and the caller must restore the watch before
//     reporting the conflict.
func (s *Solver) propagateOne(ref ClauseRef, falseLit Literal) (conflict bool, newBlocker Literal) {
	c := s.db.Get(ref)

	// Ensure lits[1] is the literal that just became false; lits[0] is
	// then the only candidate left to imply.
	if c.lits[0] == falseLit {
		c.lits[0], c.lits[1] = c.lits[1], c.lits[0]
	}

	if s.LitValue(c.lits[0]) == True {
		return false, c.lits[0] // already satisfied, blocker = lits[0]
	}

	if c.prevPos >= len(c.lits) {
		c.prevPos = 2
	}
	if lit, pos, ok := scanForWatch(s, c, c.prevPos, len(c.lits)); ok {
		c.prevPos = pos
		c.lits[1], c.lits[pos] = lit, falseLit
		s.watches.Watch(lit.Opposite(), ref, c.lits[0])
		return false, LitNull
	}
	if lit, pos, ok := scanForWatch(s, c, 2, c.prevPos); ok {
		c.prevPos = pos
		c.lits[1], c.lits[pos] = lit, falseLit
		s.watches.Watch(lit.Opposite(), ref, c.lits[0])
		return false, LitNull
	}

	// No replacement literal found: lits[0] must become true, or the
	// clause conflicts. Either way the clause keeps watching falseLit (its
	// literals did not change), so the watch is always restored here, as
	// in the teacher's Clause.Propagate which calls Watch unconditionally
	// before checking the enqueue result.
	if s.LitValue(c.lits[0]) == False {
		return true, c.lits[0]
	}
	s.enqueue(c.lits[0], ref)
	return false, c.lits[0]
}

// scanForWatch looks for the first non-false literal in c.lits[from:to],
// returning it along with its index.
func scanForWatch(s *Solver, c *Clause, from, to int) (Literal, int, bool) {
	for i := from; i < to; i++ {
		if s.LitValue(c.lits[i]) != False {
			return c.lits[i], i, true
		}
	}
	return 0, 0, false
}
