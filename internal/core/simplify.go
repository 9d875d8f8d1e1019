package core

import "github.com/rhartert/yagh"

// simplifyRoot drops clauses already satisfied by the root-level assignment
// and shrinks the rest by discarding literals falsified at the root, for
// both original and learnt clauses. Returns false if the root assignment is
// itself contradictory.
//
// Grounded on internal/sat/solver.go's Simplify/simplifyPtr; the watched
// literals (positions 0 and 1) are never touched here, since the two-watch
// invariant already guarantees neither is false once propagation has
// reached a fixpoint at level 0.
func (s *Solver) simplifyRoot() bool {
	if !s.ok {
		return false
	}
	s.constraints = s.simplifyList(s.constraints)
	s.learnts = s.simplifyList(s.learnts)
	return s.ok
}

func (s *Solver) simplifyList(refs []ClauseRef) []ClauseRef {
	out := refs[:0]
	for _, ref := range refs {
		c := s.db.Get(ref)
		if c.isDeleted() {
			continue
		}
		if s.litSatisfiedAtRoot(c) {
			s.deleteClause(ref)
			continue
		}
		s.shrinkFalsifiedTail(c)
		out = append(out, ref)
	}
	return out
}

func (s *Solver) litSatisfiedAtRoot(c *Clause) bool {
	for _, l := range c.lits {
		if s.LitValue(l) == True {
			return true
		}
	}
	return false
}

// shrinkFalsifiedTail removes literals at index >= 2 that are false at the
// root level. Positions 0 and 1 are left untouched (they are watched).
func (s *Solver) shrinkFalsifiedTail(c *Clause) {
	j := 2
	for i := 2; i < len(c.lits); i++ {
		if s.LitValue(c.lits[i]) == False {
			continue
		}
		c.lits[j] = c.lits[i]
		j++
	}
	c.lits = c.lits[:j]
}

// eliminator implements spec.md §4.6 inprocessing: backward subsumption
// with self-subsuming strengthening, and bounded variable elimination (BVE)
// with model extension. It runs only at decision level 0.
//
// Grounded on original_source/src/eliminator.rs for the elimination-heap
// shape and elim_stack bookkeeping, crillab-gophersat/solver/preprocess.go's
// commented-out Subsumes/SelfSubsumes/Generate sketch for the subsumption
// and resolution tests, and other_examples/go-air-gini__occs.go for the
// per-literal occurrence-list structure the subsumption queue scans.
// Reuses the same yagh.IntMap heap type already wired for the Brancher,
// keyed by raw (not negated) pos_occ*neg_occ so the heap's minimum is the
// best elimination candidate.
type eliminator struct {
	s *Solver

	occ [][]ClauseRef // occurrence lists, indexed by Literal

	heap *yagh.IntMap[int] // var -> pos_occ * neg_occ, ascending

	clauseQueue []ClauseRef // pending backward-subsumption work

	stack []elimRecord // model-extension history, in elimination order

	eliminatedCount int
}

// elimRecord is one variable's elimination record: the smaller of its
// positive/negative clause sets (snapshotted, since the live clauses are
// removed from the database) plus the literal polarity that set represents.
type elimRecord struct {
	v       int32
	lit     Literal
	clauses [][]Literal
}

func newEliminator(s *Solver) *eliminator {
	return &eliminator{s: s, heap: yagh.New[int](0)}
}

func (e *eliminator) addVar() {
	e.occ = append(e.occ, nil, nil)
	v := int32(len(e.occ)/2 - 1)
	e.heap.GrowBy(1)
	e.heap.Put(int(v), 0)
}

// onClauseAdded registers ref's literals in the occurrence lists, updates
// the elimination priority of every variable it touches, and queues it for
// backward subsumption.
func (e *eliminator) onClauseAdded(ref ClauseRef) {
	c := e.s.db.Get(ref)
	for _, l := range c.lits {
		e.occ[l] = append(e.occ[l], ref)
		e.updatePriority(l.Var())
	}
	e.enqueueClause(ref)
}

// updatePriority re-derives v's heap priority from the live occurrence
// lists (pos_occ x neg_occ, per spec.md §4.6), rather than tracking separate
// counters that would otherwise need to be kept in sync with every
// subsumption/strengthening removal. Mirrors the Rust original's
// .retain()-then-.len() pattern: there is exactly one source of truth for
// occurrence counts.
func (e *eliminator) updatePriority(v int32) {
	if e.s.frozen[v] || e.s.eliminated[v] {
		return
	}
	e.heap.Put(int(v), len(e.occ[PosLiteral(v)])*len(e.occ[NegLiteral(v)]))
}

func (e *eliminator) enqueueClause(ref ClauseRef) {
	c := e.s.db.Get(ref)
	if c.isTouched() {
		return
	}
	c.setTouched()
	e.clauseQueue = append(e.clauseQueue, ref)
}

// shouldRun reports whether enough conflicts have elapsed since the last
// inprocessing round (elim_trigger, spec.md §6).
func (e *eliminator) shouldRun(conflictsSinceSimplify int) bool {
	return conflictsSinceSimplify >= e.s.opt.ElimTrigger
}

func (e *eliminator) numEliminated() int { return e.eliminatedCount }

// run performs one inprocessing round: subsumption to a fixpoint, then one
// bounded-variable-elimination sweep over every eligible variable, then a
// final subsumption pass over any resolvents BVE introduced.
func (e *eliminator) run() {
	e.subsumptionPass()
	e.bvePass()
	e.subsumptionPass()
}

func (e *eliminator) subsumptionPass() {
	for len(e.clauseQueue) > 0 {
		ref := e.clauseQueue[0]
		e.clauseQueue = e.clauseQueue[1:]
		c := e.s.db.Get(ref)
		if c.isDeleted() {
			continue
		}
		c.clearTouched()
		e.backwardSubsume(ref)
	}
}

// backwardSubsume tests ref against every other clause sharing ref's
// least-frequent literal: exact subsumption deletes the other clause,
// subsumption-by-one-literal strengthens it and re-enqueues it.
func (e *eliminator) backwardSubsume(ref ClauseRef) {
	c := e.s.db.Get(ref)
	lit := e.smallestOccLiteral(c)
	candidates := append([]ClauseRef(nil), e.occ[lit]...)
	for _, ref2 := range candidates {
		if ref2 == ref {
			continue
		}
		d := e.s.db.Get(ref2)
		if d.isDeleted() {
			continue
		}
		ok, extra := subsumes(c, d)
		if !ok {
			continue
		}
		if extra == LitNull {
			e.removeClause(ref2)
			continue
		}
		e.strengthen(ref2, extra.Opposite())
	}
}

func (e *eliminator) smallestOccLiteral(c *Clause) Literal {
	best := c.lits[0]
	bestLen := len(e.occ[best])
	for _, l := range c.lits[1:] {
		if n := len(e.occ[l]); n < bestLen {
			best, bestLen = l, n
		}
	}
	return best
}

// subsumes reports whether c subsumes d: either exactly (every literal of c
// is in d, extra == LitNull) or up to one complementary literal (self-
// subsuming resolution candidate, extra is c's literal whose negation
// appears in d).
func subsumes(c, d *Clause) (ok bool, extra Literal) {
	if c.Len() > d.Len() {
		return false, LitNull
	}
	if c.abstraction&^d.abstraction != 0 {
		return false, LitNull
	}
	extra = LitNull
	for _, l := range c.lits {
		found := false
		for _, m := range d.lits {
			if l == m {
				found = true
				break
			}
			if l == m.Opposite() {
				if extra != LitNull {
					return false, LitNull
				}
				extra = l
				found = true
				break
			}
		}
		if !found {
			return false, LitNull
		}
	}
	return true, extra
}

// strengthen removes l from ref's literals, re-deriving its watches (l may
// have been one of the two watched literals) and re-queuing it for further
// subsumption.
func (e *eliminator) strengthen(ref ClauseRef, l Literal) {
	c := e.s.db.Get(ref)
	e.s.watches.Unwatch(c.lits[0].Opposite(), ref)
	e.s.watches.Unwatch(c.lits[1].Opposite(), ref)
	e.removeOcc(l, ref)

	newLits := c.lits[:0]
	for _, x := range c.lits {
		if x != l {
			newLits = append(newLits, x)
		}
	}
	c.lits = newLits
	c.abstraction = computeAbstraction(c.lits)

	switch len(c.lits) {
	case 0:
		e.s.ok = false
	case 1:
		e.s.enqueue(c.lits[0], RefNone)
	default:
		c.prevPos = 2
		e.s.watches.Watch(c.lits[0].Opposite(), ref, c.lits[1])
		e.s.watches.Watch(c.lits[1].Opposite(), ref, c.lits[0])
		e.enqueueClause(ref)
	}
}

// removeClause unwatches, drops from the occurrence lists and marks dead.
func (e *eliminator) removeClause(ref ClauseRef) {
	c := e.s.db.Get(ref)
	lits := append([]Literal(nil), c.lits...)
	for _, l := range lits {
		e.removeOcc(l, ref)
	}
	e.s.deleteClause(ref)
}

// removeOcc drops ref from l's occurrence list and refreshes l's variable's
// elimination priority to match, so the heap never drifts from the true
// occurrence counts.
func (e *eliminator) removeOcc(l Literal, ref ClauseRef) {
	list := e.occ[l]
	for i, r := range list {
		if r == ref {
			list[i] = list[len(list)-1]
			e.occ[l] = list[:len(list)-1]
			e.updatePriority(l.Var())
			return
		}
	}
}

// remap rewrites every ClauseRef the eliminator holds after a GC pass.
func (e *eliminator) remap(table []ClauseRef) {
	for lit := range e.occ {
		e.occ[lit] = remapRefs(e.occ[lit], table)
	}
	e.clauseQueue = remapRefs(e.clauseQueue, table)
}
