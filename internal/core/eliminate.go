package core

// bvePass pops candidates off the elimination heap (lowest pos_occ*neg_occ
// first) until it empties, attempting to eliminate each one. Stale entries
// (already eliminated, frozen, or assigned since being queued) are skipped;
// there is no eager heap removal, the same lazy-removal discipline Brancher
// uses.
func (e *eliminator) bvePass() {
	for {
		entry, ok := e.heap.Pop()
		if !ok {
			return
		}
		v := int32(entry.Elem)
		if e.s.eliminated[v] || e.s.frozen[v] || e.s.VarValue(v) != Unknown {
			continue
		}
		e.tryEliminate(v)
	}
}

// tryEliminate attempts bounded variable elimination on v (spec.md §4.6):
// resolve every clause containing v positively against every clause
// containing it negatively, accept if the resolvent count and size stay
// within the configured growth/size limits, then replace v's clauses with
// the accepted resolvents and record enough of v's clauses to reconstruct
// its value during model extension.
func (e *eliminator) tryEliminate(v int32) {
	pos := append([]ClauseRef(nil), e.occ[PosLiteral(v)]...)
	neg := append([]ClauseRef(nil), e.occ[NegLiteral(v)]...)
	if len(pos) == 0 && len(neg) == 0 {
		return
	}
	if len(pos) > e.s.opt.ElimVarOcc || len(neg) > e.s.opt.ElimVarOcc {
		return
	}

	var resolvents [][]Literal
	for _, refP := range pos {
		cp := e.s.db.Get(refP)
		for _, refN := range neg {
			cn := e.s.db.Get(refN)
			lits, tautology := resolve(cp, cn, v)
			if tautology {
				continue
			}
			if e.s.opt.ElimClauseLimit > 0 && len(lits) > e.s.opt.ElimClauseLimit {
				return // a single oversized resolvent rejects the whole elimination
			}
			resolvents = append(resolvents, lits)
		}
	}
	if len(resolvents) > len(pos)+len(neg)+e.s.opt.ElimGrowthLimit {
		return
	}

	e.recordExtension(v, pos, neg)

	for _, lits := range resolvents {
		ref, ok := e.s.newClause(lits, false)
		if !ok {
			e.s.ok = false
			continue
		}
		if ref != RefNone {
			e.s.constraints = append(e.s.constraints, ref)
			e.onClauseAdded(ref)
		}
	}
	for _, ref := range pos {
		e.removeClause(ref)
	}
	for _, ref := range neg {
		e.removeClause(ref)
	}

	e.s.eliminated[v] = true
	e.s.Stats.Eliminated++
	e.eliminatedCount++
}

// resolve produces the resolvent of cp and cn over v (the literals of both,
// minus v, deduplicated), reporting tautology if some other variable
// appears with both polarities.
func resolve(cp, cn *Clause, v int32) (lits []Literal, tautology bool) {
	lits = make([]Literal, 0, len(cp.lits)+len(cn.lits)-2)
	for _, l := range cp.lits {
		if l.Var() != v {
			lits = append(lits, l)
		}
	}
	for _, l := range cn.lits {
		if l.Var() == v {
			continue
		}
		dup := false
		for _, x := range lits {
			if x == l {
				dup = true
				break
			}
			if x == l.Opposite() {
				return nil, true
			}
		}
		if !dup {
			lits = append(lits, l)
		}
	}
	return lits, false
}

// recordExtension snapshots the smaller of v's positive/negative clause
// sets (the originals are about to be deleted) for use by extendModel.
func (e *eliminator) recordExtension(v int32, pos, neg []ClauseRef) {
	small, lit := pos, PosLiteral(v)
	if len(neg) < len(pos) {
		small, lit = neg, NegLiteral(v)
	}
	rec := elimRecord{v: v, lit: lit}
	for _, ref := range small {
		c := e.s.db.Get(ref)
		rec.clauses = append(rec.clauses, append([]Literal(nil), c.lits...))
	}
	e.stack = append(e.stack, rec)
}

// extendModel fills in the value of every eliminated variable in model
// (already populated for every non-eliminated variable), walking the
// elimination stack in reverse so that a variable eliminated earlier is
// reconstructed only after every variable eliminated later already has a
// value (spec.md §4.6 model extension).
func (e *eliminator) extendModel(model []bool) {
	for i := len(e.stack) - 1; i >= 0; i-- {
		rec := e.stack[i]
		needsLit := false
		for _, lits := range rec.clauses {
			if !clauseSatisfiedExcluding(lits, rec.v, model) {
				needsLit = true
				break
			}
		}
		if needsLit {
			model[rec.v] = rec.lit.IsPositive()
		} else {
			model[rec.v] = !rec.lit.IsPositive()
		}
	}
}

// clauseSatisfiedExcluding reports whether lits is already satisfied by
// model, ignoring any literal of variable v (v's own value is not yet
// decided).
func clauseSatisfiedExcluding(lits []Literal, v int32, model []bool) bool {
	for _, l := range lits {
		if l.Var() == v {
			continue
		}
		if model[l.Var()] == l.IsPositive() {
			return true
		}
	}
	return false
}
