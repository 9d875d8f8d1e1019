package core

// ClauseDB is the clause arena: the sole owner of clause storage. Every
// ClauseRef handed out by Alloc is an index into db.clauses, never a
// pointer. Deleted clauses are only marked (flagDeleted) and keep occupying
// a slot until GC runs, so that indices handed out earlier stay valid until
// a GC is explicitly performed.
//
// Grounded on other_examples/togatoga-gatosat__clauseallocator.go's
// ClauseAllocator (uint32 ClauseReference, WastedSize accounting); clause
// contents follow internal/sat/clauses.go's Clause (lbd, status mask,
// prevPos rescan cursor).
type ClauseDB struct {
	clauses []Clause

	// allocatedLits and wastedLits track the arena-size / wasted-space
	// ratio that triggers GC (spec.md: wasted/size > 0.2).
	allocatedLits int
	wastedLits    int
}

func NewClauseDB() *ClauseDB {
	return &ClauseDB{}
}

// Alloc creates a new clause from lits (copied) and returns its reference.
// lits must have length >= 2; unit and empty clauses are handled above this
// layer (see newClause in solver.go).
func (db *ClauseDB) Alloc(lits []Literal, learnt bool) ClauseRef {
	c := Clause{
		lits:        append([]Literal(nil), lits...),
		abstraction: computeAbstraction(lits),
		prevPos:     2,
	}
	if learnt {
		c.flags |= flagLearnt
	}
	ref := ClauseRef(len(db.clauses))
	db.clauses = append(db.clauses, c)
	db.allocatedLits += len(lits)
	return ref
}

// Get returns a pointer to the clause referenced by ref. The pointer is
// only valid until the next call to Alloc or GC: both may reallocate the
// underlying slice. Do not stash the result across such a call.
func (db *ClauseDB) Get(ref ClauseRef) *Clause {
	return &db.clauses[ref]
}

// Delete marks the clause as dead and accounts its literals as wasted
// space. The slot is not reused until GC.
func (db *ClauseDB) Delete(ref ClauseRef) {
	c := db.Get(ref)
	if c.isDeleted() {
		return
	}
	c.flags |= flagDeleted
	db.wastedLits += len(c.lits)
	c.lits = nil
}

// NeedsGC reports whether wasted space has crossed the 20% threshold.
func (db *ClauseDB) NeedsGC() bool {
	return db.allocatedLits > 0 && float64(db.wastedLits) > 0.2*float64(db.allocatedLits)
}

// GC compacts the arena, dropping deleted clauses and returning a remap
// table: remap[old] is the clause's new reference, or RefNone if the clause
// was deleted. Callers must use remap to rewrite every ClauseRef they hold
// (watch lists, antecedents, learnt/constraint index lists, the
// eliminator's occurrence lists and subsumption queue) before touching the
// database again.
func (db *ClauseDB) GC() []ClauseRef {
	remap := make([]ClauseRef, len(db.clauses))
	survivors := make([]Clause, 0, len(db.clauses))

	for i := range db.clauses {
		c := &db.clauses[i]
		if c.isDeleted() {
			remap[i] = RefNone
			continue
		}
		remap[i] = ClauseRef(len(survivors))
		survivors = append(survivors, *c)
	}

	db.clauses = survivors
	db.wastedLits = 0
	db.allocatedLits = 0
	for i := range db.clauses {
		db.allocatedLits += len(db.clauses[i].lits)
	}
	return remap
}

func (db *ClauseDB) Len() int { return len(db.clauses) }
