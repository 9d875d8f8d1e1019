package core

// ClauseRef is an offset into the clause arena (ClauseDB). It is never a
// native pointer: any call that may grow or compact the arena (Alloc, GC)
// invalidates every *Clause obtained before the call. Callers must re-fetch
// via ClauseDB.Get after such a call rather than retain the pointer across
// it.
type ClauseRef int32

// RefNone marks the absence of an antecedent clause: either the literal was
// a decision, or no reason is applicable (root-level fact).
const RefNone ClauseRef = -1

type clauseFlags uint8

const (
	flagLearnt clauseFlags = 1 << iota
	flagDeleted
	// flagProtected marks a learnt clause that reduction never deletes. It
	// is set when the clause is learnt with LBD <= 2 and is not cleared;
	// antecedents are kept separately (see Solver.isLocked).
	flagProtected
	// flagSeen is declared but not set by any pass; conflict analysis marks
	// variables through Solver.seen instead.
	flagSeen
	// flagTouched marks a clause that is currently waiting in the
	// subsumption queue: set when it is queued, cleared when it is taken
	// off the queue.
	flagTouched
)

// Clause is a disjunction of literals plus the bookkeeping the solver
// attaches to it: kind (original/learnt, binary is implied by len==2), LBD,
// activity, status flags and an abstraction hash used to short-circuit
// subsumption tests.
type Clause struct {
	lits []Literal

	lbd      uint32
	activity float64
	flags    clauseFlags

	// abstraction has bit (v mod 64) set for every variable v occurring in
	// the clause. If abstraction(c) &^ abstraction(d) != 0, c cannot
	// subsume d, which lets backward subsumption skip a full literal scan.
	abstraction uint64

	// prevPos caches the position the last watch rescan stopped at so the
	// next rescan does not always restart from index 2.
	prevPos int
}

func (c *Clause) Lits() []Literal { return c.lits }
func (c *Clause) Len() int        { return len(c.lits) }
func (c *Clause) LBD() uint32     { return c.lbd }
func (c *Clause) IsLearnt() bool  { return c.flags&flagLearnt != 0 }
func (c *Clause) IsBinary() bool  { return len(c.lits) == 2 }
func (c *Clause) isDeleted() bool { return c.flags&flagDeleted != 0 }

func (c *Clause) isProtected() bool { return c.flags&flagProtected != 0 }
func (c *Clause) setProtected()     { c.flags |= flagProtected }
func (c *Clause) clearProtected()   { c.flags &^= flagProtected }

func (c *Clause) isTouched() bool { return c.flags&flagTouched != 0 }
func (c *Clause) setTouched()     { c.flags |= flagTouched }
func (c *Clause) clearTouched()   { c.flags &^= flagTouched }

func computeAbstraction(lits []Literal) uint64 {
	var a uint64
	for _, l := range lits {
		a |= 1 << (uint(l.Var()) & 63)
	}
	return a
}
