package core

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// rephaseMode selects which strategy Brancher.rephase uses to override the
// saved-phase default.
type rephaseMode int

const (
	rephaseBest rephaseMode = iota
	rephaseInvert
	rephaseRandom
	numRephaseModes
)

// Brancher implements pick_branch (spec.md §4.3): an activity-ordered max
// heap of decision-eligible variables plus phase memory for the saved/best/
// rephased polarity of each variable.
//
// Grounded on internal/sat/ordering.go's VarOrder, which wraps the same
// generic indexed heap (github.com/rhartert/yagh) keyed by negative
// activity so the heap's minimum is the highest-activity variable;
// generalized here to skip eliminated variables when popping (they may
// still sit in the heap) and to support the three rephasing strategies
// spec.md §4.3 names.
type Brancher struct {
	heap *yagh.IntMap[float64]

	// phase is the last assigned polarity per variable (true/false), used
	// as the default branching phase.
	phase []bool
	// best is the polarity snapshot saved the last time the trail reached
	// a new record length, copied into phase by a "best" rephase.
	best []bool
	// bestTrailLen is the longest trail length observed so far; best is
	// only updated when a new record is set.
	bestTrailLen int

	rephaseRNG *rand.Rand
	nextMode   rephaseMode
}

func NewBrancher(nVars int, seed int64) *Brancher {
	return &Brancher{
		heap:       yagh.New[float64](nVars),
		phase:      make([]bool, nVars),
		best:       make([]bool, nVars),
		rephaseRNG: rand.New(rand.NewSource(seed)),
	}
}

// AddVar registers a new decision variable with zero activity.
func (b *Brancher) AddVar() {
	b.phase = append(b.phase, false)
	b.best = append(b.best, false)
	b.heap.GrowBy(1)
	b.heap.Put(len(b.phase)-1, 0)
}

// Update re-inserts v at its current (possibly changed) activity. Safe to
// call whether or not v is currently in the heap.
func (b *Brancher) Update(v int32, activity float64) {
	b.heap.Put(int(v), -activity)
}

// Return re-inserts v into the heap after it is unassigned by backtracking,
// recording its last value for phase saving.
func (b *Brancher) Return(v int32, lastValue LBool, activity float64, phaseSaving bool) {
	if phaseSaving && lastValue != Unknown {
		b.phase[v] = lastValue == True
	}
	b.heap.Put(int(v), -activity)
}

// RecordTrailLength updates the best-phase snapshot if trailLen is a new
// record, copying the current per-variable phase array.
func (b *Brancher) RecordTrailLength(trailLen int, current []bool) {
	if trailLen <= b.bestTrailLen {
		return
	}
	b.bestTrailLen = trailLen
	copy(b.best, current)
}

// Pick pops the highest-activity decision-eligible variable, skipping stale
// heap entries for variables that are already assigned or have since been
// eliminated (lazy removal: there is no eager heap-delete), and returns the
// literal for its selected phase.
//
// skip reports whether a variable must not be branched on right now
// (already assigned, or eliminated).
func (b *Brancher) Pick(skip func(v int32) bool) (Literal, bool) {
	for {
		e, ok := b.heap.Pop()
		if !ok {
			return 0, false
		}
		v := int32(e.Elem)
		if skip(v) {
			continue // stale entry
		}
		if b.phase[v] {
			return PosLiteral(v), true
		}
		return NegLiteral(v), true
	}
}

// Rephase overrides the saved-phase array using the next strategy in
// rotation: copy the best phase, invert every phase, or randomize.
func (b *Brancher) Rephase() {
	switch b.nextMode {
	case rephaseBest:
		copy(b.phase, b.best)
	case rephaseInvert:
		for i := range b.phase {
			b.phase[i] = !b.phase[i]
		}
	case rephaseRandom:
		for i := range b.phase {
			b.phase[i] = b.rephaseRNG.Intn(2) == 1
		}
	}
	b.nextMode = (b.nextMode + 1) % numRephaseModes
}
