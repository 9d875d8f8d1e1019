package core

// watcher is one entry of a literal's watch list: the clause awakened when
// the watched literal becomes true, and a blocker literal cached from the
// clause so propagation can skip dereferencing the clause entirely when the
// blocker is already satisfied.
type watcher struct {
	ref     ClauseRef
	blocker Literal
}

// watchLists holds, for every literal, the clauses watching it.
type watchLists struct {
	lists [][]watcher
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

func (w *watchLists) grow() {
	w.lists = append(w.lists, nil, nil) // one per literal of the new variable
}

func (w *watchLists) Watch(lit Literal, ref ClauseRef, blocker Literal) {
	w.lists[lit] = append(w.lists[lit], watcher{ref: ref, blocker: blocker})
}

// Unwatch removes the (first) watcher for ref from lit's list.
func (w *watchLists) Unwatch(lit Literal, ref ClauseRef) {
	ws := w.lists[lit]
	for i, wa := range ws {
		if wa.ref == ref {
			copy(ws[i:], ws[i+1:])
			w.lists[lit] = ws[:len(ws)-1]
			return
		}
	}
}

func (w *watchLists) List(lit Literal) []watcher {
	return w.lists[lit]
}

func (w *watchLists) SetList(lit Literal, ws []watcher) {
	w.lists[lit] = ws
}
