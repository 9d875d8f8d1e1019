package core

// varSet is a set of variable indices in [0, N) that can be cleared in O(1)
// amortized time via a generation counter, instead of re-zeroing a bitmap.
// Used by conflict analysis to mark variables seen during the resolution
// walk.
type varSet struct {
	stampedAt []uint32
	stamp     uint32
}

func (s *varSet) Contains(v int32) bool {
	return s.stampedAt[v] == s.stamp
}

func (s *varSet) Add(v int32) {
	s.stampedAt[v] = s.stamp
}

func (s *varSet) Clear() {
	s.stamp++
	if s.stamp == 0 { // wrapped around
		s.stamp = 1
		for i := range s.stampedAt {
			s.stampedAt[i] = 0
		}
	}
}

func (s *varSet) Grow() {
	s.stampedAt = append(s.stampedAt, 0)
}
