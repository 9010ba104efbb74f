package domain

import "sort"

// HiddenMatchSet holds the match IDs a user excluded from visible lists and
// from statistic recomputation. It is session-scoped and caller-owned: the
// pipeline receives it by value on every call and never stores one.
type HiddenMatchSet map[int64]struct{}

func NewHiddenMatchSet(ids ...int64) HiddenMatchSet {
	s := make(HiddenMatchSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s HiddenMatchSet) Hide(id int64) {
	s[id] = struct{}{}
}

func (s HiddenMatchSet) Unhide(id int64) {
	delete(s, id)
}

func (s HiddenMatchSet) IsHidden(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s HiddenMatchSet) Clone() HiddenMatchSet {
	out := make(HiddenMatchSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s HiddenMatchSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
