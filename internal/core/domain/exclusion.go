package domain

import "sort"

// ExclusionSet holds the line indices omitted from the Site and Document variants.
// It only grows; there is no removal.
type ExclusionSet struct {
	indices map[int]struct{}
}

// NewExclusionSet creates an empty exclusion set.
func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{indices: make(map[int]struct{})}
}

// Add marks a line index as excluded. It reports whether the index was new.
func (s *ExclusionSet) Add(index int) bool {
	if _, ok := s.indices[index]; ok {
		return false
	}
	s.indices[index] = struct{}{}
	return true
}

// Contains reports whether the index is excluded.
func (s *ExclusionSet) Contains(index int) bool {
	if s == nil {
		return false
	}
	_, ok := s.indices[index]
	return ok
}

// Len returns the number of excluded indices.
func (s *ExclusionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.indices)
}

// Indices returns the excluded indices in ascending order.
func (s *ExclusionSet) Indices() []int {
	if s == nil {
		return nil
	}
	result := make([]int, 0, len(s.indices))
	for idx := range s.indices {
		result = append(result, idx)
	}
	sort.Ints(result)
	return result
}
