package metadata

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/viant/symdef/symbol"
)

// Set represents a set of metadata names
type Set struct {
	names []Name
	index map[string]int
}

// NewSet creates a set from parsed names
func NewSet(names ...Name) *Set {
	ret := &Set{index: make(map[string]int, len(names))}
	for _, name := range names {
		ret.Add(name)
	}
	return ret
}

// ParseSet parses all texts, every malformed pattern is reported
func ParseSet(texts []string) (*Set, error) {
	ret := NewSet()
	var errs error
	for _, text := range texts {
		name, err := Parse(strings.TrimSpace(text))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		ret.Add(name)
	}
	if errs != nil {
		return nil, errs
	}
	return ret, nil
}

// Add adds a name, duplicates are ignored
func (s *Set) Add(name Name) {
	key := name.String()
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = len(s.names)
	s.names = append(s.names, name)
}

// Names returns names in insertion order
func (s *Set) Names() []Name {
	return s.names
}

// Len returns number of names
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Contains returns true if the symbol full metadata name is in the set
func (s *Set) Contains(sym *symbol.Symbol) bool {
	if s.Len() == 0 || sym == nil || sym.IsGlobalNamespace() {
		return false
	}
	_, ok := s.index[sym.FullMetadataName()]
	return ok
}

// Covers returns true if the symbol or any of its containing types or namespaces is in the set
func (s *Set) Covers(sym *symbol.Symbol) bool {
	if s.Len() == 0 {
		return false
	}
	for current := sym; current != nil; current = current.Containing {
		if s.Contains(current) {
			return true
		}
	}
	return false
}
