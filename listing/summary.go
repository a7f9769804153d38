package listing

import (
	"log/slog"
	"strconv"

	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/symbol"
)

// Summary represents counts of listed symbols
type Summary struct {
	Assemblies int
	Counts     map[filter.Group]int // Counts by single group
}

// NewSummary counts visible namespaces, types and members of assemblies
func NewSummary(assemblies []*symbol.Assembly, options *filter.Options) *Summary {
	ret := &Summary{Assemblies: len(assemblies), Counts: map[filter.Group]int{}}
	typeFilter := *options
	typeFilter.Groups |= filter.GroupType
	namespaces := map[string]bool{}
	for _, assembly := range assemblies {
		for _, typ := range assembly.Types(typeFilter.IsVisible) {
			if ns := typ.ContainingNamespace(); ns != nil && !namespaces[ns.FullMetadataName()] && options.IsVisible(ns) {
				namespaces[ns.FullMetadataName()] = true
				ret.Counts[filter.GroupNamespace]++
			}
			if !options.IsVisible(typ) {
				continue
			}
			ret.Counts[filter.TypeGroup(typ.TypeKind())]++
			for _, member := range options.VisibleMembers(typ) {
				ret.Counts[filter.MemberGroup(member)]++
			}
		}
	}
	return ret
}

// Count returns total count of the given groups
func (s *Summary) Count(group filter.Group) int {
	total := 0
	for _, single := range group.Singles() {
		total += s.Counts[single]
	}
	return total
}

// LogValue returns non zero counts keyed by plural group names
func (s *Summary) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("assemblies", s.Assemblies)}
	for _, group := range filter.GroupAll.Singles() {
		if count := s.Counts[group]; count > 0 {
			attrs = append(attrs, slog.Int(group.Plural(), count))
		}
	}
	return slog.GroupValue(attrs...)
}

// Lines returns per group count lines
func (s *Summary) Lines() []string {
	lines := []string{"assemblies: " + strconv.Itoa(s.Assemblies)}
	for _, group := range []filter.Group{filter.GroupNamespace, filter.GroupType, filter.GroupMember} {
		lines = append(lines, group.Plural()+": "+strconv.Itoa(s.Count(group)))
		if group == filter.GroupNamespace {
			continue
		}
		for _, single := range group.Singles() {
			if count := s.Counts[single]; count > 0 {
				lines = append(lines, "  "+single.Plural()+": "+strconv.Itoa(count))
			}
		}
	}
	return lines
}
