package filter

import (
	"strings"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownGroup is returned when a group name cannot be mapped
var ErrUnknownGroup = errors.New("unknown symbol group")

// Group represents a symbol group bitmask
type Group int

const (
	GroupNamespace Group = 1 << iota
	GroupClass
	GroupStruct
	GroupInterface
	GroupEnum
	GroupDelegate
	GroupEvent
	GroupField
	GroupEnumField
	GroupConst
	GroupProperty
	GroupIndexer
	GroupMethod

	GroupNone         Group = 0
	GroupType               = GroupClass | GroupStruct | GroupInterface | GroupEnum | GroupDelegate
	GroupMember             = GroupEvent | GroupField | GroupEnumField | GroupConst | GroupProperty | GroupIndexer | GroupMethod
	GroupTypeOrMember       = GroupType | GroupMember
	GroupAll                = GroupNamespace | GroupTypeOrMember
)

var groups = []struct {
	group  Group
	name   string
	plural string
}{
	{GroupNamespace, "namespace", "namespaces"},
	{GroupClass, "class", "classes"},
	{GroupStruct, "struct", "structs"},
	{GroupInterface, "interface", "interfaces"},
	{GroupEnum, "enum", "enums"},
	{GroupDelegate, "delegate", "delegates"},
	{GroupEvent, "event", "events"},
	{GroupField, "field", "fields"},
	{GroupEnumField, "enum-field", "enum fields"},
	{GroupConst, "const", "constants"},
	{GroupProperty, "property", "properties"},
	{GroupIndexer, "indexer", "indexers"},
	{GroupMethod, "method", "methods"},
	{GroupType, "type", "types"},
	{GroupMember, "member", "members"},
	{GroupAll, "all", "symbols"},
}

// Has returns true if all groups in o are included
func (g Group) Has(o Group) bool {
	return g&o == o
}

// Intersects returns true if any group in o is included
func (g Group) Intersects(o Group) bool {
	return g&o != 0
}

// Singles returns single groups in declaration order
func (g Group) Singles() []Group {
	var result []Group
	for _, item := range groups {
		if item.group&(item.group-1) == 0 && g.Has(item.group) {
			result = append(result, item.group)
		}
	}
	return result
}

func (g Group) String() string {
	for _, item := range groups {
		if item.group == g {
			return item.name
		}
	}
	var names []string
	for _, single := range g.Singles() {
		names = append(names, single.String())
	}
	return strings.Join(names, ",")
}

// Plural returns plural text of a single group
func (g Group) Plural() string {
	for _, item := range groups {
		if item.group == g {
			return item.plural
		}
	}
	return g.String()
}

// ParseGroup maps a group name to a group
func ParseGroup(name string) (Group, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, item := range groups {
		if item.name == name {
			return item.group, nil
		}
	}
	return GroupNone, errors.Errorf("group %q: %w", name, ErrUnknownGroup)
}

// TypeGroup maps a type kind to its group
func TypeGroup(kind symbol.TypeKind) Group {
	switch kind {
	case symbol.TypeKindClass:
		return GroupClass
	case symbol.TypeKindStruct:
		return GroupStruct
	case symbol.TypeKindInterface:
		return GroupInterface
	case symbol.TypeKindEnum:
		return GroupEnum
	case symbol.TypeKindDelegate:
		return GroupDelegate
	}
	return GroupNone
}

// MemberGroup returns the group of a type member
func MemberGroup(s *symbol.Symbol) Group {
	switch s.Kind {
	case symbol.KindEvent:
		return GroupEvent
	case symbol.KindField:
		if !s.IsConst() {
			return GroupField
		}
		if containing := s.ContainingType(); containing != nil && containing.Is(symbol.TypeKindEnum) {
			return GroupEnumField
		}
		return GroupConst
	case symbol.KindProperty:
		if s.IsIndexer() {
			return GroupIndexer
		}
		return GroupProperty
	case symbol.KindMethod:
		return GroupMethod
	case symbol.KindType:
		return TypeGroup(s.TypeKind())
	case symbol.KindNamespace:
		return GroupNamespace
	}
	return GroupNone
}

// VisibilityFilter represents a set of visibility levels considered visible
type VisibilityFilter int

const (
	VisibilityPublic   = VisibilityFilter(symbol.VisibilityPublic)
	VisibilityInternal = VisibilityFilter(symbol.VisibilityInternal)
	VisibilityPrivate  = VisibilityFilter(symbol.VisibilityPrivate)
	VisibilityNone     = VisibilityFilter(0)
	VisibilityAll      = VisibilityPublic | VisibilityInternal | VisibilityPrivate
)

// Includes returns true if visibility is in the filter
func (f VisibilityFilter) Includes(v symbol.Visibility) bool {
	return int(f)&int(v) != 0
}

// ParseVisibility maps a visibility name to a filter
func ParseVisibility(name string) (VisibilityFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "public":
		return VisibilityPublic, nil
	case "internal":
		return VisibilityInternal, nil
	case "private":
		return VisibilityPrivate, nil
	case "all":
		return VisibilityAll, nil
	}
	return VisibilityNone, errors.Errorf("visibility %q: %w", name, symbol.ErrUnknownValue)
}
