package compare

import (
	"slices"
	"strings"

	"github.com/viant/symdef/symbol"
)

const systemNamespace = "System"

// Comparer orders symbols of any kind
type Comparer struct {
	SystemFirst bool // Whether System sorts before any other namespace segment
}

var (
	// Default orders namespaces ordinally
	Default = &Comparer{}
	// SystemNamespaceFirst places System before any other namespace at every level
	SystemNamespaceFirst = &Comparer{SystemFirst: true}
)

// New creates a comparer
func New(systemFirst bool) *Comparer {
	if systemFirst {
		return SystemNamespaceFirst
	}
	return Default
}

var typeKindRank = map[symbol.TypeKind]int{
	symbol.TypeKindClass:     0,
	symbol.TypeKindDelegate:  1,
	symbol.TypeKindEnum:      2,
	symbol.TypeKindInterface: 3,
	symbol.TypeKindStruct:    4,
}

// Sort sorts symbols in place, equal symbols keep their relative order
func (c *Comparer) Sort(symbols []*symbol.Symbol) {
	slices.SortStableFunc(symbols, c.Compare)
}

// Sorted returns a sorted copy
func (c *Comparer) Sorted(symbols []*symbol.Symbol) []*symbol.Symbol {
	ret := slices.Clone(symbols)
	c.Sort(ret)
	return ret
}

// Compare returns negative, zero or positive when x sorts before, with or after y
func (c *Comparer) Compare(x, y *symbol.Symbol) int {
	if x == y {
		return 0
	}
	if x == nil {
		return -1
	}
	if y == nil {
		return 1
	}
	if ret := int(x.Kind) - int(y.Kind); ret != 0 {
		return sign(ret)
	}
	switch x.Kind {
	case symbol.KindNamespace:
		return c.CompareNamespaces(x, y)
	case symbol.KindType:
		return c.CompareTypes(x, y)
	}
	return c.CompareMembers(x, y)
}

// CompareNamespaces compares namespaces segment by segment from the root, shorter chains first
func (c *Comparer) CompareNamespaces(x, y *symbol.Symbol) int {
	return c.compareSegments(namespaceSegments(x), namespaceSegments(y))
}

func (c *Comparer) compareSegments(x, y []string) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if ret := c.compareSegment(x[i], y[i]); ret != 0 {
			return ret
		}
	}
	return sign(len(x) - len(y))
}

func (c *Comparer) compareSegment(x, y string) int {
	if c.SystemFirst && x != y {
		if x == systemNamespace {
			return -1
		}
		if y == systemNamespace {
			return 1
		}
	}
	return strings.Compare(x, y)
}

func namespaceSegments(ns *symbol.Symbol) []string {
	if ns == nil || ns.IsGlobalNamespace() {
		return nil
	}
	return append(ns.NamespaceNames(), ns.Name)
}

// CompareTypes compares named types by namespace, containing type chain, name and arity, then kind and assembly
func (c *Comparer) CompareTypes(x, y *symbol.Symbol) int {
	if x == y {
		return 0
	}
	if ret := c.CompareNamespaces(x.ContainingNamespace(), y.ContainingNamespace()); ret != 0 {
		return ret
	}
	xs := append(x.ContainingTypes(), x)
	ys := append(y.ContainingTypes(), y)
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if ret := strings.Compare(xs[i].Name, ys[i].Name); ret != 0 {
			return ret
		}
		if ret := xs[i].Arity() - ys[i].Arity(); ret != 0 {
			return sign(ret)
		}
	}
	if ret := len(xs) - len(ys); ret != 0 {
		return sign(ret)
	}
	if ret := typeKindRank[x.TypeKind()] - typeKindRank[y.TypeKind()]; ret != 0 {
		return sign(ret)
	}
	return compareAssemblies(x.Assembly, y.Assembly)
}

func compareAssemblies(x, y *symbol.Assembly) int {
	if x == y {
		return 0
	}
	if x == nil {
		return -1
	}
	if y == nil {
		return 1
	}
	if ret := strings.Compare(x.Name, y.Name); ret != 0 {
		return ret
	}
	return symbol.CompareVersions(x.Version, y.Version)
}

// CompareAssemblies orders assemblies by name then version
func CompareAssemblies(x, y *symbol.Assembly) int {
	return compareAssemblies(x, y)
}

// SortedAssemblies returns assemblies ordered by name then version
func SortedAssemblies(assemblies []*symbol.Assembly) []*symbol.Assembly {
	ret := slices.Clone(assemblies)
	slices.SortStableFunc(ret, compareAssemblies)
	return ret
}

// CompareMembers compares members of the same kind
func (c *Comparer) CompareMembers(x, y *symbol.Symbol) int {
	if ret := c.compareContaining(x.ContainingType(), y.ContainingType()); ret != 0 {
		return ret
	}
	xExplicit, yExplicit := x.IsExplicitImplementation(), y.IsExplicitImplementation()
	if xExplicit != yExplicit {
		if xExplicit {
			return 1
		}
		return -1
	}
	if xExplicit {
		if ret := c.CompareTypeRefs(x.ExplicitInterface(), y.ExplicitInterface()); ret != 0 {
			return ret
		}
	}
	if ret := strings.Compare(x.Name, y.Name); ret != 0 {
		return ret
	}
	if ret := x.Arity() - y.Arity(); ret != 0 {
		return sign(ret)
	}
	if ret := c.compareParameters(x.Parameters(), y.Parameters()); ret != 0 {
		return ret
	}
	if x.MethodKind() == symbol.MethodConversion && y.MethodKind() == symbol.MethodConversion {
		if ret := c.CompareTypeRefs(x.Method.ReturnType, y.Method.ReturnType); ret != 0 {
			return ret
		}
	}
	return c.compareTypeParameters(x.TypeParameters, y.TypeParameters)
}

func (c *Comparer) compareContaining(x, y *symbol.Symbol) int {
	switch {
	case x == y:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}
	return c.CompareTypes(x, y)
}

func (c *Comparer) compareParameters(x, y []*symbol.Parameter) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if ret := c.CompareTypeRefs(x[i].Type, y[i].Type); ret != 0 {
			return ret
		}
		if ret := int(x[i].RefKind) - int(y[i].RefKind); ret != 0 {
			return sign(ret)
		}
	}
	return sign(len(x) - len(y))
}

func (c *Comparer) compareTypeParameters(x, y []*symbol.TypeParameter) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if ret := c.compareConstraints(x[i], y[i]); ret != 0 {
			return ret
		}
	}
	return sign(len(x) - len(y))
}

func (c *Comparer) compareConstraints(x, y *symbol.TypeParameter) int {
	flags := func(p *symbol.TypeParameter) []bool {
		return []bool{p.ReferenceType, p.ValueType, p.Unmanaged, p.NotNull, p.Constructor}
	}
	xf, yf := flags(x), flags(y)
	for i := range xf {
		if xf[i] != yf[i] {
			if xf[i] {
				return 1
			}
			return -1
		}
	}
	for i := 0; i < len(x.ConstraintTypes) && i < len(y.ConstraintTypes); i++ {
		if ret := c.CompareTypeRefs(x.ConstraintTypes[i], y.ConstraintTypes[i]); ret != 0 {
			return ret
		}
	}
	return sign(len(x.ConstraintTypes) - len(y.ConstraintTypes))
}

// CompareTypeRefs orders type references: named, array, pointer, type parameter, nullable after non nullable
func (c *Comparer) CompareTypeRefs(x, y *symbol.TypeRef) int {
	switch {
	case x == y:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}
	if ret := int(x.Kind) - int(y.Kind); ret != 0 {
		return sign(ret)
	}
	ret := 0
	switch x.Kind {
	case symbol.TypeRefNamed:
		ret = c.compareNamed(x, y)
	case symbol.TypeRefArray:
		if ret = sign(x.Rank - y.Rank); ret == 0 {
			ret = c.CompareTypeRefs(x.Element, y.Element)
		}
	case symbol.TypeRefPointer:
		ret = c.CompareTypeRefs(x.Element, y.Element)
	case symbol.TypeRefTypeParameter:
		ret = strings.Compare(x.Name, y.Name)
	}
	if ret != 0 {
		return ret
	}
	if x.Nullable != y.Nullable {
		if x.Nullable {
			return 1
		}
		return -1
	}
	return 0
}

func (c *Comparer) compareNamed(x, y *symbol.TypeRef) int {
	switch {
	case x.Def != nil && y.Def != nil:
		if ret := c.CompareTypes(x.Def, y.Def); ret != 0 {
			return ret
		}
	case x.Def != nil:
		return -1
	case y.Def != nil:
		return 1
	default:
		if ret := strings.Compare(x.Name, y.Name); ret != 0 {
			return ret
		}
	}
	for i := 0; i < len(x.Arguments) && i < len(y.Arguments); i++ {
		if ret := c.CompareTypeRefs(x.Arguments[i], y.Arguments[i]); ret != 0 {
			return ret
		}
	}
	return sign(len(x.Arguments) - len(y.Arguments))
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
