package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/hierarchy"
	"github.com/viant/symdef/symbol"
)

type fixture struct {
	corlib *symbol.Corlib
	types  map[string]*symbol.Symbol
	all    []*symbol.Symbol
}

func newFixture() *fixture {
	corlib := symbol.NewCorlib()
	assembly := symbol.NewAssembly("Lib")
	ns := assembly.Namespace("N")
	f := &fixture{corlib: corlib, types: map[string]*symbol.Symbol{}}
	add := func(name string, kind symbol.TypeKind, base string, interfaces ...string) *symbol.Symbol {
		typ := ns.AddMember(symbol.NewType(name, kind, symbol.AccessibilityPublic))
		if base != "" {
			if def := f.types[base]; def != nil {
				typ.Type.BaseType = symbol.Named(def)
			} else {
				typ.Type.BaseType = corlib.Ref(base)
			}
		}
		for _, iface := range interfaces {
			if def := f.types[iface]; def != nil {
				typ.Type.Interfaces = append(typ.Type.Interfaces, symbol.Named(def))
			} else {
				typ.Type.Interfaces = append(typ.Type.Interfaces, corlib.Ref(iface))
			}
		}
		f.types[name] = typ
		f.all = append(f.all, typ)
		return typ
	}
	add("I1", symbol.TypeKindInterface, "")
	add("I4", symbol.TypeKindInterface, "", "System.Collections.IEnumerable")
	add("I2", symbol.TypeKindInterface, "", "I1")
	add("I3", symbol.TypeKindInterface, "", "I1")
	add("S", symbol.TypeKindClass, "System.Object").Modifiers = symbol.ModifierStatic
	add("A", symbol.TypeKindClass, "System.Object", "I1")
	add("B", symbol.TypeKindClass, "A")
	add("C", symbol.TypeKindClass, "System.Exception")
	add("V", symbol.TypeKindStruct, "System.ValueType")
	add("E", symbol.TypeKindEnum, "System.Enum")
	add("D", symbol.TypeKindDelegate, "System.MulticastDelegate")
	return f
}

func names(h *hierarchy.Hierarchy, index int) []string {
	var result []string
	for _, child := range h.Item(index).Children {
		result = append(result, h.Item(child).Symbol.Name)
	}
	return result
}

func find(h *hierarchy.Hierarchy, typ *symbol.Symbol) []int {
	var result []int
	for i, item := range h.Items {
		if item.Symbol == typ {
			result = append(result, i)
		}
	}
	return result
}

func TestBuild(t *testing.T) {
	f := newFixture()
	h, err := hierarchy.Build(f.all, compare.SystemNamespaceFirst)
	require.NoError(t, err)

	root := h.Item(h.Root)
	assert.Equal(t, f.corlib.Object(), root.Symbol)
	assert.True(t, root.External)
	assert.Equal(t, hierarchy.None, root.Parent)
	assert.Equal(t, []string{"Delegate", "Exception", "ValueType", "A", "S"}, names(h, h.Root))

	valueType := find(h, f.corlib.Type("System.ValueType"))
	require.Len(t, valueType, 1)
	assert.True(t, h.Item(valueType[0]).External)
	assert.Equal(t, []string{"Enum", "V"}, names(h, valueType[0]))

	a := find(h, f.types["A"])
	require.Len(t, a, 1)
	assert.False(t, h.Item(a[0]).External)
	assert.Equal(t, []string{"B"}, names(h, a[0]))

	require.True(t, h.HasInterfaces())
	assert.Nil(t, h.Item(h.InterfaceRoot).Symbol)
	assert.Equal(t, []string{"I1", "I4"}, names(h, h.InterfaceRoot))
	i1 := find(h, f.types["I1"])
	require.Len(t, i1, 1)
	assert.Equal(t, []string{"I2", "I3"}, names(h, i1[0]))
	assert.Equal(t, 2, h.Depth(find(h, f.types["I2"])[0]))
}

func TestBuild_Closure(t *testing.T) {
	f := newFixture()
	h, err := hierarchy.Build(f.all, compare.Default)
	require.NoError(t, err)
	for _, typ := range f.all {
		t.Run(typ.Name, func(t *testing.T) {
			indexes := find(h, typ)
			require.NotEmpty(t, indexes)
			for _, index := range indexes {
				seen := map[int]bool{}
				current := index
				for h.Item(current).Parent != hierarchy.None {
					require.False(t, seen[current], "cycle at %d", current)
					seen[current] = true
					parent := h.Item(current).Parent
					assert.Contains(t, h.Item(parent).Children, current)
					current = parent
				}
				assert.True(t, current == h.Root || current == h.InterfaceRoot)
			}
		})
	}
	for i, item := range h.Items {
		for _, child := range item.Children {
			childSymbol := h.Item(child).Symbol
			if item.Symbol == nil {
				continue
			}
			if item.Symbol.Is(symbol.TypeKindInterface) {
				found := false
				for _, iface := range childSymbol.Type.Interfaces {
					found = found || iface.Def == item.Symbol
				}
				assert.True(t, found, "item %d", i)
				continue
			}
			assert.Equal(t, item.Symbol, childSymbol.Type.BaseType.Def)
		}
	}
}

func TestBuild_Walk(t *testing.T) {
	f := newFixture()
	h, err := hierarchy.Build(f.all, compare.SystemNamespaceFirst)
	require.NoError(t, err)
	var visited []string
	h.Walk(h.Root, func(index int) bool {
		visited = append(visited, h.Item(index).Symbol.Name)
		return true
	})
	assert.Equal(t, []string{"Object", "Delegate", "MulticastDelegate", "D", "Exception", "C", "ValueType", "Enum", "E", "V", "A", "B", "S"}, visited)
}

func TestBuild_ObjectNotFound(t *testing.T) {
	iface := symbol.NewType("I", symbol.TypeKindInterface, symbol.AccessibilityPublic)
	_, err := hierarchy.Build([]*symbol.Symbol{iface}, nil)
	assert.ErrorIs(t, err, hierarchy.ErrObjectNotFound)
}
