package hierarchy

import (
	"slices"

	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrObjectNotFound is returned when no input type derives from the universal base type
var ErrObjectNotFound = errors.New("Object type not found")

// None marks a missing item index
const None = -1

// Item represents a hierarchy node
type Item struct {
	Symbol   *symbol.Symbol // Type symbol, nil for the interface root
	External bool           // Whether the type is an ancestor outside of the input set
	Parent   int            // Parent index, None for roots
	Children []int          // Child indexes in output order
}

// Hierarchy represents type inheritance forests stored in a single arena
type Hierarchy struct {
	Items         []*Item
	Root          int // Universal base type item
	InterfaceRoot int // Synthetic item parenting root interfaces
}

// Item returns an item by index
func (h *Hierarchy) Item(index int) *Item {
	return h.Items[index]
}

// HasInterfaces returns true if the interface forest is not empty
func (h *Hierarchy) HasInterfaces() bool {
	return len(h.Items[h.InterfaceRoot].Children) > 0
}

// Depth returns number of ancestors of an item
func (h *Hierarchy) Depth(index int) int {
	depth := 0
	for parent := h.Items[index].Parent; parent != None; parent = h.Items[parent].Parent {
		depth++
	}
	return depth
}

// Walk visits items depth first in output order, it stops when fn returns false
func (h *Hierarchy) Walk(index int, fn func(index int) bool) bool {
	if !fn(index) {
		return false
	}
	for _, child := range h.Items[index].Children {
		if !h.Walk(child, fn) {
			return false
		}
	}
	return true
}

type builder struct {
	comparer *compare.Comparer
	pool     []*symbol.Symbol
	inPool   map[*symbol.Symbol]bool
	external map[*symbol.Symbol]bool
	items    []*Item
}

// Build reconstructs the class hierarchy rooted at the universal base type and the interface forest
func Build(types []*symbol.Symbol, comparer *compare.Comparer) (*Hierarchy, error) {
	if comparer == nil {
		comparer = compare.SystemNamespaceFirst
	}
	object := findObject(types)
	if object == nil {
		return nil, ErrObjectNotFound
	}
	b := &builder{
		comparer: comparer,
		inPool:   map[*symbol.Symbol]bool{},
		external: map[*symbol.Symbol]bool{},
	}
	for _, typ := range types {
		b.add(typ, false)
	}
	b.add(object, true)
	for _, typ := range types {
		for base := baseOf(typ); base != nil; base = baseOf(base) {
			b.add(base, true)
		}
	}
	ret := &Hierarchy{}
	ret.Root = b.fill(object, None)

	ret.InterfaceRoot = b.newItem(nil, None)
	var roots []*symbol.Symbol
	for _, candidate := range b.pool {
		if b.isRootInterface(candidate) {
			roots = append(roots, candidate)
		}
	}
	slices.SortStableFunc(roots, comparer.Compare)
	for _, root := range roots {
		child := b.fill(root, ret.InterfaceRoot)
		b.items[ret.InterfaceRoot].Children = append(b.items[ret.InterfaceRoot].Children, child)
	}
	ret.Items = b.items
	return ret, nil
}

func findObject(types []*symbol.Symbol) *symbol.Symbol {
	for _, typ := range types {
		for t := typ; t != nil; t = baseOf(t) {
			if symbol.SpecialTypeOf(t) == symbol.SpecialObject {
				return t
			}
		}
	}
	return nil
}

func baseOf(typ *symbol.Symbol) *symbol.Symbol {
	if typ.Type == nil || typ.Type.BaseType == nil {
		return nil
	}
	return typ.Type.BaseType.Def
}

func (b *builder) add(typ *symbol.Symbol, external bool) {
	if b.inPool[typ] {
		return
	}
	if _, seen := b.external[typ]; seen {
		return
	}
	b.inPool[typ] = true
	b.external[typ] = external
	b.pool = append(b.pool, typ)
}

func (b *builder) newItem(typ *symbol.Symbol, parent int) int {
	b.items = append(b.items, &Item{Symbol: typ, External: typ != nil && b.external[typ], Parent: parent})
	return len(b.items) - 1
}

func (b *builder) remove(typ *symbol.Symbol) {
	if !b.inPool[typ] {
		return
	}
	delete(b.inPool, typ)
	b.pool = slices.DeleteFunc(b.pool, func(candidate *symbol.Symbol) bool { return candidate == typ })
}

func (b *builder) fill(typ *symbol.Symbol, parent int) int {
	index := b.newItem(typ, parent)
	isInterface := typ.Is(symbol.TypeKindInterface)
	if !isInterface {
		b.remove(typ)
	}
	var derived []*symbol.Symbol
	for _, candidate := range b.pool {
		if isInterface {
			if candidate.Is(symbol.TypeKindInterface) && implements(candidate, typ) {
				derived = append(derived, candidate)
			}
			continue
		}
		if baseOf(candidate) == typ {
			derived = append(derived, candidate)
		}
	}
	if symbol.SpecialTypeOf(typ) == symbol.SpecialObject {
		slices.SortStableFunc(derived, b.compareStaticLast)
	} else {
		slices.SortStableFunc(derived, b.comparer.Compare)
	}
	for _, candidate := range derived {
		child := b.fill(candidate, index)
		b.items[index].Children = append(b.items[index].Children, child)
	}
	return index
}

func (b *builder) compareStaticLast(x, y *symbol.Symbol) int {
	if x.IsStatic() != y.IsStatic() {
		if x.IsStatic() {
			return 1
		}
		return -1
	}
	return b.comparer.Compare(x, y)
}

func (b *builder) isRootInterface(typ *symbol.Symbol) bool {
	if !typ.Is(symbol.TypeKindInterface) {
		return false
	}
	for _, iface := range typ.Type.Interfaces {
		if iface.Def != nil && b.inPool[iface.Def] {
			return false
		}
	}
	return true
}

func implements(typ, iface *symbol.Symbol) bool {
	for _, candidate := range typ.Type.Interfaces {
		if candidate.Def == iface {
			return true
		}
	}
	return false
}
