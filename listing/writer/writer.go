package writer

import (
	"context"
	"slices"

	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/display"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/hierarchy"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// DocumentationProvider returns documentation of a symbol, nil when it has none
type DocumentationProvider interface {
	Documentation(s *symbol.Symbol) *symbol.Documentation
}

// SymbolDocumentation provides documentation attached to symbols by a source
type SymbolDocumentation struct{}

func (SymbolDocumentation) Documentation(s *symbol.Symbol) *symbol.Documentation {
	return s.Documentation
}

// Writer walks assemblies and emits definition tree events to a backend
type Writer struct {
	backend       Backend
	capabilities  Capabilities
	filter        *filter.Options
	format        *Format
	comparer      *compare.Comparer
	documentation DocumentationProvider
	formats       *Formats
}

// Option represents a writer option
type Option func(*Writer)

// WithFilter sets symbol filter
func WithFilter(options *filter.Options) Option {
	return func(w *Writer) {
		w.filter = options
	}
}

// WithFormat sets list format
func WithFormat(format *Format) Option {
	return func(w *Writer) {
		w.format = format
	}
}

// WithComparer sets symbol ordering
func WithComparer(comparer *compare.Comparer) Option {
	return func(w *Writer) {
		w.comparer = comparer
	}
}

// WithDocumentation sets documentation provider, documentation is not written without one
func WithDocumentation(provider DocumentationProvider) Option {
	return func(w *Writer) {
		w.documentation = provider
	}
}

// New creates a writer, display formats are built once here
func New(backend Backend, opts ...Option) *Writer {
	ret := &Writer{
		backend:  backend,
		filter:   filter.New(),
		format:   DefaultFormat(),
		comparer: compare.SystemNamespaceFirst,
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.capabilities = backend.Capabilities()
	ret.formats = NewFormats(ret.format, ret.capabilities, ret.filter)
	return ret
}

// Formats returns display formats used by the writer
func (w *Writer) Formats() *Formats {
	return w.formats
}

// WriteDocument writes assemblies followed by their namespaces or type hierarchy.
// Cancellation is checked before every namespace, type and member, ctx.Err() is returned as is.
func (w *Writer) WriteDocument(ctx context.Context, assemblies []*symbol.Assembly) error {
	document := w.entry()
	if err := w.backend.Start(NodeDocument, document); err != nil {
		return err
	}
	if err := w.writeAssemblies(ctx, assemblies); err != nil {
		return err
	}
	if !w.format.GroupByAssembly {
		var types []*symbol.Symbol
		for _, assembly := range compare.SortedAssemblies(assemblies) {
			types = append(types, w.types(assembly)...)
		}
		if err := w.writeTypeTree(ctx, types); err != nil {
			return err
		}
	}
	return w.backend.End(NodeDocument, document)
}

func (w *Writer) entry() *Entry {
	return &Entry{Format: w.format}
}

// types returns visible types of the assembly, top level only unless the layout is a type hierarchy
func (w *Writer) types(assembly *symbol.Assembly) []*symbol.Symbol {
	typeFilter := w.namespaceFilter()
	topLevel := w.format.Layout != LayoutTypeHierarchy
	return assembly.Types(func(s *symbol.Symbol) bool {
		if topLevel && s.ContainingType() != nil {
			return false
		}
		return typeFilter.IsVisible(s)
	})
}

// namespaceFilter returns filter deriving namespaces when types themselves are not listed
func (w *Writer) namespaceFilter() *filter.Options {
	if w.filter.Groups.Intersects(filter.GroupType) || w.format.Layout == LayoutTypeHierarchy {
		return w.filter
	}
	ret := *w.filter
	ret.Groups |= filter.GroupType
	return &ret
}

func (w *Writer) listsTypes() bool {
	return w.filter.Groups.Intersects(filter.GroupType)
}

func (w *Writer) listsMembers() bool {
	return w.filter.Groups.Intersects(filter.GroupMember)
}

func (w *Writer) writeTypeTree(ctx context.Context, types []*symbol.Symbol) error {
	if w.format.Layout == LayoutTypeHierarchy {
		return w.writeTypeHierarchy(ctx, types)
	}
	return w.writeNamespaces(ctx, types)
}

func (w *Writer) writeAssemblies(ctx context.Context, assemblies []*symbol.Assembly) error {
	sorted := compare.SortedAssemblies(assemblies)
	list := w.entry()
	list.Assemblies = sorted
	if err := w.backend.Start(NodeAssemblies, list); err != nil {
		return err
	}
	for i, assembly := range sorted {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := w.entry()
		entry.Assembly = assembly
		if i > 0 {
			if err := w.backend.Separator(NodeAssembly, entry); err != nil {
				return err
			}
		}
		if err := w.backend.Start(NodeAssembly, entry); err != nil {
			return err
		}
		if err := w.backend.Write(NodeAssembly, entry); err != nil {
			return err
		}
		if w.format.Includes(PartAssemblyAttributes) {
			if err := w.writeAttributes(assembly.Attributes, nil, true); err != nil {
				return err
			}
		}
		if w.format.GroupByAssembly {
			if err := w.writeTypeTree(ctx, w.types(assembly)); err != nil {
				return err
			}
		}
		if err := w.backend.End(NodeAssembly, entry); err != nil {
			return err
		}
	}
	return w.backend.End(NodeAssemblies, list)
}

// namespaceGroup represents types of namespaces sharing a metadata name across assemblies
type namespaceGroup struct {
	types []*symbol.Symbol
}

func (w *Writer) groupByNamespace(types []*symbol.Symbol) (map[string]*namespaceGroup, []*symbol.Symbol) {
	groups := map[string]*namespaceGroup{}
	var namespaces []*symbol.Symbol
	for _, typ := range types {
		ns := typ.ContainingNamespace()
		if ns == nil {
			continue
		}
		key := ns.FullMetadataName()
		group, ok := groups[key]
		if !ok {
			if !w.filter.IsVisible(ns) {
				continue
			}
			group = &namespaceGroup{}
			groups[key] = group
			namespaces = append(namespaces, ns)
		}
		group.types = append(group.types, typ)
	}
	w.comparer.Sort(namespaces)
	return groups, namespaces
}

func (w *Writer) writeNamespaces(ctx context.Context, types []*symbol.Symbol) error {
	groups, namespaces := w.groupByNamespace(types)
	if err := w.backend.Start(NodeNamespaces, w.entry()); err != nil {
		return err
	}
	var err error
	if w.format.Layout == LayoutNamespaceHierarchy {
		err = w.writeNamespaceHierarchy(ctx, groups, namespaces)
	} else {
		err = w.writeNamespaceList(ctx, groups, namespaces)
	}
	if err != nil {
		return err
	}
	return w.backend.End(NodeNamespaces, w.entry())
}

func (w *Writer) writeNamespaceList(ctx context.Context, groups map[string]*namespaceGroup, namespaces []*symbol.Symbol) error {
	for i, ns := range namespaces {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeNamespaceSeparator(i, ns); err != nil {
			return err
		}
		entry := w.entry()
		entry.Symbol = ns
		if err := w.backend.Start(NodeNamespace, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeNamespace, entry, w.formats.Namespace); err != nil {
			return err
		}
		if w.listsTypes() {
			if err := w.writeTypes(ctx, groups[ns.FullMetadataName()].types); err != nil {
				return err
			}
		}
		if err := w.backend.End(NodeNamespace, entry); err != nil {
			return err
		}
	}
	return nil
}

// writeNamespaceHierarchy writes root namespaces, each followed by its nested namespaces.
// Namespaces without types are written when a descendant has types.
func (w *Writer) writeNamespaceHierarchy(ctx context.Context, groups map[string]*namespaceGroup, namespaces []*symbol.Symbol) error {
	var roots []*symbol.Symbol
	rooted := map[string]bool{}
	nested := map[string]*symbol.Symbol{}
	for _, ns := range namespaces {
		if ns.IsGlobalNamespace() {
			if key := ns.FullMetadataName(); !rooted[key] {
				rooted[key] = true
				roots = append(roots, ns)
			}
			continue
		}
		for n := ns; ; n = n.ContainingNamespace() {
			containing := n.ContainingNamespace()
			key := n.FullMetadataName()
			if containing == nil || containing.IsGlobalNamespace() {
				if !rooted[key] {
					rooted[key] = true
					roots = append(roots, n)
				}
				break
			}
			if _, ok := nested[key]; !ok {
				nested[key] = n
			}
		}
	}
	w.comparer.Sort(roots)

	var writeNamespace func(ns *symbol.Symbol) error
	writeNamespace = func(ns *symbol.Symbol) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := w.entry()
		entry.Symbol = ns
		if err := w.backend.Start(NodeNamespace, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeNamespace, entry, w.formats.Namespace); err != nil {
			return err
		}
		key := ns.FullMetadataName()
		if group, ok := groups[key]; ok && w.listsTypes() {
			if err := w.writeTypes(ctx, group.types); err != nil {
				return err
			}
		}
		var children []*symbol.Symbol
		for _, candidate := range nested {
			if containing := candidate.ContainingNamespace(); containing != nil && containing.FullMetadataName() == key {
				children = append(children, candidate)
			}
		}
		w.comparer.Sort(children)
		for i, child := range children {
			delete(nested, child.FullMetadataName())
			if err := w.writeNamespaceSeparator(i, child); err != nil {
				return err
			}
			if err := writeNamespace(child); err != nil {
				return err
			}
		}
		return w.backend.End(NodeNamespace, entry)
	}
	for i, root := range roots {
		if err := w.writeNamespaceSeparator(i, root); err != nil {
			return err
		}
		if err := writeNamespace(root); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNamespaceSeparator(index int, next *symbol.Symbol) error {
	if index == 0 {
		return nil
	}
	entry := w.entry()
	entry.Symbol = next
	return w.backend.Separator(NodeNamespace, entry)
}

func (w *Writer) writeTypes(ctx context.Context, types []*symbol.Symbol) error {
	if len(types) == 0 {
		return nil
	}
	if err := w.backend.Start(NodeTypes, w.entry()); err != nil {
		return err
	}
	for i, typ := range w.comparer.Sorted(types) {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := w.entry()
		entry.Symbol = typ
		if i > 0 {
			if err := w.backend.Separator(NodeType, entry); err != nil {
				return err
			}
		}
		if err := w.backend.Start(NodeType, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeType, entry, w.formats.Type); err != nil {
			return err
		}
		if err := w.writeMembers(ctx, typ); err != nil {
			return err
		}
		if err := w.backend.End(NodeType, entry); err != nil {
			return err
		}
	}
	return w.backend.End(NodeTypes, w.entry())
}

func (w *Writer) writeTypeHierarchy(ctx context.Context, types []*symbol.Symbol) error {
	if len(types) == 0 {
		return nil
	}
	tree, err := hierarchy.Build(types, w.comparer)
	if err != nil {
		return errors.Errorf("failed to build type hierarchy: %w", err)
	}
	if err := w.backend.Start(NodeTypes, w.entry()); err != nil {
		return err
	}
	var writeItem func(index int) error
	writeItem = func(index int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := tree.Item(index)
		entry := w.entry()
		entry.Symbol = item.Symbol
		if err := w.backend.Start(NodeType, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeType, entry, w.formats.Type); err != nil {
			return err
		}
		if item.Symbol != nil && !item.External {
			if err := w.writeMembers(ctx, item.Symbol); err != nil {
				return err
			}
		}
		for i, child := range item.Children {
			if i > 0 {
				next := w.entry()
				next.Symbol = tree.Item(child).Symbol
				if err := w.backend.Separator(NodeType, next); err != nil {
					return err
				}
			}
			if err := writeItem(child); err != nil {
				return err
			}
		}
		return w.backend.End(NodeType, entry)
	}
	if err := writeItem(tree.Root); err != nil {
		return err
	}
	if tree.HasInterfaces() {
		if err := writeItem(tree.InterfaceRoot); err != nil {
			return err
		}
	}
	return w.backend.End(NodeTypes, w.entry())
}

func (w *Writer) writeMembers(ctx context.Context, typ *symbol.Symbol) error {
	switch typ.TypeKind() {
	case symbol.TypeKindClass, symbol.TypeKindStruct, symbol.TypeKindInterface:
		if w.listsMembers() {
			if err := w.writeMemberList(ctx, typ); err != nil {
				return err
			}
		}
		if w.format.Layout != LayoutTypeHierarchy && w.listsTypes() {
			var nested []*symbol.Symbol
			for _, candidate := range typ.TypeMembers() {
				if w.filter.IsVisible(candidate) {
					nested = append(nested, candidate)
				}
			}
			return w.writeTypes(ctx, nested)
		}
	case symbol.TypeKindEnum:
		if w.listsMembers() {
			return w.writeEnumMembers(ctx, typ)
		}
	}
	return nil
}

func (w *Writer) writeMemberList(ctx context.Context, typ *symbol.Symbol) error {
	members := w.comparer.Sorted(w.filter.VisibleMembers(typ))
	if len(members) == 0 {
		return nil
	}
	if err := w.backend.Start(NodeMembers, w.entry()); err != nil {
		return err
	}
	for i, member := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := w.entry()
		entry.Symbol = member
		if i > 0 && w.separatesMembers(members[i-1], member) {
			if err := w.backend.Separator(NodeMember, entry); err != nil {
				return err
			}
		}
		if err := w.backend.Start(NodeMember, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeMember, entry, w.formats.Member); err != nil {
			return err
		}
		if err := w.backend.End(NodeMember, entry); err != nil {
			return err
		}
	}
	return w.backend.End(NodeMembers, w.entry())
}

func (w *Writer) separatesMembers(previous, next *symbol.Symbol) bool {
	if w.format.EmptyLineBetweenMembers {
		return true
	}
	return w.format.EmptyLineBetweenMemberGroups && previous.DeclarationKind() != next.DeclarationKind()
}

// writeEnumMembers writes public enum fields in declaration order
func (w *Writer) writeEnumMembers(ctx context.Context, typ *symbol.Symbol) error {
	var fields []*symbol.Symbol
	for _, member := range typ.Members {
		if member.Kind == symbol.KindField && member.Accessibility == symbol.AccessibilityPublic {
			fields = append(fields, member)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	if err := w.backend.Start(NodeEnumMembers, w.entry()); err != nil {
		return err
	}
	for i, field := range fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := w.entry()
		entry.Symbol = field
		if i > 0 {
			if err := w.backend.Separator(NodeEnumMember, entry); err != nil {
				return err
			}
		}
		if err := w.backend.Start(NodeEnumMember, entry); err != nil {
			return err
		}
		if err := w.writeDefinition(NodeEnumMember, entry, w.formats.EnumMember); err != nil {
			return err
		}
		if err := w.backend.End(NodeEnumMember, entry); err != nil {
			return err
		}
	}
	return w.backend.End(NodeEnumMembers, w.entry())
}

// writeDefinition renders the entry symbol and emits its write event with documentation and attributes
func (w *Writer) writeDefinition(node Node, entry *Entry, format *display.Format) error {
	if entry.Symbol != nil {
		parts, err := display.DefinitionParts(entry.Symbol, format)
		if err != nil {
			return errors.Errorf("failed to render %v: %w", entry.Symbol.QualifiedName(), err)
		}
		entry.Definition = parts
	}
	if w.capabilities.DefinitionFirst {
		if err := w.backend.Write(node, entry); err != nil {
			return err
		}
		return w.writeDecorations(node, entry)
	}
	if err := w.writeDecorations(node, entry); err != nil {
		return err
	}
	return w.backend.Write(node, entry)
}

func (w *Writer) writeDecorations(node Node, entry *Entry) error {
	s := entry.Symbol
	if s == nil {
		return nil
	}
	if w.documentation != nil {
		if doc := w.documentation.Documentation(s); !doc.IsEmpty() {
			docEntry := *entry
			docEntry.Documentation = doc
			if err := w.backend.Documentation(node, &docEntry); err != nil {
				return err
			}
		}
	}
	if node != NodeNamespace && w.format.Includes(PartAttributes) {
		return w.writeAttributes(s.Attributes, s, false)
	}
	return nil
}

// writeAttributes writes visible attributes ordered by class
func (w *Writer) writeAttributes(attributes []*symbol.Attribute, context *symbol.Symbol, assemblyLevel bool) error {
	visible := w.filter.VisibleAttributes(attributes)
	if len(visible) == 0 {
		return nil
	}
	slices.SortStableFunc(visible, func(x, y *symbol.Attribute) int {
		return w.comparer.Compare(x.Class, y.Class)
	})
	list := w.entry()
	list.Symbol = context
	list.AssemblyLevel = assemblyLevel
	if err := w.backend.Start(NodeAttributes, list); err != nil {
		return err
	}
	for i, attribute := range visible {
		parts, err := display.Attribute(attribute, w.formats.Member, context)
		if err != nil {
			return errors.Errorf("failed to render attribute %v: %w", attribute.FullMetadataName(), err)
		}
		entry := *list
		entry.Attribute = attribute
		entry.Definition = parts
		if i > 0 {
			if err := w.backend.Separator(NodeAttribute, &entry); err != nil {
				return err
			}
		}
		if err := w.backend.Start(NodeAttribute, &entry); err != nil {
			return err
		}
		if err := w.backend.Write(NodeAttribute, &entry); err != nil {
			return err
		}
		if err := w.backend.End(NodeAttribute, &entry); err != nil {
			return err
		}
	}
	return w.backend.End(NodeAttributes, list)
}
