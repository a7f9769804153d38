package writer

import (
	"github.com/viant/symdef/display"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrDepth is returned when a backend closes more levels than it opened
var ErrDepth = errors.New("cannot decrease depth")

// Node represents a definition tree node kind
type Node int

const (
	NodeDocument Node = iota
	NodeAssemblies
	NodeAssembly
	NodeNamespaces
	NodeNamespace
	NodeTypes
	NodeType
	NodeMembers
	NodeMember
	NodeEnumMembers
	NodeEnumMember
	NodeAttributes
	NodeAttribute
)

var nodeNames = [...]string{
	"document", "assemblies", "assembly", "namespaces", "namespace", "types", "type",
	"members", "member", "enumMembers", "enumMember", "attributes", "attribute",
}

func (n Node) String() string {
	if n < 0 || int(n) >= len(nodeNames) {
		return "unknown"
	}
	return nodeNames[n]
}

// Entry represents data of a tree event
type Entry struct {
	Format        *Format               // List format, set on every event
	Symbol        *symbol.Symbol        // Namespace, type or member, nil for the interface hierarchy root
	Assembly      *symbol.Assembly      // Assembly of assembly events
	Assemblies    []*symbol.Assembly    // Ordered assemblies of the assembly list start event
	Attribute     *symbol.Attribute     // Attribute of attribute events
	Definition    display.Parts         // Rendered definition of write events
	Documentation *symbol.Documentation // Documentation of documentation events
	AssemblyLevel bool                  // Whether attribute events belong to an assembly
}

// Capabilities represents backend specific rendering preferences
type Capabilities struct {
	Multiline            bool // Whether definitions may span lines
	DefinitionFirst      bool // Whether documentation and attributes follow the definition write event
	OmitNamespaceKeyword bool // Whether namespace definitions are written without the namespace keyword
}

// Backend represents a definition tree output format.
// Start, Write and End are emitted for every node, Separator between siblings only.
type Backend interface {
	Capabilities() Capabilities
	Start(node Node, entry *Entry) error
	Write(node Node, entry *Entry) error
	End(node Node, entry *Entry) error
	Separator(node Node, entry *Entry) error
	Documentation(node Node, entry *Entry) error
}

// Depth tracks backend nesting level
type Depth struct {
	level int
}

// Level returns current level
func (d *Depth) Level() int {
	return d.level
}

// Increase opens a level
func (d *Depth) Increase() {
	d.level++
}

// Decrease closes a level, it fails at level zero
func (d *Depth) Decrease() error {
	if d.level == 0 {
		return ErrDepth
	}
	d.level--
	return nil
}
