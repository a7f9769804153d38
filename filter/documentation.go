package filter

import "github.com/viant/symdef/metadata"

// DocumentationIgnoredAttributes lists attribute classes that carry no documentation value
var DocumentationIgnoredAttributes = []string{
	"System.Diagnostics.CodeAnalysis.SuppressMessageAttribute",
	"System.Diagnostics.ConditionalAttribute",
	"System.Diagnostics.DebuggableAttribute",
	"System.Diagnostics.DebuggerBrowsableAttribute",
	"System.Diagnostics.DebuggerDisplayAttribute",
	"System.Diagnostics.DebuggerHiddenAttribute",
	"System.Diagnostics.DebuggerNonUserCodeAttribute",
	"System.Diagnostics.DebuggerStepperBoundaryAttribute",
	"System.Diagnostics.DebuggerStepThroughAttribute",
	"System.Diagnostics.DebuggerTypeProxyAttribute",
	"System.Diagnostics.DebuggerVisualizerAttribute",
	"System.Reflection.DefaultMemberAttribute",
	"System.Reflection.AssemblyConfigurationAttribute",
	"System.Reflection.AssemblyCultureAttribute",
	"System.Reflection.AssemblyVersionAttribute",
	"System.Runtime.CompilerServices.AsyncIteratorStateMachineAttribute",
	"System.Runtime.CompilerServices.AsyncStateMachineAttribute",
	"System.Runtime.CompilerServices.CompilationRelaxationsAttribute",
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute",
	"System.Runtime.CompilerServices.IsReadOnlyAttribute",
	"System.Runtime.CompilerServices.InternalsVisibleToAttribute",
	"System.Runtime.CompilerServices.IteratorStateMachineAttribute",
	"System.Runtime.CompilerServices.MethodImplAttribute",
	"System.Runtime.CompilerServices.RuntimeCompatibilityAttribute",
	"System.Runtime.CompilerServices.StateMachineAttribute",
	"System.Runtime.CompilerServices.TupleElementNamesAttribute",
	"System.Runtime.CompilerServices.TypeForwardedFromAttribute",
	"System.Runtime.CompilerServices.TypeForwardedToAttribute",
}

// Documentation returns options used for public API documentation
func Documentation() *Options {
	names := make([]metadata.Name, 0, len(DocumentationIgnoredAttributes))
	for _, text := range DocumentationIgnoredAttributes {
		names = append(names, metadata.MustParse(text))
	}
	return New(
		WithVisibility(VisibilityPublic),
		WithGroups(GroupAll),
		WithAttributeRules(&IgnoredAttributeName{Names: metadata.NewSet(names...)}),
	)
}
