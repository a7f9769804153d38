package filter

import (
	"github.com/hashicorp/go-multierror"
	"github.com/viant/symdef/metadata"
	"github.com/viant/symdef/symbol"
)

// Options represents symbol and attribute filtering policy, it is read only once built
type Options struct {
	Visibility     VisibilityFilter
	Groups         Group
	Rules          []SymbolRule
	AttributeRules []AttributeRule
}

// Option represents a filter option
type Option func(*Options)

// WithVisibility sets visible levels
func WithVisibility(visibility VisibilityFilter) Option {
	return func(o *Options) {
		o.Visibility = visibility
	}
}

// WithGroups sets included symbol groups
func WithGroups(groups Group) Option {
	return func(o *Options) {
		o.Groups = groups
	}
}

// WithRules appends symbol rules
func WithRules(rules ...SymbolRule) Option {
	return func(o *Options) {
		o.Rules = append(o.Rules, rules...)
	}
}

// WithAttributeRules appends attribute rules
func WithAttributeRules(rules ...AttributeRule) Option {
	return func(o *Options) {
		o.AttributeRules = append(o.AttributeRules, rules...)
	}
}

// New creates options, by default every visibility and every type or member group is included
func New(opts ...Option) *Options {
	ret := &Options{Visibility: VisibilityAll, Groups: GroupTypeOrMember}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Names represents metadata name lists used to build name based rules
type Names struct {
	Ignored           []string // Ignored namespaces and types
	IgnoredAttributes []string // Ignored attribute classes
	WithAttributes    []string // Required attribute classes
	WithoutAttributes []string // Forbidden attribute classes
}

// Options returns rule options, every malformed name is reported
func (n *Names) Options() ([]Option, error) {
	var result []Option
	var errs error
	build := func(texts []string, fn func(set *metadata.Set)) {
		if len(texts) == 0 {
			return
		}
		set, err := metadata.ParseSet(texts)
		if err != nil {
			errs = multierror.Append(errs, err)
			return
		}
		fn(set)
	}
	build(n.Ignored, func(set *metadata.Set) {
		result = append(result, WithRules(&IgnoredName{Names: set}))
	})
	build(n.WithAttributes, func(set *metadata.Set) {
		result = append(result, WithRules(&WithAttribute{Names: set}))
	})
	build(n.WithoutAttributes, func(set *metadata.Set) {
		result = append(result, WithRules(&WithoutAttribute{Names: set}))
	})
	build(n.IgnoredAttributes, func(set *metadata.Set) {
		result = append(result, WithAttributeRules(&IgnoredAttributeName{Names: set}))
	})
	if errs != nil {
		return nil, errs
	}
	return result, nil
}

// Includes returns true if all given groups are included
func (o *Options) Includes(group Group) bool {
	return o.Groups.Has(group)
}

// IsVisible returns true if the symbol evaluates to success
func (o *Options) IsVisible(s *symbol.Symbol) bool {
	return o.Evaluate(s) == Success
}

// IsVisibleAttribute returns true if the attribute evaluates to success
func (o *Options) IsVisibleAttribute(a *symbol.Attribute) bool {
	return o.EvaluateAttribute(a) == Success
}

// EvaluateAttribute returns attribute outcome
func (o *Options) EvaluateAttribute(a *symbol.Attribute) Outcome {
	return EvaluateAttribute(a, o.AttributeRules)
}

// Evaluate returns symbol outcome, kind specific checks run before the rule chain
func (o *Options) Evaluate(s *symbol.Symbol) Outcome {
	switch s.Kind {
	case symbol.KindNamespace:
		return Evaluate(s, o.Rules)
	case symbol.KindType:
		return o.evaluateType(s)
	case symbol.KindMethod:
		return o.evaluateMethod(s)
	case symbol.KindField, symbol.KindProperty, symbol.KindEvent:
		return o.evaluateMember(s)
	}
	return Other
}

func (o *Options) evaluateType(s *symbol.Symbol) Outcome {
	if s.Implicit {
		return ImplicitlyDeclared
	}
	if !o.Includes(TypeGroup(s.TypeKind())) {
		return UnsupportedGroup
	}
	if !o.Visibility.Includes(s.Visibility()) {
		return NotVisible
	}
	return Evaluate(s, o.Rules)
}

func (o *Options) evaluateMember(s *symbol.Symbol) Outcome {
	if s.Implicit {
		return ImplicitlyDeclared
	}
	if !o.Includes(MemberGroup(s)) {
		return UnsupportedGroup
	}
	if !o.Visibility.Includes(s.Visibility()) {
		return NotVisible
	}
	return Evaluate(s, o.Rules)
}

func (o *Options) evaluateMethod(s *symbol.Symbol) Outcome {
	if !o.Includes(GroupMethod) {
		return UnsupportedGroup
	}
	canBeImplicit := false
	switch s.MethodKind() {
	case symbol.MethodConstructor:
		containing := s.ContainingType()
		switch {
		case containing == nil:
		case containing.Is(symbol.TypeKindEnum):
			return ImplicitlyDeclared
		case containing.Is(symbol.TypeKindStruct) && len(s.Parameters()) == 0:
			return ImplicitlyDeclared
		case containing.Is(symbol.TypeKindClass) && len(s.Parameters()) == 0:
			canBeImplicit = true
		}
	case symbol.MethodOrdinary, symbol.MethodUserDefinedOperator, symbol.MethodConversion,
		symbol.MethodStaticConstructor, symbol.MethodDestructor, symbol.MethodExplicitInterfaceImplementation:
	default:
		return Other
	}
	if !canBeImplicit && s.Implicit {
		return ImplicitlyDeclared
	}
	if !o.Visibility.Includes(s.Visibility()) {
		return NotVisible
	}
	return Evaluate(s, o.Rules)
}

// VisibleMembers returns members of a type that evaluate to success in declaration order
func (o *Options) VisibleMembers(typ *symbol.Symbol) []*symbol.Symbol {
	var result []*symbol.Symbol
	for _, member := range typ.Members {
		if member.Kind == symbol.KindType {
			continue
		}
		if o.IsVisible(member) {
			result = append(result, member)
		}
	}
	return result
}

// VisibleAttributes returns visible attributes in declaration order
func (o *Options) VisibleAttributes(attributes []*symbol.Attribute) []*symbol.Attribute {
	var result []*symbol.Attribute
	for _, attribute := range attributes {
		if o.IsVisibleAttribute(attribute) {
			result = append(result, attribute)
		}
	}
	return result
}
