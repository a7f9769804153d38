package filter

import (
	"github.com/viant/symdef/metadata"
	"github.com/viant/symdef/symbol"
)

// SymbolRule represents a symbol rule, a rule that does not match yields its outcome
type SymbolRule interface {
	Outcome() Outcome
	Matches(s *symbol.Symbol) bool
}

// AttributeRule represents an attribute rule, a rule that does not match yields its outcome
type AttributeRule interface {
	Outcome() Outcome
	Matches(a *symbol.Attribute) bool
}

// Evaluate runs rules in order, the first rule that does not match wins
func Evaluate(s *symbol.Symbol, rules []SymbolRule) Outcome {
	for _, rule := range rules {
		if !rule.Matches(s) {
			return rule.Outcome()
		}
	}
	return Success
}

// EvaluateAttribute runs attribute rules in order, the first rule that does not match wins
func EvaluateAttribute(a *symbol.Attribute, rules []AttributeRule) Outcome {
	for _, rule := range rules {
		if !rule.Matches(a) {
			return rule.Outcome()
		}
	}
	return Success
}

// IgnoredName rejects symbols declared in an ignored namespace, and ignored namespaces or types themselves
type IgnoredName struct {
	Names *metadata.Set
}

func (r *IgnoredName) Outcome() Outcome { return Ignored }

func (r *IgnoredName) Matches(s *symbol.Symbol) bool {
	if r.Names.Covers(s.Containing) {
		return false
	}
	switch s.Kind {
	case symbol.KindNamespace, symbol.KindType:
		if r.Names.Contains(s) {
			return false
		}
	}
	return true
}

// WithAttribute requires an attribute of one of the given classes
type WithAttribute struct {
	Names *metadata.Set
}

func (r *WithAttribute) Outcome() Outcome { return HasNotAttribute }

func (r *WithAttribute) Matches(s *symbol.Symbol) bool {
	for _, attribute := range s.Attributes {
		if r.Names.Contains(attribute.Class) {
			return true
		}
	}
	return false
}

// WithoutAttribute forbids attributes of the given classes
type WithoutAttribute struct {
	Names *metadata.Set
}

func (r *WithoutAttribute) Outcome() Outcome { return HasAttribute }

func (r *WithoutAttribute) Matches(s *symbol.Symbol) bool {
	for _, attribute := range s.Attributes {
		if r.Names.Contains(attribute.Class) {
			return false
		}
	}
	return true
}

// Predicate matches symbols with an arbitrary function
type Predicate struct {
	Fn     func(s *symbol.Symbol) bool
	Result Outcome
}

// NewPredicate creates a predicate rule
func NewPredicate(fn func(s *symbol.Symbol) bool, outcome Outcome) *Predicate {
	return &Predicate{Fn: fn, Result: outcome}
}

func (r *Predicate) Outcome() Outcome { return r.Result }

func (r *Predicate) Matches(s *symbol.Symbol) bool { return r.Fn(s) }

// Invert returns a rule matching symbols this rule does not match
func (r *Predicate) Invert() *Predicate {
	fn := r.Fn
	return &Predicate{Fn: func(s *symbol.Symbol) bool { return !fn(s) }, Result: r.Result}
}

// IgnoredAttributeName rejects attributes of the given classes
type IgnoredAttributeName struct {
	Names *metadata.Set
}

func (r *IgnoredAttributeName) Outcome() Outcome { return Ignored }

func (r *IgnoredAttributeName) Matches(a *symbol.Attribute) bool {
	return !r.Names.Contains(a.Class)
}
