package symbol

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Accessibility represents declared accessibility
type Accessibility int

const (
	AccessibilityNotApplicable Accessibility = iota
	AccessibilityPrivate
	AccessibilityProtectedAndInternal
	AccessibilityProtected
	AccessibilityInternal
	AccessibilityProtectedOrInternal
	AccessibilityPublic
)

var accessibilityKeywords = [...]string{"", "private", "private protected", "protected", "internal", "protected internal", "public"}

// Keyword returns the accessibility as written in source
func (a Accessibility) Keyword() string {
	if a < 0 || int(a) >= len(accessibilityKeywords) {
		return ""
	}
	return accessibilityKeywords[a]
}

func (a Accessibility) String() string {
	if a == AccessibilityNotApplicable {
		return "notApplicable"
	}
	return a.Keyword()
}

// ParseAccessibility maps source keywords to accessibility, empty text means not applicable
func ParseAccessibility(text string) (Accessibility, error) {
	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	switch text {
	case "internal protected":
		return AccessibilityProtectedOrInternal, nil
	case "protected private":
		return AccessibilityProtectedAndInternal, nil
	}
	for i, keyword := range accessibilityKeywords {
		if keyword == text {
			return Accessibility(i), nil
		}
	}
	return 0, errors.Errorf("accessibility %q: %w", text, ErrUnknownValue)
}

// Visibility represents effective visibility of a symbol outside of its assembly
type Visibility int

const (
	VisibilityPublic Visibility = 1 << iota
	VisibilityInternal
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	}
	return "unknown"
}

// Modifiers represents declaration modifiers
type Modifiers uint16

const (
	ModifierStatic Modifiers = 1 << iota
	ModifierAbstract
	ModifierVirtual
	ModifierOverride
	ModifierSealed
	ModifierReadOnly
	ModifierConst
	ModifierExtern
	ModifierVolatile
	ModifierNew
	ModifierPartial
	ModifierAsync
	ModifierUnsafe
)

var modifierKeywords = []struct {
	modifier Modifiers
	keyword  string
}{
	{ModifierNew, "new"},
	{ModifierStatic, "static"},
	{ModifierAbstract, "abstract"},
	{ModifierSealed, "sealed"},
	{ModifierVirtual, "virtual"},
	{ModifierOverride, "override"},
	{ModifierExtern, "extern"},
	{ModifierReadOnly, "readonly"},
	{ModifierConst, "const"},
	{ModifierVolatile, "volatile"},
	{ModifierUnsafe, "unsafe"},
	{ModifierAsync, "async"},
	{ModifierPartial, "partial"},
}

// Has returns true if all modifiers in o are set
func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

// Keywords returns modifier keywords in declaration order
func (m Modifiers) Keywords() []string {
	var result []string
	for _, item := range modifierKeywords {
		if m.Has(item.modifier) {
			result = append(result, item.keyword)
		}
	}
	return result
}

// ParseModifier maps a keyword to a modifier
func ParseModifier(keyword string) (Modifiers, error) {
	keyword = strings.TrimSpace(keyword)
	for _, item := range modifierKeywords {
		if item.keyword == keyword {
			return item.modifier, nil
		}
	}
	return 0, errors.Errorf("modifier %q: %w", keyword, ErrUnknownValue)
}
