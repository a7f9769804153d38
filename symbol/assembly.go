package symbol

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Assembly represents a unit of symbols with an identity
type Assembly struct {
	Name           string       // Assembly name
	Version        string       // Four part version, i.e. 1.0.0.0
	Culture        string       // Culture name, empty means neutral
	PublicKeyToken string       // Public key token, empty means null
	Attributes     []*Attribute // Assembly level attributes
	Global         *Symbol      // Global namespace
}

// NewAssembly creates an assembly with an empty global namespace
func NewAssembly(name string) *Assembly {
	ret := &Assembly{Name: name}
	ret.Global = &Symbol{Kind: KindNamespace, Assembly: ret}
	return ret
}

// Identity returns display identity of the assembly
func (a *Assembly) Identity() string {
	version := a.Version
	if version == "" {
		version = "0.0.0.0"
	}
	culture := a.Culture
	if culture == "" {
		culture = "neutral"
	}
	token := a.PublicKeyToken
	if token == "" {
		token = "null"
	}
	return a.Name + ", Version=" + version + ", Culture=" + culture + ", PublicKeyToken=" + token
}

// Namespace returns a namespace by dotted name creating missing segments, empty name returns global namespace
func (a *Assembly) Namespace(dotted string) *Symbol {
	ns := a.Global
	if dotted == "" {
		return ns
	}
	for _, name := range strings.Split(dotted, ".") {
		ns = ns.EnsureNamespace(name)
	}
	return ns
}

// Types returns all types including nested ones in declaration order matching predicate
func (a *Assembly) Types(predicate func(*Symbol) bool) []*Symbol {
	var result []*Symbol
	var visit func(s *Symbol)
	visit = func(s *Symbol) {
		for _, member := range s.Members {
			switch member.Kind {
			case KindNamespace:
				visit(member)
			case KindType:
				if predicate == nil || predicate(member) {
					result = append(result, member)
				}
				visit(member)
			}
		}
	}
	if a.Global != nil {
		visit(a.Global)
	}
	return result
}

// Namespaces returns all non global namespaces in declaration order
func (a *Assembly) Namespaces() []*Symbol {
	var result []*Symbol
	var visit func(s *Symbol)
	visit = func(s *Symbol) {
		for _, member := range s.Members {
			if member.Kind == KindNamespace {
				result = append(result, member)
				visit(member)
			}
		}
	}
	if a.Global != nil {
		visit(a.Global)
	}
	return result
}

// FindType returns a type by full metadata name, i.e. A.B.Outer+Inner`1
func (a *Assembly) FindType(fullMetadataName string) *Symbol {
	for _, candidate := range a.Types(nil) {
		if candidate.FullMetadataName() == fullMetadataName {
			return candidate
		}
	}
	return nil
}

// CompareVersions orders four part assembly versions, malformed versions compare as text
func CompareVersions(x, y string) int {
	cx, cy := canonicalVersion(x), canonicalVersion(y)
	if cx != "" && cy != "" {
		if ret := semver.Compare(cx, cy); ret != 0 {
			return ret
		}
	}
	return strings.Compare(x, y)
}

func canonicalVersion(version string) string {
	if version == "" {
		version = "0.0.0"
	}
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	ret := semver.Canonical("v" + strings.Join(parts, "."))
	return ret
}
