package filter

// Outcome represents a filter evaluation result
type Outcome int

const (
	Success Outcome = iota
	NotVisible
	UnsupportedGroup
	Ignored
	HasAttribute
	HasNotAttribute
	ImplicitlyDeclared
	Other
)

var outcomeNames = [...]string{"success", "notVisible", "unsupportedGroup", "ignored", "hasAttribute", "hasNotAttribute", "implicitlyDeclared", "other"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}
