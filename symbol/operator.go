package symbol

const (
	// ImplicitConversionName is the metadata name of implicit conversion operators
	ImplicitConversionName = "op_Implicit"
	// ExplicitConversionName is the metadata name of explicit conversion operators
	ExplicitConversionName = "op_Explicit"
)

var binaryOperators = map[string]string{
	"+":   "op_Addition",
	"-":   "op_Subtraction",
	"*":   "op_Multiply",
	"/":   "op_Division",
	"%":   "op_Modulus",
	"&":   "op_BitwiseAnd",
	"|":   "op_BitwiseOr",
	"^":   "op_ExclusiveOr",
	"<<":  "op_LeftShift",
	">>":  "op_RightShift",
	">>>": "op_UnsignedRightShift",
	"==":  "op_Equality",
	"!=":  "op_Inequality",
	"<":   "op_LessThan",
	">":   "op_GreaterThan",
	"<=":  "op_LessThanOrEqual",
	">=":  "op_GreaterThanOrEqual",
}

var unaryOperators = map[string]string{
	"+":     "op_UnaryPlus",
	"-":     "op_UnaryNegation",
	"!":     "op_LogicalNot",
	"~":     "op_OnesComplement",
	"++":    "op_Increment",
	"--":    "op_Decrement",
	"true":  "op_True",
	"false": "op_False",
}

var operatorTokens = func() map[string]string {
	ret := make(map[string]string, len(binaryOperators)+len(unaryOperators))
	for token, name := range binaryOperators {
		ret[name] = token
	}
	for token, name := range unaryOperators {
		ret[name] = token
	}
	return ret
}()

// OperatorName returns metadata name of an operator token
func OperatorName(token string, unary bool) (string, bool) {
	if unary {
		if name, ok := unaryOperators[token]; ok {
			return name, true
		}
	}
	name, ok := binaryOperators[token]
	return name, ok
}

// OperatorToken returns the source token of an operator metadata name
func OperatorToken(name string) (string, bool) {
	token, ok := operatorTokens[name]
	return token, ok
}
