package csharp

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

var errExpression = errors.New("unsupported constant expression")

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenNumber
	tokenString
	tokenChar
	tokenPunctuation
)

type token struct {
	kind tokenKind
	text string // Source text, unescaped value for strings and chars
}

// defaultLiteral represents the target typed default literal
type defaultLiteral struct{}

var punctuations = []string{"<<", ">>", "::", "&&", "||", "==", "!="}

func lexExpression(text string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '@' && i+1 < len(text) && text[i+1] == '"':
			value, n, err := verbatimString(text[i+1:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: value})
			i += 1 + n
		case r == '"':
			value, n, err := quotedLiteral(text[i:], '"')
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: value})
			i += n
		case r == '\'':
			value, n, err := quotedLiteral(text[i:], '\'')
			if err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(value) != 1 {
				return nil, errors.Errorf("char literal %q: %w", value, errExpression)
			}
			tokens = append(tokens, token{kind: tokenChar, text: value})
			i += n
		case unicode.IsDigit(r) || r == '.' && i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9':
			start := i
			for i < len(text) {
				c := text[i]
				if c == '.' && i+1 < len(text) && (text[i+1] < '0' || text[i+1] > '9') {
					break
				}
				if (c == '+' || c == '-') && (text[i-1] == 'e' || text[i-1] == 'E') && !strings.HasPrefix(strings.ToLower(text[start:]), "0x") {
					i++
					continue
				}
				if c != '.' && c != '_' && !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
					break
				}
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text[start:i]})
		case r == '@' || r == '_' || unicode.IsLetter(r):
			start := i
			i += size
			for i < len(text) {
				next, n := utf8.DecodeRuneInString(text[i:])
				if next != '_' && !unicode.IsLetter(next) && !unicode.IsDigit(next) {
					break
				}
				i += n
			}
			tokens = append(tokens, token{kind: tokenIdentifier, text: strings.TrimPrefix(text[start:i], "@")})
		case r == '$':
			return nil, errors.Errorf("interpolated string: %w", errExpression)
		default:
			punctuation := string(r)
			for _, candidate := range punctuations {
				if strings.HasPrefix(text[i:], candidate) {
					punctuation = candidate
					break
				}
			}
			tokens = append(tokens, token{kind: tokenPunctuation, text: punctuation})
			i += len(punctuation)
		}
	}
	return tokens, nil
}

func verbatimString(text string) (string, int, error) {
	builder := strings.Builder{}
	for i := 1; i < len(text); i++ {
		if text[i] != '"' {
			builder.WriteByte(text[i])
			continue
		}
		if i+1 < len(text) && text[i+1] == '"' {
			builder.WriteByte('"')
			i++
			continue
		}
		return builder.String(), i + 1, nil
	}
	return "", 0, errors.Errorf("unterminated string: %w", errExpression)
}

func quotedLiteral(text string, delimiter byte) (string, int, error) {
	if strings.HasPrefix(text, `"""`) {
		return "", 0, errors.Errorf("raw string: %w", errExpression)
	}
	builder := strings.Builder{}
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case c == delimiter:
			return builder.String(), i + 1, nil
		case c == '\\' && i+1 < len(text):
			i++
			switch text[i] {
			case 'n':
				builder.WriteByte('\n')
			case 'r':
				builder.WriteByte('\r')
			case 't':
				builder.WriteByte('\t')
			case '0':
				builder.WriteByte(0)
			case 'a':
				builder.WriteByte('\a')
			case 'b':
				builder.WriteByte('\b')
			case 'f':
				builder.WriteByte('\f')
			case 'v':
				builder.WriteByte('\v')
			case 'e':
				builder.WriteByte(0x1b)
			case 'u', 'x', 'U':
				digits := 4
				if text[i] == 'U' {
					digits = 8
				}
				end := i + 1
				for end < len(text) && end < i+1+digits && isHex(text[end]) {
					end++
				}
				code, err := strconv.ParseUint(text[i+1:end], 16, 32)
				if err != nil {
					return "", 0, errors.Errorf("escape %q: %w", text[i-1:end], errExpression)
				}
				builder.WriteRune(rune(code))
				i = end - 1
			default:
				builder.WriteByte(text[i])
			}
		default:
			builder.WriteByte(c)
		}
	}
	return "", 0, errors.Errorf("unterminated literal: %w", errExpression)
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// pendingConstant represents a constant field or enum member initializer evaluated on demand
type pendingConstant struct {
	field      *symbol.Symbol
	text       string
	scope      *scope
	previous   *symbol.Symbol // Preceding enum member
	evaluating bool
}

// evaluator computes typed constants of initializers, attribute arguments and parameter defaults
type evaluator struct {
	resolver *resolver
	pending  map[*symbol.Symbol]*pendingConstant
}

func newEvaluator(resolver *resolver) *evaluator {
	return &evaluator{resolver: resolver, pending: map[*symbol.Symbol]*pendingConstant{}}
}

// postpone registers a constant field whose value is computed by resolveConstants
func (e *evaluator) postpone(field *symbol.Symbol, text string, sc *scope, previous *symbol.Symbol) {
	e.pending[field] = &pendingConstant{field: field, text: text, scope: sc, previous: previous}
}

func (e *evaluator) resolveConstants(fields []*symbol.Symbol) {
	for _, field := range fields {
		e.fieldConstant(field)
	}
}

// fieldConstant returns the constant value of a field evaluating its initializer when needed
func (e *evaluator) fieldConstant(field *symbol.Symbol) *symbol.Constant {
	if field.Field == nil {
		return nil
	}
	item, ok := e.pending[field]
	if !ok {
		return field.Field.Constant
	}
	if item.evaluating {
		return nil
	}
	item.evaluating = true
	defer delete(e.pending, field)
	typ := field.Field.Type
	if item.text == "" {
		// enum member without initializer
		value := int64(0)
		if item.previous != nil {
			if previous := e.fieldConstant(item.previous); previous != nil {
				if v, ok := previous.Int64(); ok {
					value = v + 1
				}
			}
		}
		field.Field.Constant = symbol.EnumValue(typ, value)
		return field.Field.Constant
	}
	field.Field.Constant = e.evaluate(item.text, item.scope, typ)
	return field.Field.Constant
}

// evaluate returns a constant of the expression converted to target, unsupported expressions keep their text
func (e *evaluator) evaluate(text string, sc *scope, target *symbol.TypeRef) *symbol.Constant {
	text = strings.TrimSpace(text)
	tokens, err := lexExpression(text)
	if err == nil {
		x := &expression{evaluator: e, scope: sc, tokens: tokens, target: target}
		var ret *symbol.Constant
		if ret, err = x.parse(); err == nil {
			if ret, err = e.convert(ret, target); err == nil {
				return ret
			}
		}
	}
	return &symbol.Constant{Kind: symbol.ConstantPrimitive, Type: target, Text: strings.Join(strings.Fields(text), " ")}
}

// expression evaluates one expression token stream
type expression struct {
	evaluator *evaluator
	scope     *scope
	tokens    []token
	pos       int
	target    *symbol.TypeRef
}

func (x *expression) peek() token {
	if x.pos < len(x.tokens) {
		return x.tokens[x.pos]
	}
	return token{}
}

func (x *expression) next() token {
	ret := x.peek()
	if ret.kind != tokenEOF {
		x.pos++
	}
	return ret
}

func (x *expression) is(text string) bool {
	t := x.peek()
	return t.kind == tokenPunctuation && t.text == text
}

func (x *expression) expect(text string) error {
	if t := x.next(); t.kind != tokenPunctuation || t.text != text {
		return errors.Errorf("expected %q, got %q: %w", text, t.text, errExpression)
	}
	return nil
}

func (x *expression) parse() (*symbol.Constant, error) {
	ret, err := x.binary(0)
	if err != nil {
		return nil, err
	}
	if t := x.peek(); t.kind != tokenEOF {
		return nil, errors.Errorf("unexpected %q: %w", t.text, errExpression)
	}
	return ret, nil
}

var precedence = [][]string{{"|"}, {"^"}, {"&"}, {"<<", ">>"}, {"+", "-"}, {"*", "/", "%"}}

func (x *expression) binary(level int) (*symbol.Constant, error) {
	if level == len(precedence) {
		return x.unary()
	}
	left, err := x.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op := ""
		for _, candidate := range precedence[level] {
			if x.is(candidate) {
				op = candidate
			}
		}
		if op == "" {
			return left, nil
		}
		x.next()
		right, err := x.binary(level + 1)
		if err != nil {
			return nil, err
		}
		if left, err = x.evaluator.binary(op, left, right); err != nil {
			return nil, err
		}
	}
}

func (x *expression) unary() (*symbol.Constant, error) {
	t := x.peek()
	if t.kind == tokenPunctuation {
		switch t.text {
		case "-", "+", "~", "!":
			x.next()
			operand, err := x.unary()
			if err != nil {
				return nil, err
			}
			return x.evaluator.unary(t.text, operand)
		case "(":
			if typ, ok := x.castType(); ok {
				operand, err := x.unary()
				if err != nil {
					return nil, err
				}
				return x.evaluator.convert(operand, typ)
			}
		}
	}
	return x.primary()
}

// castType consumes a parenthesized type followed by a cast operand
func (x *expression) castType() (*symbol.TypeRef, bool) {
	depth := 0
	var parts []string
	end := -1
	for i := x.pos; i < len(x.tokens); i++ {
		t := x.tokens[i]
		if t.kind == tokenPunctuation {
			switch t.text {
			case "(":
				depth++
				if depth > 1 {
					return nil, false
				}
				continue
			case ")":
				depth--
			case ".", "<", ">", ",", "[", "]", "?", "::":
			default:
				return nil, false
			}
		} else if t.kind != tokenIdentifier {
			return nil, false
		}
		if depth == 0 {
			end = i
			break
		}
		parts = append(parts, t.text)
	}
	if end == -1 || len(parts) == 0 || end+1 >= len(x.tokens) {
		return nil, false
	}
	text := strings.Join(parts, " ")
	if _, err := parseTypeName(text); err != nil {
		return nil, false
	}
	after := x.tokens[end+1]
	switch after.kind {
	case tokenIdentifier, tokenNumber, tokenString, tokenChar:
	case tokenPunctuation:
		switch after.text {
		case "(", "~", "!":
		case "-", "+":
			if _, ok := symbol.KeywordTypes[text]; !ok {
				return nil, false
			}
		default:
			return nil, false
		}
	default:
		return nil, false
	}
	x.pos = end + 1
	return x.evaluator.resolver.resolve(text, x.scope), true
}

func (x *expression) primary() (*symbol.Constant, error) {
	corlib := x.evaluator.resolver.corlib
	t := x.next()
	switch t.kind {
	case tokenNumber:
		return numberLiteral(corlib, t.text)
	case tokenString:
		return symbol.Primitive(corlib.Keyword("string"), t.text), nil
	case tokenChar:
		r, _ := utf8.DecodeRuneInString(t.text)
		return symbol.Primitive(corlib.Keyword("char"), int64(r)), nil
	case tokenPunctuation:
		if t.text == "(" {
			ret, err := x.binary(0)
			if err != nil {
				return nil, err
			}
			return ret, x.expect(")")
		}
		return nil, errors.Errorf("unexpected %q: %w", t.text, errExpression)
	case tokenIdentifier:
		switch t.text {
		case "true", "false":
			return symbol.Primitive(corlib.Keyword("bool"), t.text == "true"), nil
		case "null":
			return symbol.Primitive(nil, nil), nil
		case "default":
			if !x.is("(") {
				return &symbol.Constant{Kind: symbol.ConstantPrimitive, Value: defaultLiteral{}}, nil
			}
			typ, err := x.parenthesizedType()
			if err != nil {
				return nil, err
			}
			return &symbol.Constant{Kind: symbol.ConstantPrimitive, Type: typ, Value: defaultLiteral{}}, nil
		case "typeof":
			typ, err := x.parenthesizedType()
			if err != nil {
				return nil, err
			}
			return symbol.TypeOf(corlib.Ref("System.Type"), typ), nil
		case "nameof":
			if err := x.expect("("); err != nil {
				return nil, err
			}
			name := ""
			for depth, angle := 1, 0; depth > 0; {
				t := x.next()
				switch {
				case t.kind == tokenEOF:
					return nil, errors.Errorf("unterminated nameof: %w", errExpression)
				case t.kind == tokenPunctuation && t.text == "(":
					depth++
				case t.kind == tokenPunctuation && t.text == ")":
					depth--
				case t.kind == tokenPunctuation && t.text == "<":
					angle++
				case t.kind == tokenPunctuation && t.text == ">":
					angle--
				case t.kind == tokenIdentifier && depth == 1 && angle == 0:
					name = t.text
				}
			}
			return symbol.Primitive(corlib.Keyword("string"), name), nil
		case "checked", "unchecked":
			if err := x.expect("("); err != nil {
				return nil, err
			}
			ret, err := x.binary(0)
			if err != nil {
				return nil, err
			}
			return ret, x.expect(")")
		case "new":
			return x.array()
		}
		names := []string{t.text}
		for x.is(".") {
			x.next()
			t := x.next()
			if t.kind != tokenIdentifier {
				return nil, errors.Errorf("expected member name: %w", errExpression)
			}
			names = append(names, t.text)
		}
		return x.evaluator.member(names, x.scope)
	}
	return nil, errors.Errorf("unexpected end of expression: %w", errExpression)
}

func (x *expression) parenthesizedType() (*symbol.TypeRef, error) {
	if err := x.expect("("); err != nil {
		return nil, err
	}
	var parts []string
	for depth := 1; ; {
		t := x.next()
		if t.kind == tokenEOF {
			return nil, errors.Errorf("unterminated type: %w", errExpression)
		}
		if t.kind == tokenPunctuation && t.text == "(" {
			depth++
		}
		if t.kind == tokenPunctuation && t.text == ")" {
			if depth--; depth == 0 {
				break
			}
		}
		parts = append(parts, t.text)
	}
	return x.evaluator.resolver.resolve(strings.Join(parts, " "), x.scope), nil
}

// array evaluates new[] { ... } and new T[] { ... } after the new keyword
func (x *expression) array() (*symbol.Constant, error) {
	var element *symbol.TypeRef
	if !x.is("[") {
		var parts []string
		for !x.is("[") {
			t := x.next()
			if t.kind == tokenEOF || t.kind == tokenPunctuation && (t.text == "(" || t.text == "{") {
				return nil, errors.Errorf("object creation: %w", errExpression)
			}
			parts = append(parts, t.text)
		}
		element = x.evaluator.resolver.resolve(strings.Join(parts, " "), x.scope)
	} else if x.target != nil && x.target.Kind == symbol.TypeRefArray {
		element = x.target.Element
	}
	x.next()
	if x.is("]") {
		x.next()
	} else {
		size := x.next()
		if size.text != "0" {
			return nil, errors.Errorf("sized array: %w", errExpression)
		}
		if err := x.expect("]"); err != nil {
			return nil, err
		}
		if !x.is("{") {
			return x.arrayOf(element, []*symbol.Constant{})
		}
	}
	if err := x.expect("{"); err != nil {
		return nil, err
	}
	values := []*symbol.Constant{}
	for !x.is("}") {
		value, err := x.binary(0)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !x.is(",") {
			break
		}
		x.next()
	}
	if err := x.expect("}"); err != nil {
		return nil, err
	}
	return x.arrayOf(element, values)
}

func (x *expression) arrayOf(element *symbol.TypeRef, values []*symbol.Constant) (*symbol.Constant, error) {
	if element == nil && len(values) > 0 {
		element = values[0].Type
	}
	if element == nil {
		element = x.evaluator.resolver.corlib.Keyword("object")
	}
	for i, value := range values {
		converted, err := x.evaluator.convert(value, element)
		if err != nil {
			return nil, err
		}
		values[i] = converted
	}
	return symbol.ArrayValue(symbol.ArrayOf(element, 1), values), nil
}

// numberLiteral parses an integer or real literal assigning its natural type
func numberLiteral(corlib *symbol.Corlib, text string) (*symbol.Constant, error) {
	lower := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	isHexLiteral := strings.HasPrefix(lower, "0x")
	isReal := !isHexLiteral && (strings.ContainsAny(lower, ".e") || strings.HasSuffix(lower, "f") || strings.HasSuffix(lower, "d") || strings.HasSuffix(lower, "m"))
	if isReal {
		keyword := "double"
		switch lower[len(lower)-1] {
		case 'f':
			keyword = "float"
			lower = lower[:len(lower)-1]
		case 'm':
			keyword = "decimal"
			lower = lower[:len(lower)-1]
		case 'd':
			lower = lower[:len(lower)-1]
		}
		value, err := strconv.ParseFloat(lower, 64)
		if err != nil {
			return nil, errors.Errorf("real literal %q: %w", text, errExpression)
		}
		return symbol.Primitive(corlib.Keyword(keyword), value), nil
	}
	suffix := ""
	for len(lower) > 0 && (lower[len(lower)-1] == 'u' || lower[len(lower)-1] == 'l') {
		suffix = lower[len(lower)-1:] + suffix
		lower = lower[:len(lower)-1]
	}
	base := 10
	switch {
	case isHexLiteral:
		base, lower = 16, lower[2:]
	case strings.HasPrefix(lower, "0b"):
		base, lower = 2, lower[2:]
	}
	value, err := strconv.ParseUint(lower, base, 64)
	if err != nil {
		return nil, errors.Errorf("integer literal %q: %w", text, errExpression)
	}
	var keyword string
	switch suffix {
	case "":
		switch {
		case value <= math.MaxInt32:
			keyword = "int"
		case value <= math.MaxUint32:
			keyword = "uint"
		case value <= math.MaxInt64:
			keyword = "long"
		default:
			keyword = "ulong"
		}
	case "u":
		keyword = "ulong"
		if value <= math.MaxUint32 {
			keyword = "uint"
		}
	case "l":
		keyword = "ulong"
		if value <= math.MaxInt64 {
			keyword = "long"
		}
	default:
		keyword = "ulong"
	}
	if keyword == "ulong" {
		return symbol.Primitive(corlib.Keyword(keyword), value), nil
	}
	return symbol.Primitive(corlib.Keyword(keyword), int64(value)), nil
}

var limits = map[string]map[string]interface{}{
	"System.Int32":  {"MaxValue": int64(math.MaxInt32), "MinValue": int64(math.MinInt32)},
	"System.UInt32": {"MaxValue": int64(math.MaxUint32), "MinValue": int64(0)},
	"System.Int64":  {"MaxValue": int64(math.MaxInt64), "MinValue": int64(math.MinInt64)},
	"System.UInt64": {"MaxValue": uint64(math.MaxUint64), "MinValue": uint64(0)},
	"System.Int16":  {"MaxValue": int64(math.MaxInt16), "MinValue": int64(math.MinInt16)},
	"System.UInt16": {"MaxValue": int64(math.MaxUint16), "MinValue": int64(0)},
	"System.Byte":   {"MaxValue": int64(math.MaxUint8), "MinValue": int64(0)},
	"System.SByte":  {"MaxValue": int64(math.MaxInt8), "MinValue": int64(math.MinInt8)},
	"System.Char":   {"MaxValue": int64(math.MaxUint16), "MinValue": int64(0)},
	"System.Double": {"MaxValue": math.MaxFloat64, "MinValue": -math.MaxFloat64, "Epsilon": 4.9406564584124654e-324, "NaN": math.NaN(), "PositiveInfinity": math.Inf(1), "NegativeInfinity": math.Inf(-1)},
	"System.Single": {"MaxValue": float64(math.MaxFloat32), "MinValue": -float64(math.MaxFloat32), "NaN": math.NaN(), "PositiveInfinity": math.Inf(1), "NegativeInfinity": math.Inf(-1)},
	"System.String": {"Empty": ""},
}

// member evaluates a simple name or member access referring to a constant field or enum member
func (e *evaluator) member(names []string, sc *scope) (*symbol.Constant, error) {
	last := names[len(names)-1]
	if len(names) == 1 {
		for i := len(sc.types) - 1; i >= 0; i-- {
			if ret := e.typeConstant(sc.types[i], last); ret != nil {
				return ret, nil
			}
		}
		return nil, errors.Errorf("name %q: %w", last, errExpression)
	}
	prefix := strings.Join(names[:len(names)-1], ".")
	ref := e.resolver.resolve(prefix, sc)
	if ref.Kind != symbol.TypeRefNamed || ref.Def == nil {
		return nil, errors.Errorf("type %q: %w", prefix, errExpression)
	}
	if values, ok := limits[ref.Def.FullMetadataName()]; ok {
		if value, ok := values[last]; ok {
			return symbol.Primitive(symbol.Named(ref.Def), value), nil
		}
	}
	if ret := e.typeConstant(ref.Def, last); ret != nil {
		return ret, nil
	}
	return nil, errors.Errorf("member %v.%v: %w", prefix, last, errExpression)
}

// typeConstant returns the value of a constant field declared by typ or its base types
func (e *evaluator) typeConstant(typ *symbol.Symbol, name string) *symbol.Constant {
	for depth := 0; typ != nil && depth < 32; depth++ {
		for _, member := range typ.LookupMembers(name) {
			if member.Kind != symbol.KindField || member.Field == nil {
				continue
			}
			if !member.IsConst() && !typ.Is(symbol.TypeKindEnum) {
				continue
			}
			if ret := e.fieldConstant(member); ret != nil && ret.Text == "" {
				return ret
			}
		}
		if typ.Type == nil || typ.Type.BaseType == nil {
			return nil
		}
		typ = typ.Type.BaseType.Def
	}
	return nil
}

func (e *evaluator) keyword(name string) *symbol.TypeRef {
	return e.resolver.corlib.Keyword(name)
}

func (e *evaluator) unary(op string, operand *symbol.Constant) (*symbol.Constant, error) {
	switch v := operand.Value.(type) {
	case bool:
		if op == "!" {
			return symbol.Primitive(operand.Type, !v), nil
		}
	case float64:
		switch op {
		case "-":
			return symbol.Primitive(operand.Type, -v), nil
		case "+":
			return operand, nil
		}
	case uint64:
		switch op {
		case "~":
			return symbol.Primitive(operand.Type, ^v), nil
		case "+":
			return operand, nil
		}
	case int64:
		ret := &symbol.Constant{Kind: operand.Kind, Type: promote(e, operand.Type, operand.Type)}
		if operand.Kind == symbol.ConstantEnum {
			ret.Type = operand.Type
		}
		switch op {
		case "-":
			if special(ret.Type) == symbol.SpecialUInt32 {
				ret.Type = e.keyword("long")
			}
			ret.Value = -v
			return ret, nil
		case "+":
			ret.Value = v
			return ret, nil
		case "~":
			ret.Value = ^v
			if special(ret.Type) == symbol.SpecialUInt32 {
				ret.Value = int64(^uint32(v))
			}
			return ret, nil
		}
	}
	return nil, errors.Errorf("operator %v on %T: %w", op, operand.Value, errExpression)
}

func special(ref *symbol.TypeRef) symbol.SpecialType {
	if ref == nil {
		return symbol.SpecialNone
	}
	return ref.SpecialType()
}

var numericRank = map[symbol.SpecialType]int{
	symbol.SpecialChar:    1,
	symbol.SpecialSByte:   1,
	symbol.SpecialByte:    1,
	symbol.SpecialInt16:   1,
	symbol.SpecialUInt16:  1,
	symbol.SpecialInt32:   1,
	symbol.SpecialUInt32:  2,
	symbol.SpecialInt64:   3,
	symbol.SpecialUInt64:  4,
	symbol.SpecialDecimal: 5,
	symbol.SpecialSingle:  6,
	symbol.SpecialDouble:  7,
}

// promote returns the type of a binary numeric operation
func promote(e *evaluator, x, y *symbol.TypeRef) *symbol.TypeRef {
	rx, ry := numericRank[special(x)], numericRank[special(y)]
	if rx == 6 && ry == 6 {
		return e.keyword("float")
	}
	if rx == 7 || ry == 7 || rx == 6 || ry == 6 {
		return e.keyword("double")
	}
	if rx == 5 || ry == 5 {
		return e.keyword("decimal")
	}
	if rx == 4 || ry == 4 {
		return e.keyword("ulong")
	}
	if rx == 3 || ry == 3 || rx == 2 && ry != 2 && ry != 0 || ry == 2 && rx != 2 && rx != 0 {
		return e.keyword("long")
	}
	if rx == 2 || ry == 2 {
		return e.keyword("uint")
	}
	return e.keyword("int")
}

func (e *evaluator) binary(op string, x, y *symbol.Constant) (*symbol.Constant, error) {
	if xs, ok := x.Value.(string); ok {
		if ys, ok := y.Value.(string); ok && op == "+" {
			return symbol.Primitive(x.Type, xs+ys), nil
		}
		return nil, errors.Errorf("operator %v on strings: %w", op, errExpression)
	}
	if xb, ok := x.Value.(bool); ok {
		yb, ok := y.Value.(bool)
		if !ok {
			return nil, errors.Errorf("operator %v on bool: %w", op, errExpression)
		}
		switch op {
		case "&":
			return symbol.Primitive(x.Type, xb && yb), nil
		case "|":
			return symbol.Primitive(x.Type, xb || yb), nil
		case "^":
			return symbol.Primitive(x.Type, xb != yb), nil
		}
		return nil, errors.Errorf("operator %v on bool: %w", op, errExpression)
	}
	if x.Kind == symbol.ConstantEnum || y.Kind == symbol.ConstantEnum {
		typ := x.Type
		if x.Kind != symbol.ConstantEnum {
			typ = y.Type
		}
		xi, ok1 := x.Int64()
		yi, ok2 := y.Int64()
		if !ok1 || !ok2 {
			return nil, errors.Errorf("operator %v on enum: %w", op, errExpression)
		}
		value, err := integerOp(op, xi, yi)
		if err != nil {
			return nil, err
		}
		return symbol.EnumValue(typ, value), nil
	}
	xf, xIsFloat := x.Value.(float64)
	yf, yIsFloat := y.Value.(float64)
	typ := promote(e, x.Type, y.Type)
	if op == "<<" || op == ">>" {
		typ = promote(e, x.Type, x.Type)
	}
	if xIsFloat || yIsFloat {
		if !xIsFloat {
			xf = toFloat(x.Value)
		}
		if !yIsFloat {
			yf = toFloat(y.Value)
		}
		var value float64
		switch op {
		case "+":
			value = xf + yf
		case "-":
			value = xf - yf
		case "*":
			value = xf * yf
		case "/":
			value = xf / yf
		case "%":
			value = math.Mod(xf, yf)
		default:
			return nil, errors.Errorf("operator %v on real: %w", op, errExpression)
		}
		return symbol.Primitive(typ, value), nil
	}
	if special(typ) == symbol.SpecialUInt64 {
		xu, yu := toUint(x.Value), toUint(y.Value)
		var value uint64
		switch op {
		case "+":
			value = xu + yu
		case "-":
			value = xu - yu
		case "*":
			value = xu * yu
		case "/", "%":
			if yu == 0 {
				return nil, errors.Errorf("division by zero: %w", errExpression)
			}
			value = xu / yu
			if op == "%" {
				value = xu % yu
			}
		case "&":
			value = xu & yu
		case "|":
			value = xu | yu
		case "^":
			value = xu ^ yu
		case "<<":
			value = xu << (yu & 63)
		case ">>":
			value = xu >> (yu & 63)
		}
		return symbol.Primitive(typ, value), nil
	}
	xi, ok1 := x.Int64()
	yi, ok2 := y.Int64()
	if !ok1 || !ok2 {
		return nil, errors.Errorf("operator %v on %T and %T: %w", op, x.Value, y.Value, errExpression)
	}
	value, err := integerOp(op, xi, yi)
	if err != nil {
		return nil, err
	}
	return symbol.Primitive(typ, value), nil
}

func integerOp(op string, x, y int64) (int64, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/", "%":
		if y == 0 {
			return 0, errors.Errorf("division by zero: %w", errExpression)
		}
		if op == "%" {
			return x % y, nil
		}
		return x / y, nil
	case "&":
		return x & y, nil
	case "|":
		return x | y, nil
	case "^":
		return x ^ y, nil
	case "<<":
		return x << (y & 63), nil
	case ">>":
		return x >> (y & 63), nil
	}
	return 0, errors.Errorf("operator %v: %w", op, errExpression)
}

func toFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case uint64:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func toUint(value interface{}) uint64 {
	switch v := value.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}

// convert converts an evaluated constant to the target type, nil target keeps the natural type
func (e *evaluator) convert(c *symbol.Constant, target *symbol.TypeRef) (*symbol.Constant, error) {
	if c.Text != "" && c.Value == nil {
		return c, nil
	}
	if _, ok := c.Value.(defaultLiteral); ok {
		typ := c.Type
		if typ == nil {
			typ = target
		}
		return e.zero(typ), nil
	}
	if c.Kind == symbol.ConstantType || c.Kind == symbol.ConstantArray {
		return c, nil
	}
	typ := target
	if typ == nil || typ.Kind != symbol.TypeRefNamed || typ.Def == nil {
		typ = c.Type
	} else if sp := typ.SpecialType(); sp == symbol.SpecialObject || sp == symbol.SpecialValueType {
		typ = c.Type
	}
	if c.Value == nil || typ == nil {
		return symbol.Primitive(c.Type, nil), nil
	}
	if typ.Kind == symbol.TypeRefNamed && typ.Def != nil && typ.Def.Is(symbol.TypeKindEnum) {
		value, ok := c.Int64()
		if !ok {
			if f, isFloat := c.Value.(float64); isFloat {
				value, ok = int64(f), true
			}
		}
		if !ok {
			return nil, errors.Errorf("enum value %T: %w", c.Value, errExpression)
		}
		return symbol.EnumValue(typ, value), nil
	}
	value, err := convertValue(c.Value, typ.SpecialType())
	if err != nil {
		return nil, err
	}
	return symbol.Primitive(typ, value), nil
}

func (e *evaluator) zero(typ *symbol.TypeRef) *symbol.Constant {
	if typ == nil || typ.Nullable || typ.Kind != symbol.TypeRefNamed || typ.Def == nil {
		return symbol.Primitive(typ, nil)
	}
	if typ.Def.Is(symbol.TypeKindEnum) {
		return symbol.EnumValue(typ, 0)
	}
	sp := typ.SpecialType()
	switch {
	case sp == symbol.SpecialBoolean:
		return symbol.Primitive(typ, false)
	case sp == symbol.SpecialChar || sp.IsNumeric():
		value, _ := convertValue(int64(0), sp)
		return symbol.Primitive(typ, value)
	}
	return symbol.Primitive(typ, nil)
}

// convertValue converts an evaluated value to the Go type representing the special type
func convertValue(value interface{}, sp symbol.SpecialType) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		if sp == symbol.SpecialBoolean || sp == symbol.SpecialNone {
			return v, nil
		}
	case string:
		if sp == symbol.SpecialString || sp == symbol.SpecialNone {
			return v, nil
		}
	case int64, uint64, float64:
		_, isFloat := v.(float64)
		switch sp {
		case symbol.SpecialChar:
			return int32(toUint(v)), nil
		case symbol.SpecialSByte:
			return int8(toUint(v)), nil
		case symbol.SpecialByte:
			return uint8(toUint(v)), nil
		case symbol.SpecialInt16:
			return int16(toUint(v)), nil
		case symbol.SpecialUInt16:
			return uint16(toUint(v)), nil
		case symbol.SpecialInt32:
			if isFloat {
				return int32(toFloat(v)), nil
			}
			return int32(toUint(v)), nil
		case symbol.SpecialUInt32:
			return uint32(toUint(v)), nil
		case symbol.SpecialInt64, symbol.SpecialIntPtr:
			if isFloat {
				return int64(toFloat(v)), nil
			}
			return int64(toUint(v)), nil
		case symbol.SpecialUInt64, symbol.SpecialUIntPtr:
			return toUint(v), nil
		case symbol.SpecialSingle:
			return float32(toFloat(v)), nil
		case symbol.SpecialDouble, symbol.SpecialDecimal:
			return toFloat(v), nil
		case symbol.SpecialNone:
			return v, nil
		}
	}
	return nil, errors.Errorf("conversion of %T to %v: %w", value, sp.Keyword(), errExpression)
}
