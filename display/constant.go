package display

import (
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupportedConstant is returned when a typed constant cannot be rendered
var ErrUnsupportedConstant = errors.New("unsupported constant")

const flagsAttribute = "System.FlagsAttribute"

// constant renders a typed constant, declared is the type of the parameter or field holding it
func (r *renderer) constant(c *symbol.Constant, declared *symbol.TypeRef) error {
	if c == nil {
		return nil
	}
	if c.Value == nil && c.Text != "" {
		r.name(PartText, c.Text, nil)
		return nil
	}
	typ := c.Type
	if typ == nil {
		typ = declared
	}
	switch c.Kind {
	case symbol.ConstantPrimitive:
		return r.primitive(c, typ)
	case symbol.ConstantEnum:
		return r.enumConstant(c, typ)
	case symbol.ConstantType:
		if c.Value == nil {
			r.keyword("null")
			return nil
		}
		ref, ok := c.Value.(*symbol.TypeRef)
		if !ok {
			return errors.Errorf("typeof value %T: %w", c.Value, ErrUnsupportedConstant)
		}
		r.keyword("typeof")
		r.punctuation("(")
		r.typeRef(ref)
		r.punctuation(")")
		return nil
	case symbol.ConstantArray:
		if c.Value == nil {
			r.keyword("null")
			return nil
		}
		r.keyword("new")
		r.space()
		var element *symbol.TypeRef
		if typ != nil && typ.Kind == symbol.TypeRefArray {
			element = typ.Element
		}
		if element == nil {
			r.keyword("object")
		} else {
			r.typeRef(element)
		}
		r.punctuation("[")
		r.punctuation("]")
		r.space()
		r.punctuation("{")
		r.space()
		for i, value := range c.Values {
			if i > 0 {
				r.punctuation(",")
				r.space()
			}
			if err := r.constant(value, element); err != nil {
				return err
			}
		}
		r.space()
		r.punctuation("}")
		return nil
	}
	return errors.Errorf("constant kind %d: %w", c.Kind, ErrUnsupportedConstant)
}

func (r *renderer) primitive(c *symbol.Constant, typ *symbol.TypeRef) error {
	special := symbol.SpecialNone
	if typ != nil {
		special = typ.SpecialType()
	}
	if c.Value == nil {
		if typ != nil && !typ.Nullable && typ.IsValueType() && special == symbol.SpecialNone {
			r.keyword("default")
			r.punctuation("(")
			r.typeRef(typ)
			r.punctuation(")")
			return nil
		}
		r.keyword("null")
		return nil
	}
	if typ != nil && typ.Kind == symbol.TypeRefNamed && typ.Def != nil && typ.Def.Is(symbol.TypeKindEnum) {
		if _, ok := c.Int64(); ok {
			return r.enumConstant(c, typ)
		}
	}
	switch v := c.Value.(type) {
	case bool:
		r.keyword(strconv.FormatBool(v))
		return nil
	case string:
		r.name(PartStringLiteral, quote(v, '"'), nil)
		return nil
	case float32:
		r.name(PartNumericLiteral, formatFloat(float64(v), 32), nil)
		return nil
	case float64:
		r.name(PartNumericLiteral, formatFloat(v, 64), nil)
		return nil
	}
	if special == symbol.SpecialChar {
		if i, ok := c.Int64(); ok {
			r.name(PartStringLiteral, quote(string(rune(i)), '\''), nil)
			return nil
		}
	}
	text, ok := formatInteger(c.Value)
	if !ok {
		return errors.Errorf("primitive value %T: %w", c.Value, ErrUnsupportedConstant)
	}
	r.name(PartNumericLiteral, text, nil)
	return nil
}

func formatInteger(value interface{}) (string, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	}
	return "", false
}

// formatFloat formats round trip values, exponent form is used outside of [1e-5, 1e15)
func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs == 0 || abs >= 1e-5 && abs < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(v, 'E', -1, bitSize)
}

func quote(text string, delimiter rune) string {
	builder := strings.Builder{}
	builder.WriteRune(delimiter)
	for _, ch := range text {
		switch ch {
		case delimiter:
			builder.WriteByte('\\')
			builder.WriteRune(ch)
		case '\\':
			builder.WriteString(`\\`)
		case 0:
			builder.WriteString(`\0`)
		case '\a':
			builder.WriteString(`\a`)
		case '\b':
			builder.WriteString(`\b`)
		case '\f':
			builder.WriteString(`\f`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		case '\v':
			builder.WriteString(`\v`)
		default:
			builder.WriteRune(ch)
		}
	}
	builder.WriteRune(delimiter)
	return builder.String()
}

type enumField struct {
	symbol *symbol.Symbol
	value  int64
}

func enumFields(def *symbol.Symbol) []enumField {
	var result []enumField
	for _, member := range def.Members {
		if member.Kind != symbol.KindField || member.Field == nil || member.Field.Constant == nil {
			continue
		}
		if value, ok := member.Field.Constant.Int64(); ok {
			result = append(result, enumField{symbol: member, value: value})
		}
	}
	return result
}

// constituentFields returns the named fields composing value: an exact match first, then a flags decomposition in ascending value order
func constituentFields(def *symbol.Symbol, value int64) []*symbol.Symbol {
	fields := enumFields(def)
	for _, field := range fields {
		if field.value == value {
			return []*symbol.Symbol{field.symbol}
		}
	}
	if value == 0 || !def.HasAttribute(flagsAttribute) {
		return nil
	}
	slices.SortStableFunc(fields, func(x, y enumField) int {
		switch {
		case uint64(x.value) > uint64(y.value):
			return -1
		case uint64(x.value) < uint64(y.value):
			return 1
		}
		return 0
	})
	var result []enumField
	remaining := value
	for _, field := range fields {
		if field.value == 0 || field.value&remaining != field.value {
			continue
		}
		result = append(result, field)
		remaining &^= field.value
		if remaining == 0 {
			break
		}
	}
	if remaining != 0 {
		return nil
	}
	ret := make([]*symbol.Symbol, 0, len(result))
	for i := len(result) - 1; i >= 0; i-- {
		ret = append(ret, result[i].symbol)
	}
	return ret
}

func (r *renderer) enumConstant(c *symbol.Constant, typ *symbol.TypeRef) error {
	value, ok := c.Int64()
	if !ok {
		return errors.Errorf("enum value %T: %w", c.Value, ErrUnsupportedConstant)
	}
	var def *symbol.Symbol
	if typ != nil && typ.Kind == symbol.TypeRefNamed {
		def = typ.Def
	}
	if def != nil {
		if fields := constituentFields(def, value); len(fields) > 0 {
			for i, field := range fields {
				if i > 0 {
					r.space()
					r.punctuation("|")
					r.space()
				}
				r.typeRef(symbol.Named(def))
				r.punctuation(".")
				r.name(PartEnumMemberName, field.Name, field)
			}
			return nil
		}
	}
	r.punctuation("(")
	if typ != nil {
		r.typeRef(typ)
	} else {
		r.name(PartErrorTypeName, "?", nil)
	}
	r.punctuation(")")
	text, _ := formatInteger(c.Value)
	r.name(PartNumericLiteral, text, nil)
	return nil
}
