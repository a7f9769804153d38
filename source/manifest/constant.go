package manifest

import (
	"math"
	"unicode/utf8"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

var errConstant = errors.New("invalid constant")

// constant converts a manifest constant, an explicit type overrides the declared one
func (b *builder) constant(spec *Constant, declared *symbol.TypeRef, sc *scope) *symbol.Constant {
	if spec.TypeOf != "" {
		return symbol.TypeOf(b.corlib.Ref("System.Type"), b.typeRef(spec.TypeOf, sc))
	}
	typ := declared
	if spec.Type != "" {
		typ = b.typeRef(spec.Type, sc)
	}
	if typ != nil && typ.Kind == symbol.TypeRefArray {
		if spec.Values == nil {
			return symbol.ArrayValue(typ, nil)
		}
		values := make([]*symbol.Constant, 0, len(spec.Values))
		for _, value := range spec.Values {
			values = append(values, b.constant(value, typ.Element, sc))
		}
		return symbol.ArrayValue(typ, values)
	}
	if spec.Value == nil {
		return symbol.Primitive(typ, nil)
	}
	if typ == nil || typ.Def == nil {
		return b.natural(spec.Value)
	}
	if typ.Def.Is(symbol.TypeKindEnum) {
		value, ok := integer(spec.Value)
		if !ok {
			b.fail(errors.Errorf("%w: %v is not an enum value of %v", errConstant, spec.Value, typ.Def.FullMetadataName()))
		}
		return symbol.EnumValue(typ, value)
	}
	switch typ.SpecialType() {
	case symbol.SpecialObject, symbol.SpecialValueType:
		return b.natural(spec.Value)
	}
	value, err := primitive(spec.Value, typ.SpecialType())
	if err != nil {
		b.fail(errors.Errorf("%w: %v of type %v", err, spec.Value, typ.Def.FullMetadataName()))
	}
	return symbol.Primitive(typ, value)
}

// natural returns a constant typed by its YAML value
func (b *builder) natural(value interface{}) *symbol.Constant {
	switch actual := value.(type) {
	case bool:
		return symbol.Primitive(b.corlib.Keyword("bool"), actual)
	case string:
		return symbol.Primitive(b.corlib.Keyword("string"), actual)
	case float64:
		return symbol.Primitive(b.corlib.Keyword("double"), actual)
	case uint64:
		return symbol.Primitive(b.corlib.Keyword("ulong"), actual)
	}
	if v, ok := integer(value); ok {
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return symbol.Primitive(b.corlib.Keyword("int"), int32(v))
		}
		return symbol.Primitive(b.corlib.Keyword("long"), v)
	}
	b.fail(errors.Errorf("%w: unsupported value %v", errConstant, value))
	return symbol.Primitive(nil, nil)
}

func integer(value interface{}) (int64, bool) {
	switch actual := value.(type) {
	case int:
		return int64(actual), true
	case int64:
		return actual, true
	case uint64:
		return int64(actual), true
	case float64:
		if actual == math.Trunc(actual) {
			return int64(actual), true
		}
	}
	return 0, false
}

// primitive converts a YAML value to the Go type representing the special type
func primitive(value interface{}, special symbol.SpecialType) (interface{}, error) {
	switch special {
	case symbol.SpecialBoolean:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case symbol.SpecialString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case symbol.SpecialChar:
		if v, ok := value.(string); ok && utf8.RuneCountInString(v) == 1 {
			r, _ := utf8.DecodeRuneInString(v)
			return int32(r), nil
		}
		if v, ok := integer(value); ok {
			return int32(v), nil
		}
	case symbol.SpecialSingle:
		if v, ok := value.(float64); ok {
			return float32(v), nil
		}
		if v, ok := integer(value); ok {
			return float32(v), nil
		}
	case symbol.SpecialDouble, symbol.SpecialDecimal:
		if v, ok := value.(float64); ok {
			return v, nil
		}
		if v, ok := integer(value); ok {
			return float64(v), nil
		}
	default:
		if !special.IsIntegral() {
			break
		}
		v, ok := integer(value)
		if !ok {
			break
		}
		switch special {
		case symbol.SpecialSByte:
			return int8(v), nil
		case symbol.SpecialByte:
			return uint8(v), nil
		case symbol.SpecialInt16:
			return int16(v), nil
		case symbol.SpecialUInt16:
			return uint16(v), nil
		case symbol.SpecialInt32:
			return int32(v), nil
		case symbol.SpecialUInt32:
			return uint32(v), nil
		case symbol.SpecialUInt64:
			if u, isUnsigned := value.(uint64); isUnsigned {
				return u, nil
			}
			return uint64(v), nil
		}
		return v, nil
	}
	return nil, errors.Errorf("%w: unexpected %T", errConstant, value)
}
