package symbol

// ConstantKind represents a typed constant shape
type ConstantKind int

const (
	ConstantPrimitive ConstantKind = iota
	ConstantEnum
	ConstantType
	ConstantArray
)

// Constant represents a typed constant used by attribute arguments, field values and parameter defaults
type Constant struct {
	Kind   ConstantKind // Constant shape
	Type   *TypeRef     // Constant type
	Value  interface{}  // Primitive value, raw enum value or *TypeRef, nil means null
	Values []*Constant  // Array elements
	Text   string       // Source text of an expression that cannot be evaluated
}

// Primitive creates a primitive constant
func Primitive(typ *TypeRef, value interface{}) *Constant {
	return &Constant{Kind: ConstantPrimitive, Type: typ, Value: value}
}

// EnumValue creates an enum constant with a raw underlying value
func EnumValue(typ *TypeRef, value int64) *Constant {
	return &Constant{Kind: ConstantEnum, Type: typ, Value: value}
}

// TypeOf creates a typeof constant
func TypeOf(typ *TypeRef, value *TypeRef) *Constant {
	return &Constant{Kind: ConstantType, Type: typ, Value: value}
}

// ArrayValue creates an array constant, nil values mean a null array
func ArrayValue(typ *TypeRef, values []*Constant) *Constant {
	ret := &Constant{Kind: ConstantArray, Type: typ, Values: values}
	if values != nil {
		ret.Value = len(values)
	}
	return ret
}

// IsNull returns true for null constants
func (c *Constant) IsNull() bool {
	return c.Value == nil && c.Text == ""
}

// Int64 returns the value as int64 if it is integral
func (c *Constant) Int64() (int64, bool) {
	switch v := c.Value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// IsDefault returns true when the constant equals the zero value of its type
func (c *Constant) IsDefault() bool {
	switch c.Kind {
	case ConstantArray, ConstantType:
		return c.Value == nil
	}
	if c.Value == nil {
		return c.Text == ""
	}
	switch v := c.Value.(type) {
	case bool:
		return !v
	case string:
		return false
	case float32:
		return v == 0
	case float64:
		return v == 0
	}
	if i, ok := c.Int64(); ok {
		return i == 0
	}
	return false
}
