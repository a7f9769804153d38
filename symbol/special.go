package symbol

// SpecialType identifies well known framework types
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialVoid
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialDecimal
	SpecialSingle
	SpecialDouble
	SpecialString
	SpecialValueType
	SpecialEnum
	SpecialDelegate
	SpecialMulticastDelegate
	SpecialIEnumerable
	SpecialIEnumerableT
	SpecialAttribute
	SpecialIntPtr
	SpecialUIntPtr
)

var specialTypes = map[string]SpecialType{
	"System.Object":                            SpecialObject,
	"System.Void":                              SpecialVoid,
	"System.Boolean":                           SpecialBoolean,
	"System.Char":                              SpecialChar,
	"System.SByte":                             SpecialSByte,
	"System.Byte":                              SpecialByte,
	"System.Int16":                             SpecialInt16,
	"System.UInt16":                            SpecialUInt16,
	"System.Int32":                             SpecialInt32,
	"System.UInt32":                            SpecialUInt32,
	"System.Int64":                             SpecialInt64,
	"System.UInt64":                            SpecialUInt64,
	"System.Decimal":                           SpecialDecimal,
	"System.Single":                            SpecialSingle,
	"System.Double":                            SpecialDouble,
	"System.String":                            SpecialString,
	"System.ValueType":                         SpecialValueType,
	"System.Enum":                              SpecialEnum,
	"System.Delegate":                          SpecialDelegate,
	"System.MulticastDelegate":                 SpecialMulticastDelegate,
	"System.Collections.IEnumerable":           SpecialIEnumerable,
	"System.Collections.Generic.IEnumerable`1": SpecialIEnumerableT,
	"System.Attribute":                         SpecialAttribute,
	"System.IntPtr":                            SpecialIntPtr,
	"System.UIntPtr":                           SpecialUIntPtr,
}

var specialKeywords = map[SpecialType]string{
	SpecialObject:  "object",
	SpecialVoid:    "void",
	SpecialBoolean: "bool",
	SpecialChar:    "char",
	SpecialSByte:   "sbyte",
	SpecialByte:    "byte",
	SpecialInt16:   "short",
	SpecialUInt16:  "ushort",
	SpecialInt32:   "int",
	SpecialUInt32:  "uint",
	SpecialInt64:   "long",
	SpecialUInt64:  "ulong",
	SpecialDecimal: "decimal",
	SpecialSingle:  "float",
	SpecialDouble:  "double",
	SpecialString:  "string",
	SpecialIntPtr:  "nint",
	SpecialUIntPtr: "nuint",
}

// KeywordTypes maps language keywords to full metadata names of special types
var KeywordTypes = map[string]string{
	"object":  "System.Object",
	"void":    "System.Void",
	"bool":    "System.Boolean",
	"char":    "System.Char",
	"sbyte":   "System.SByte",
	"byte":    "System.Byte",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"decimal": "System.Decimal",
	"float":   "System.Single",
	"double":  "System.Double",
	"string":  "System.String",
	"nint":    "System.IntPtr",
	"nuint":   "System.UIntPtr",
}

// SpecialTypeOf returns the special type of a named type symbol
func SpecialTypeOf(s *Symbol) SpecialType {
	if s == nil || s.Kind != KindType {
		return SpecialNone
	}
	if ns := s.ContainingNamespace(); ns == nil || ns.IsGlobalNamespace() {
		return SpecialNone
	}
	return specialTypes[s.FullMetadataName()]
}

// Keyword returns the language keyword of the special type, if any
func (t SpecialType) Keyword() string {
	return specialKeywords[t]
}

// IsNumeric returns true for integral and floating point special types
func (t SpecialType) IsNumeric() bool {
	return t >= SpecialSByte && t <= SpecialDouble
}

// IsIntegral returns true for integral special types
func (t SpecialType) IsIntegral() bool {
	return t >= SpecialSByte && t <= SpecialUInt64
}
