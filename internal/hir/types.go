package hir

import (
	"fmt"
	"strings"
)

// Type is the type representation shared by all three domains. Concrete
// types carry their origin language implicitly through their variant.
type Type interface {
	fmt.Stringer
	TypeLanguage() Language
	isType()
}

// Unknown stands for a type that has not been inferred. It is compatible
// with everything.
type Unknown struct{}

func (Unknown) String() string         { return "?" }
func (Unknown) TypeLanguage() Language { return LangRust }
func (Unknown) isType()                {}

// Python types

// PyInt is Python's int.
type PyInt struct{}

// PyFloat is Python's float.
type PyFloat struct{}

// PyStr is Python's str.
type PyStr struct{}

// PyBool is Python's bool.
type PyBool struct{}

// PyNone is Python's None.
type PyNone struct{}

// PyList is list[T].
type PyList struct{ Elem Type }

// PyDict is dict[K, V].
type PyDict struct{ Key, Value Type }

// PyClass is a user-defined class.
type PyClass struct{ Name string }

func (PyInt) String() string   { return "int" }
func (PyFloat) String() string { return "float" }
func (PyStr) String() string   { return "str" }
func (PyBool) String() string  { return "bool" }
func (PyNone) String() string  { return "None" }
func (t PyList) String() string {
	return fmt.Sprintf("list[%s]", t.Elem)
}
func (t PyDict) String() string {
	return fmt.Sprintf("dict[%s, %s]", t.Key, t.Value)
}
func (t PyClass) String() string { return t.Name }

func (PyInt) TypeLanguage() Language   { return LangPython }
func (PyFloat) TypeLanguage() Language { return LangPython }
func (PyStr) TypeLanguage() Language   { return LangPython }
func (PyBool) TypeLanguage() Language  { return LangPython }
func (PyNone) TypeLanguage() Language  { return LangPython }
func (PyList) TypeLanguage() Language  { return LangPython }
func (PyDict) TypeLanguage() Language  { return LangPython }
func (PyClass) TypeLanguage() Language { return LangPython }

func (PyInt) isType()   {}
func (PyFloat) isType() {}
func (PyStr) isType()   {}
func (PyBool) isType()  {}
func (PyNone) isType()  {}
func (PyList) isType()  {}
func (PyDict) isType()  {}
func (PyClass) isType() {}

// C types

// CPrimitiveKind enumerates the scalar C types the low-level side uses.
type CPrimitiveKind int

const (
	CVoid CPrimitiveKind = iota
	CChar
	CInt
	CLong
	CSizeT
	CFloat
	CDouble
)

// CPrimitive is a scalar C type.
type CPrimitive struct{ Kind CPrimitiveKind }

// CPointer is T*.
type CPointer struct{ Inner Type }

// CStruct is struct Name.
type CStruct struct{ Name string }

// CPythonKind enumerates the opaque CPython API handle types the C side
// traffics in.
type CPythonKind int

const (
	PyObjectHandle CPythonKind = iota
	PyListObjectHandle
	PyDictObjectHandle
	PyTupleObjectHandle
	PyTypeObjectHandle
	PySsizeT
)

// CPython is one of the CPython API types (PyObject*, Py_ssize_t, ...).
type CPython struct{ Kind CPythonKind }

func (t CPrimitive) String() string {
	switch t.Kind {
	case CVoid:
		return "void"
	case CChar:
		return "char"
	case CInt:
		return "int"
	case CLong:
		return "long"
	case CSizeT:
		return "size_t"
	case CFloat:
		return "float"
	case CDouble:
		return "double"
	default:
		return fmt.Sprintf("cprim(%d)", int(t.Kind))
	}
}
func (t CPointer) String() string { return t.Inner.String() + "*" }
func (t CStruct) String() string  { return "struct " + t.Name }
func (t CPython) String() string {
	switch t.Kind {
	case PyObjectHandle:
		return "PyObject*"
	case PyListObjectHandle:
		return "PyListObject*"
	case PyDictObjectHandle:
		return "PyDictObject*"
	case PyTupleObjectHandle:
		return "PyTupleObject*"
	case PyTypeObjectHandle:
		return "PyTypeObject*"
	case PySsizeT:
		return "Py_ssize_t"
	default:
		return fmt.Sprintf("cpython(%d)", int(t.Kind))
	}
}

func (CPrimitive) TypeLanguage() Language { return LangC }
func (CPointer) TypeLanguage() Language   { return LangC }
func (CStruct) TypeLanguage() Language    { return LangC }
func (CPython) TypeLanguage() Language    { return LangC }

func (CPrimitive) isType() {}
func (CPointer) isType()   {}
func (CStruct) isType()    {}
func (CPython) isType()    {}

// Rust (target) types

// RustInt is a fixed-width or pointer-sized integer (i32, usize, ...).
type RustInt struct {
	Bits   int // 8, 16, 32, 64, 128; 0 means pointer-sized
	Signed bool
}

// RustFloat is f32 or f64.
type RustFloat struct{ Bits int }

// RustBool is bool.
type RustBool struct{}

// RustString is the owned String.
type RustString struct{}

// RustStr is &str.
type RustStr struct{}

// RustUnit is ().
type RustUnit struct{}

// RustVec is Vec<T>.
type RustVec struct{ Elem Type }

// RustHashMap is HashMap<K, V>.
type RustHashMap struct{ Key, Value Type }

// RustOption is Option<T>.
type RustOption struct{ Inner Type }

// RustRef is &T or &mut T.
type RustRef struct {
	Mutable bool
	Inner   Type
}

// RustRc is the shared-count pointer Rc<T>.
type RustRc struct{ Inner Type }

// RustCustom names a type the model does not otherwise know.
type RustCustom struct{ Name string }

func (t RustInt) String() string {
	prefix := "u"
	if t.Signed {
		prefix = "i"
	}
	if t.Bits == 0 {
		return prefix + "size"
	}
	return fmt.Sprintf("%s%d", prefix, t.Bits)
}
func (t RustFloat) String() string { return fmt.Sprintf("f%d", t.Bits) }
func (RustBool) String() string    { return "bool" }
func (RustString) String() string  { return "String" }
func (RustStr) String() string     { return "&str" }
func (RustUnit) String() string    { return "()" }
func (t RustVec) String() string   { return fmt.Sprintf("Vec<%s>", t.Elem) }
func (t RustHashMap) String() string {
	return fmt.Sprintf("HashMap<%s, %s>", t.Key, t.Value)
}
func (t RustOption) String() string { return fmt.Sprintf("Option<%s>", t.Inner) }
func (t RustRef) String() string {
	if t.Mutable {
		return "&mut " + t.Inner.String()
	}
	return "&" + t.Inner.String()
}
func (t RustRc) String() string     { return fmt.Sprintf("Rc<%s>", t.Inner) }
func (t RustCustom) String() string { return t.Name }

func (RustInt) TypeLanguage() Language     { return LangRust }
func (RustFloat) TypeLanguage() Language   { return LangRust }
func (RustBool) TypeLanguage() Language    { return LangRust }
func (RustString) TypeLanguage() Language  { return LangRust }
func (RustStr) TypeLanguage() Language     { return LangRust }
func (RustUnit) TypeLanguage() Language    { return LangRust }
func (RustVec) TypeLanguage() Language     { return LangRust }
func (RustHashMap) TypeLanguage() Language { return LangRust }
func (RustOption) TypeLanguage() Language  { return LangRust }
func (RustRef) TypeLanguage() Language     { return LangRust }
func (RustRc) TypeLanguage() Language      { return LangRust }
func (RustCustom) TypeLanguage() Language  { return LangRust }

func (RustInt) isType()     {}
func (RustFloat) isType()   {}
func (RustBool) isType()    {}
func (RustString) isType()  {}
func (RustStr) isType()     {}
func (RustUnit) isType()    {}
func (RustVec) isType()     {}
func (RustHashMap) isType() {}
func (RustOption) isType()  {}
func (RustRef) isType()     {}
func (RustRc) isType()      {}
func (RustCustom) isType()  {}

// IsCompatible reports whether a value of type a may be treated as a value
// of type b when converting arguments across domains. It is a pure
// predicate: the same inputs always produce the same answer. It is not
// symmetric; the source type goes first.
func IsCompatible(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	// Unknown unifies with anything.
	if _, ok := a.(Unknown); ok {
		return true
	}
	if _, ok := b.(Unknown); ok {
		return true
	}

	switch from := a.(type) {
	case PyList:
		// Python list converts to the growable target array.
		if _, ok := b.(RustVec); ok {
			return true
		}
	case PyDict:
		if _, ok := b.(RustHashMap); ok {
			return true
		}
	case CPython:
		// CPython container handles map onto the target collections.
		if from.Kind == PyListObjectHandle {
			if _, ok := b.(RustVec); ok {
				return true
			}
		}
		if from.Kind == PyDictObjectHandle {
			if _, ok := b.(RustHashMap); ok {
				return true
			}
		}
	}

	// Identical rendered types are trivially compatible. Rendering is
	// total and injective per variant, so this comparison is stable
	// across repeated calls.
	return a.TypeLanguage() == b.TypeLanguage() && a.String() == b.String()
}

// ParseCTypeName maps a spelled C type (as it appears in source) to the
// type model, recognizing the CPython API names. Unrecognized names come
// back as struct types, which is how opaque typedefs behave at this
// level.
func ParseCTypeName(name string) Type {
	switch strings.TrimSpace(name) {
	case "void":
		return CPrimitive{Kind: CVoid}
	case "char":
		return CPrimitive{Kind: CChar}
	case "int":
		return CPrimitive{Kind: CInt}
	case "long":
		return CPrimitive{Kind: CLong}
	case "size_t":
		return CPrimitive{Kind: CSizeT}
	case "float":
		return CPrimitive{Kind: CFloat}
	case "double":
		return CPrimitive{Kind: CDouble}
	case "PyObject":
		return CPython{Kind: PyObjectHandle}
	case "PyListObject":
		return CPython{Kind: PyListObjectHandle}
	case "PyDictObject":
		return CPython{Kind: PyDictObjectHandle}
	case "PyTupleObject":
		return CPython{Kind: PyTupleObjectHandle}
	case "PyTypeObject":
		return CPython{Kind: PyTypeObjectHandle}
	case "Py_ssize_t":
		return CPython{Kind: PySsizeT}
	default:
		return CStruct{Name: strings.TrimSpace(name)}
	}
}

// IsCPythonTypeName reports whether a spelled C type belongs to the
// CPython API surface. Used by the C-side visualizer to annotate nodes.
func IsCPythonTypeName(name string) bool {
	_, ok := ParseCTypeName(name).(CPython)
	return ok
}
