// Package bindgen turns a C header describing a native library's exports into
// a Go function table that can be bound at run time without cgo.
//
// The parser understands the subset of C that plain library headers use:
// function prototypes, typedef'd plain-data structs and scalar aliases.
// Preprocessor lines are dropped; object-like macros are remembered and their
// names are ignored inside declarations, which covers export attributes such
// as VOICEVOX_CORE_API.
package bindgen

import "strings"

// CType is a C type as written in the header.
type CType struct {
	// Base is the type name without qualifiers or pointers,
	// e.g. "int64_t", "unsigned int", "char", or a struct name.
	Base     string
	Pointers int
	Const    bool
	// Struct is set when the type was spelled with the struct keyword.
	Struct bool
}

func (t CType) String() string {
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	if t.Struct {
		b.WriteString("struct ")
	}
	b.WriteString(t.Base)
	if t.Pointers > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Repeat("*", t.Pointers))
	}
	return b.String()
}

// Param is one function parameter. Name is synthesized as argN when the
// header leaves it out.
type Param struct {
	Name string
	Type CType
}

// Func is an exported function prototype.
type Func struct {
	Name   string
	Return CType
	Params []Param
	Line   int
}

// Field is a member of a plain-data struct.
type Field struct {
	Name string
	Type CType
}

// Struct is a typedef'd plain-data struct.
type Struct struct {
	Name   string
	Tag    string
	Fields []Field
	Line   int
}

// Header is the parsed ABI surface.
type Header struct {
	Funcs   []Func
	Structs []Struct
	// Aliases maps typedef names to the type they stand for.
	Aliases map[string]CType
	// Macros lists object-like macro names seen in #define lines.
	Macros []string
}

// Func returns the declaration named name.
func (h *Header) Func(name string) (Func, bool) {
	for _, f := range h.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return Func{}, false
}

func (h *Header) structByName(name string) (Struct, bool) {
	for _, s := range h.Structs {
		if s.Name == name || (s.Tag != "" && s.Tag == name) {
			return s, true
		}
	}
	return Struct{}, false
}
