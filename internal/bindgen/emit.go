package bindgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"
)

// EmitOptions controls the generated file.
type EmitOptions struct {
	// Package is the Go package name of the output. Defaults to "ffi".
	Package string
	// Source is recorded in the generated-code banner.
	Source string
	// Generator names the tool in the banner. Defaults to "corebindgen".
	Generator string
}

// Emit renders the Go function table for h. The output expects the target
// package to provide:
//
//	type Library interface{ Lookup(name string) (uintptr, error) ... }
//	func resolve(lib Library, names []string) ([]uintptr, error)
//	var bind func(fptr any, addr uintptr)
//
// Output is gofmt'd and depends only on h and opts.
func Emit(h *Header, opts EmitOptions) ([]byte, error) {
	if len(h.Funcs) == 0 {
		return nil, errors.New("header declares no functions")
	}
	if opts.Package == "" {
		opts.Package = "ffi"
	}
	if opts.Generator == "" {
		opts.Generator = "corebindgen"
	}

	var b bytes.Buffer
	if opts.Source != "" {
		fmt.Fprintf(&b, "// Code generated by %s from %s. DO NOT EDIT.\n\n", opts.Generator, opts.Source)
	} else {
		fmt.Fprintf(&b, "// Code generated by %s. DO NOT EDIT.\n\n", opts.Generator)
	}
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)

	b.WriteString("// Symbols lists the exports resolved by Load, in header order.\n")
	b.WriteString("var Symbols = []string{\n")
	for _, f := range h.Funcs {
		fmt.Fprintf(&b, "\t%q,\n", f.Name)
	}
	b.WriteString("}\n\n")

	for _, s := range h.Structs {
		fmt.Fprintf(&b, "// %s mirrors the C struct %s.\n", exportedName(s.Name), s.Name)
		fmt.Fprintf(&b, "type %s struct {\n", exportedName(s.Name))
		for _, fld := range s.Fields {
			gt, err := h.goType(fld.Type, posField)
			if err != nil {
				return nil, fmt.Errorf("struct %s: field %s: %w", s.Name, fld.Name, err)
			}
			fmt.Fprintf(&b, "\t%s %s\n", exportedName(fld.Name), gt)
		}
		b.WriteString("}\n\n")
	}

	b.WriteString("// Table holds one bound function per exported symbol.\n")
	b.WriteString("type Table struct {\n")
	for _, f := range h.Funcs {
		sig, err := h.signature(f)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "\t%s %s\n", exportedName(f.Name), sig)
	}
	b.WriteString("}\n\n")

	b.WriteString("// Load resolves every symbol in Symbols from lib and binds it into a new\n")
	b.WriteString("// Table. Nothing is bound unless every symbol resolves.\n")
	b.WriteString("func Load(lib Library) (*Table, error) {\n")
	b.WriteString("\taddrs, err := resolve(lib, Symbols)\n")
	b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	b.WriteString("\tt := new(Table)\n")
	for i, f := range h.Funcs {
		fmt.Fprintf(&b, "\tbind(&t.%s, addrs[%d])\n", exportedName(f.Name), i)
	}
	b.WriteString("\treturn t, nil\n}\n")

	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

// signature renders the Go func type bound to f.
func (h *Header) signature(f Func) (string, error) {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		gt, err := h.goType(p.Type, posParam)
		if err != nil {
			return "", fmt.Errorf("%s: parameter %s: %w", f.Name, p.Name, err)
		}
		params = append(params, localName(p.Name)+" "+gt)
	}
	ret, err := h.goType(f.Return, posReturn)
	if err != nil {
		return "", fmt.Errorf("%s: return: %w", f.Name, err)
	}
	sig := "func(" + strings.Join(params, ", ") + ")"
	if ret != "" {
		sig += " " + ret
	}
	return sig, nil
}
