package bindgen

import (
	"fmt"
	gotoken "go/token"
	"strings"
	"unicode"
)

// scalarTypes maps C scalar spellings to Go types of the same width on an
// LP64 target (linux, darwin, freebsd on amd64/arm64).
var scalarTypes = map[string]string{
	"bool":  "bool",
	"_Bool": "bool",

	"char":          "int8",
	"signed char":   "int8",
	"unsigned char": "uint8",

	"short":              "int16",
	"short int":          "int16",
	"signed short":       "int16",
	"unsigned short":     "uint16",
	"unsigned short int": "uint16",

	"int":          "int32",
	"signed":       "int32",
	"signed int":   "int32",
	"unsigned":     "uint32",
	"unsigned int": "uint32",

	"long":                   "int64",
	"long int":               "int64",
	"signed long":            "int64",
	"unsigned long":          "uint64",
	"unsigned long int":      "uint64",
	"long long":              "int64",
	"long long int":          "int64",
	"unsigned long long":     "uint64",
	"unsigned long long int": "uint64",

	"int8_t":    "int8",
	"uint8_t":   "uint8",
	"int16_t":   "int16",
	"uint16_t":  "uint16",
	"int32_t":   "int32",
	"uint32_t":  "uint32",
	"int64_t":   "int64",
	"uint64_t":  "uint64",
	"size_t":    "uintptr",
	"uintptr_t": "uintptr",
	"intptr_t":  "int64",

	"float":  "float32",
	"double": "float64",
}

type position int

const (
	posParam position = iota
	posReturn
	posField
)

// resolve expands typedef aliases, accumulating pointer levels.
func (h *Header) resolve(t CType) (CType, error) {
	for depth := 0; ; depth++ {
		if depth > 32 {
			return CType{}, fmt.Errorf("typedef cycle at %s", t.Base)
		}
		a, ok := h.Aliases[t.Base]
		if !ok || t.Struct {
			return t, nil
		}
		t = CType{
			Base:     a.Base,
			Pointers: a.Pointers + t.Pointers,
			Const:    a.Const || t.Const,
			Struct:   a.Struct,
		}
	}
}

// goType returns the Go spelling used for t in the given position. An empty
// string means no value (a void return).
func (h *Header) goType(t CType, pos position) (string, error) {
	t, err := h.resolve(t)
	if err != nil {
		return "", err
	}
	if t.Pointers > 1 {
		return "uintptr", nil
	}
	if t.Pointers == 1 {
		switch {
		case t.Base == "void":
			return "uintptr", nil
		case t.Base == "char" && !t.Struct:
			switch {
			case pos == posParam && t.Const:
				return "string", nil
			case pos == posParam:
				return "*byte", nil
			default:
				return "uintptr", nil
			}
		case pos == posField:
			// keep struct layouts free of Go pointers
			return "uintptr", nil
		}
		if g, ok := scalarTypes[t.Base]; ok && !t.Struct {
			return "*" + g, nil
		}
		if s, ok := h.structByName(t.Base); ok {
			return "*" + exportedName(s.Name), nil
		}
		if t.Struct {
			// opaque handle
			return "uintptr", nil
		}
		return "", fmt.Errorf("unknown type %s", t)
	}

	if t.Base == "void" && !t.Struct {
		if pos == posReturn {
			return "", nil
		}
		return "", fmt.Errorf("void is not a value type")
	}
	if g, ok := scalarTypes[t.Base]; ok && !t.Struct {
		return g, nil
	}
	if s, ok := h.structByName(t.Base); ok {
		if pos != posField {
			return "", fmt.Errorf("struct %s passed by value is not supported", t.Base)
		}
		return exportedName(s.Name), nil
	}
	return "", fmt.Errorf("unknown type %s", t)
}

// exportedName converts snake_case C identifiers to exported Go names:
// yukarin_s_forward -> YukarinSForward.
func exportedName(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// localName converts snake_case C identifiers to unexported Go names:
// root_dir_path -> rootDirPath.
func localName(s string) string {
	r := []rune(exportedName(s))
	r[0] = unicode.ToLower(r[0])
	n := string(r)
	if gotoken.IsKeyword(n) {
		n += "_"
	}
	return n
}
