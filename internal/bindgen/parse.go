package bindgen

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a C header and returns its exported functions and plain-data
// types. Declarations outside the supported subset are reported as errors
// rather than skipped, so a header change can never silently drop a symbol.
func Parse(r io.Reader) (*Header, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	toks, macros, err := lex(string(src))
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks:   toks,
		macros: make(map[string]bool, len(macros)),
		h:      &Header{Aliases: make(map[string]CType), Macros: macros},
	}
	for _, m := range macros {
		p.macros[m] = true
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.h, nil
}

type parser struct {
	toks   []token
	pos    int
	macros map[string]bool
	h      *Header
	// open extern "C" blocks
	linkage int
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peek(off int) token {
	if p.pos+off >= len(p.toks) {
		return token{kind: tokPunct}
	}
	return p.toks[p.pos+off]
}

func (p *parser) parse() error {
	seen := make(map[string]int)
	for !p.eof() {
		t := p.peek(0)
		switch {
		case t.is(tokIdent, "extern") && p.peek(1).kind == tokString:
			p.pos += 2
			if p.peek(0).is(tokPunct, "{") {
				p.pos++
				p.linkage++
			}
		case t.is(tokPunct, "}") && p.linkage > 0:
			p.pos++
			p.linkage--
		case t.is(tokPunct, ";"):
			p.pos++
		case t.is(tokIdent, "typedef"):
			if err := p.parseTypedef(); err != nil {
				return err
			}
		default:
			f, err := p.parseFunc()
			if err != nil {
				return err
			}
			if prev, dup := seen[f.Name]; dup {
				return fmt.Errorf("line %d: %s already declared on line %d", f.Line, f.Name, prev)
			}
			seen[f.Name] = f.Line
			p.h.Funcs = append(p.h.Funcs, f)
		}
	}
	if p.linkage != 0 {
		return fmt.Errorf("unterminated extern block")
	}
	return nil
}

// statement collects tokens up to the next top-level ';', dropping attribute
// macros. The terminating ';' is consumed.
func (p *parser) statement() ([]token, error) {
	start := p.peek(0).line
	var out []token
	depth := 0
	for !p.eof() {
		t := p.toks[p.pos]
		p.pos++
		switch {
		case t.kind == tokIdent && p.macros[t.text]:
			continue
		case t.is(tokPunct, "(") || t.is(tokPunct, "{"):
			depth++
		case t.is(tokPunct, ")") || t.is(tokPunct, "}"):
			depth--
		case t.is(tokPunct, ";") && depth == 0:
			return out, nil
		}
		out = append(out, t)
	}
	return nil, fmt.Errorf("line %d: missing ';'", start)
}

func (p *parser) parseFunc() (Func, error) {
	line := p.peek(0).line
	toks, err := p.statement()
	if err != nil {
		return Func{}, err
	}
	if len(toks) > 0 && toks[0].is(tokIdent, "extern") {
		toks = toks[1:]
	}
	open := -1
	for i, t := range toks {
		if t.is(tokPunct, "(") {
			open = i
			break
		}
	}
	if open < 1 || toks[open-1].kind != tokIdent {
		return Func{}, fmt.Errorf("line %d: unsupported declaration %q", line, joinTokens(toks))
	}
	if !toks[len(toks)-1].is(tokPunct, ")") {
		return Func{}, fmt.Errorf("line %d: unsupported declaration %q", line, joinTokens(toks))
	}
	f := Func{Name: toks[open-1].text, Line: line}
	ret, name, err := parseType(toks[:open-1], false)
	if err != nil {
		return Func{}, fmt.Errorf("line %d: %s: return type: %w", line, f.Name, err)
	}
	if name != "" {
		return Func{}, fmt.Errorf("line %d: %s: unexpected %q in return type", line, f.Name, name)
	}
	f.Return = ret

	inner := toks[open+1 : len(toks)-1]
	args := splitArgs(inner)
	if len(args) == 1 && len(args[0]) == 1 && args[0][0].is(tokIdent, "void") {
		args = nil
	}
	for i, a := range args {
		if len(a) == 0 {
			return Func{}, fmt.Errorf("line %d: %s: empty parameter %d", line, f.Name, i)
		}
		for _, t := range a {
			if t.is(tokPunct, "(") || t.is(tokPunct, "[") {
				return Func{}, fmt.Errorf("line %d: %s: parameter %d: unsupported declarator", line, f.Name, i)
			}
		}
		typ, pname, err := parseType(a, true)
		if err != nil {
			return Func{}, fmt.Errorf("line %d: %s: parameter %d: %w", line, f.Name, i, err)
		}
		if typ.Base == "void" && typ.Pointers == 0 {
			return Func{}, fmt.Errorf("line %d: %s: parameter %d has type void", line, f.Name, i)
		}
		if pname == "" {
			pname = "arg" + strconv.Itoa(i)
		}
		f.Params = append(f.Params, Param{Name: pname, Type: typ})
	}
	return f, nil
}

func (p *parser) parseTypedef() error {
	line := p.peek(0).line
	toks, err := p.statement()
	if err != nil {
		return err
	}
	toks = toks[1:] // typedef
	if len(toks) > 0 && toks[0].is(tokIdent, "struct") {
		brace := -1
		for i, t := range toks {
			if t.is(tokPunct, "{") {
				brace = i
				break
			}
		}
		if brace >= 0 {
			return p.parseStructTypedef(toks, brace, line)
		}
	}
	if len(toks) < 2 || toks[len(toks)-1].kind != tokIdent {
		return fmt.Errorf("line %d: unsupported typedef %q", line, joinTokens(toks))
	}
	name := toks[len(toks)-1].text
	typ, extra, err := parseType(toks[:len(toks)-1], false)
	if err != nil {
		return fmt.Errorf("line %d: typedef %s: %w", line, name, err)
	}
	if extra != "" {
		return fmt.Errorf("line %d: typedef %s: unexpected %q", line, name, extra)
	}
	p.h.Aliases[name] = typ
	return nil
}

func (p *parser) parseStructTypedef(toks []token, brace, line int) error {
	var tag string
	if brace == 2 && toks[1].kind == tokIdent {
		tag = toks[1].text
	} else if brace != 1 {
		return fmt.Errorf("line %d: unsupported struct typedef", line)
	}
	closing := -1
	for i := len(toks) - 1; i > brace; i-- {
		if toks[i].is(tokPunct, "}") {
			closing = i
			break
		}
	}
	if closing < 0 || closing != len(toks)-2 || toks[len(toks)-1].kind != tokIdent {
		return fmt.Errorf("line %d: unsupported struct typedef", line)
	}
	s := Struct{Name: toks[len(toks)-1].text, Tag: tag, Line: line}
	body := toks[brace+1 : closing]
	var member []token
	for _, t := range body {
		if !t.is(tokPunct, ";") {
			member = append(member, t)
			continue
		}
		for _, mt := range member {
			if mt.is(tokPunct, "[") || mt.is(tokPunct, "(") || mt.is(tokPunct, ":") {
				return fmt.Errorf("line %d: struct %s: unsupported member %q", line, s.Name, joinTokens(member))
			}
		}
		typ, name, err := parseType(member, true)
		if err != nil {
			return fmt.Errorf("line %d: struct %s: %w", line, s.Name, err)
		}
		if name == "" {
			return fmt.Errorf("line %d: struct %s: unnamed member %q", line, s.Name, joinTokens(member))
		}
		s.Fields = append(s.Fields, Field{Name: name, Type: typ})
		member = member[:0]
	}
	if len(member) > 0 {
		return fmt.Errorf("line %d: struct %s: missing ';' after %q", line, s.Name, joinTokens(member))
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("line %d: struct %s has no members", line, s.Name)
	}
	p.h.Structs = append(p.h.Structs, s)
	return nil
}

// builtinWords are the identifiers that can only be part of a type, never a
// declarator name.
var builtinWords = map[string]bool{
	"void": true, "bool": true, "_Bool": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
	"signed": true, "unsigned": true,
}

// parseType splits a declaration's tokens into its type and, when allowed,
// the declared name.
func parseType(toks []token, named bool) (CType, string, error) {
	var (
		t     CType
		words []string
	)
	for _, tok := range toks {
		switch {
		case tok.is(tokPunct, "*"):
			t.Pointers++
		case tok.is(tokIdent, "const"):
			t.Const = true
		case tok.is(tokIdent, "volatile"), tok.is(tokIdent, "restrict"), tok.is(tokIdent, "__restrict"):
		case tok.is(tokIdent, "struct"):
			t.Struct = true
		case tok.kind == tokIdent:
			words = append(words, tok.text)
		default:
			return CType{}, "", fmt.Errorf("unexpected %q", tok.text)
		}
	}
	var name string
	if named && len(words) >= 2 && !builtinWords[words[len(words)-1]] {
		name = words[len(words)-1]
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return CType{}, "", fmt.Errorf("missing type")
	}
	t.Base = strings.Join(words, " ")
	return t, name, nil
}

func splitArgs(toks []token) [][]token {
	if len(toks) == 0 {
		return nil
	}
	var (
		out   [][]token
		cur   []token
		depth int
	)
	for _, t := range toks {
		switch {
		case t.is(tokPunct, "("):
			depth++
		case t.is(tokPunct, ")"):
			depth--
		case t.is(tokPunct, ",") && depth == 0:
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return append(out, cur)
}

func joinTokens(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}
