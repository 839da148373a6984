package bindgen

import (
	"fmt"
	"strings"
)

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokKind
	text string
	line int
}

func (t token) is(kind tokKind, text string) bool { return t.kind == kind && t.text == text }

// lex splits src into tokens. Comments and preprocessor lines are dropped;
// object-like #define names are returned separately.
func lex(src string) ([]token, []string, error) {
	var (
		toks      []token
		macros    []string
		line      = 1
		lineStart = true
	)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			line++
			lineStart = true
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '#' && lineStart:
			end := i
			for end < len(src) {
				if src[end] == '\\' && end+1 < len(src) && src[end+1] == '\n' {
					line++
					end += 2
					continue
				}
				if src[end] == '\n' {
					break
				}
				end++
			}
			if name, ok := objectMacro(src[i+1 : end]); ok {
				macros = append(macros, name)
			}
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, nil, fmt.Errorf("line %d: unterminated comment", line)
			}
			line += strings.Count(src[i:i+2+end], "\n")
			i += end + 4
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], line: line})
			lineStart = false
			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], line: line})
			lineStart = false
			i = j
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' {
					j++
				}
				if j < len(src) && src[j] == '\n' {
					return nil, nil, fmt.Errorf("line %d: unterminated string literal", line)
				}
				j++
			}
			if j >= len(src) {
				return nil, nil, fmt.Errorf("line %d: unterminated string literal", line)
			}
			toks = append(toks, token{kind: tokString, text: src[i+1 : j], line: line})
			lineStart = false
			i = j + 1
		default:
			toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
			lineStart = false
			i++
		}
	}
	return toks, macros, nil
}

// objectMacro reports the macro name of a "define NAME ..." directive body.
// Function-like macros (NAME immediately followed by '(') are not reported.
func objectMacro(directive string) (string, bool) {
	d := strings.TrimSpace(directive)
	if !strings.HasPrefix(d, "define") {
		return "", false
	}
	d = strings.TrimLeft(d[len("define"):], " \t")
	n := 0
	for n < len(d) && isIdentPart(d[n]) {
		n++
	}
	if n == 0 || !isIdentStart(d[0]) {
		return "", false
	}
	if n < len(d) && d[n] == '(' {
		return "", false
	}
	return d[:n], true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }
