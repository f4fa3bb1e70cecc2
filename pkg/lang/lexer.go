// Package lang implements the script language's lexer and recursive
// descent parser, generalized from JSONata's path-expression grammar to
// the Jsonnet-flavored surface (`local`, `function(...)`, `if/then/
// else`) a DataSonnet-family script language exposes. This package
// exists so the evaluator and standard library have something concrete
// to run scripts through.
package lang

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tNumber
	tString
	tPunct
	tKeyword
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

var keywords = map[string]bool{
	"local": true, "function": true, "if": true, "then": true,
	"else": true, "true": true, "false": true, "null": true,
}

type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpaceAndComments()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tEOF, pos: l.pos})
			return l.toks, nil
		}
		start := l.pos
		c := l.src[l.pos]
		switch {
		case c == '"' || c == '\'':
			s, err := l.readString(c)
			if err != nil {
				return nil, err
			}
			l.toks = append(l.toks, token{kind: tString, text: s, pos: start})
		case isDigit(c):
			l.readNumber(start)
		case isIdentStart(c):
			l.readIdent(start)
		default:
			if err := l.readPunct(start); err != nil {
				return nil, err
			}
		}
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end == -1 {
				l.pos = len(l.src)
				return
			}
			l.pos += 2 + end + 2
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (l *lexer) readString(quote byte) (string, error) {
	l.pos++ // skip opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", fmt.Errorf("unterminated string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			return b.String(), nil
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				b.WriteByte(esc)
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		b.WriteRune(r)
		l.pos += size
	}
}

func (l *lexer) readNumber(start int) {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	text := l.src[start:l.pos]
	n, _ := strconv.ParseFloat(text, 64)
	l.toks = append(l.toks, token{kind: tNumber, text: text, num: n, pos: start})
}

func (l *lexer) readIdent(start int) {
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	kind := tIdent
	if keywords[text] {
		kind = tKeyword
	}
	l.toks = append(l.toks, token{kind: kind, text: text, pos: start})
}

var multiCharPuncts = []string{
	"==", "!=", "<=", ">=", "&&", "||", "=>",
}

func (l *lexer) readPunct(start int) error {
	rest := l.src[l.pos:]
	for _, p := range multiCharPuncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			l.toks = append(l.toks, token{kind: tPunct, text: p, pos: start})
			return nil
		}
	}
	c := l.src[l.pos]
	switch c {
	case '(', ')', '[', ']', '{', '}', ',', ':', ';', '.', '+', '-', '*', '/', '%',
		'<', '>', '!', '=', '?':
		l.pos++
		l.toks = append(l.toks, token{kind: tPunct, text: string(c), pos: start})
		return nil
	default:
		return fmt.Errorf("unexpected character %q at position %d", c, start)
	}
}
