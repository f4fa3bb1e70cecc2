package lang

import (
	"fmt"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
)

// Parse lexes and parses a script body (the portion after any header
// block — the engine strips the header with the root package's
// stripHeader before calling this)
// into an *ast.Node.
func Parse(src string) (*ast.Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tEOF {
		return nil, fmt.Errorf("unexpected trailing token %q at position %d", p.cur().text, p.cur().pos)
	}
	return node, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) cur() token  { return p.toks[p.i] }
func (p *parser) advance()    { p.i++ }
func (p *parser) isPunct(s string) bool {
	return p.cur().kind == tPunct && p.cur().text == s
}
func (p *parser) isKeyword(s string) bool {
	return p.cur().kind == tKeyword && p.cur().text == s
}

func (p *parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return fmt.Errorf("expected %q at position %d, got %q", s, p.cur().pos, p.cur().text)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(s string) error {
	if !p.isKeyword(s) {
		return fmt.Errorf("expected keyword %q at position %d, got %q", s, p.cur().pos, p.cur().text)
	}
	p.advance()
	return nil
}

func (p *parser) parseExpr() (*ast.Node, error) {
	switch {
	case p.isKeyword("local"):
		return p.parseLocal()
	case p.isKeyword("if"):
		return p.parseIf()
	default:
		return p.parseOr()
	}
}

func (p *parser) parseLocal() (*ast.Node, error) {
	pos := p.cur().pos
	if err := p.expectKeyword("local"); err != nil {
		return nil, err
	}
	if p.cur().kind != tIdent {
		return nil, fmt.Errorf("expected identifier after local at position %d", p.cur().pos)
	}
	name := p.cur().text
	p.advance()
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	valExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KLocal, Pos: pos, Name: name, LocalValue: valExpr, Body: body}, nil
}

func (p *parser) parseIf() (*ast.Node, error) {
	pos := p.cur().pos
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	thenE, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	elseE, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KIf, Pos: pos, Cond: cond, Then: thenE, Else: elseE}, nil
}

func (p *parser) parseOr() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isPunct("||") {
		pos := p.cur().pos
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.KBinary, Pos: pos, Op: "||", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.isPunct("&&") {
		pos := p.cur().pos
		p.advance()
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.KBinary, Pos: pos, Op: "&&", L: left, R: right}
	}
	return left, nil
}

var cmpOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) parseCmp() (*ast.Node, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tPunct && cmpOps[p.cur().text] {
		op := p.cur().text
		pos := p.cur().pos
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.KBinary, Pos: pos, Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAdd() (*ast.Node, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tPunct && (p.cur().text == "+" || p.cur().text == "-") {
		op := p.cur().text
		pos := p.cur().pos
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.KBinary, Pos: pos, Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseMul() (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tPunct && (p.cur().text == "*" || p.cur().text == "/" || p.cur().text == "%") {
		op := p.cur().text
		pos := p.cur().pos
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.KBinary, Pos: pos, Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (*ast.Node, error) {
	if p.isPunct("-") || p.isPunct("!") {
		op := p.cur().text
		pos := p.cur().pos
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.KUnary, Pos: pos, Op: op, X: x}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (*ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			if p.cur().kind != tIdent {
				return nil, fmt.Errorf("expected identifier after '.' at position %d", p.cur().pos)
			}
			name := p.cur().text
			pos := p.cur().pos
			p.advance()
			node = &ast.Node{Kind: ast.KMember, Pos: pos, Target: node, Name: name}
		case p.isPunct("("):
			pos := p.cur().pos
			p.advance()
			var args []*ast.Node
			for !p.isPunct(")") {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.isPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			node = &ast.Node{Kind: ast.KCall, Pos: pos, Target: node, Args: args}
		case p.isPunct("["):
			pos := p.cur().pos
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			node = &ast.Node{Kind: ast.KIndex, Pos: pos, Target: node, Index: idx}
		default:
			return node, nil
		}
	}
}

func (p *parser) parsePrimary() (*ast.Node, error) {
	tok := p.cur()
	switch {
	case tok.kind == tNumber:
		p.advance()
		return &ast.Node{Kind: ast.KNum, Pos: tok.pos, Num: ast.Num(tok.num)}, nil
	case tok.kind == tString:
		p.advance()
		return &ast.Node{Kind: ast.KStr, Pos: tok.pos, Str: tok.text}, nil
	case tok.kind == tKeyword && tok.text == "true":
		p.advance()
		return &ast.Node{Kind: ast.KBool, Pos: tok.pos, Bool: true}, nil
	case tok.kind == tKeyword && tok.text == "false":
		p.advance()
		return &ast.Node{Kind: ast.KBool, Pos: tok.pos, Bool: false}, nil
	case tok.kind == tKeyword && tok.text == "null":
		p.advance()
		return &ast.Node{Kind: ast.KNull, Pos: tok.pos}, nil
	case tok.kind == tKeyword && tok.text == "function":
		return p.parseLambda()
	case tok.kind == tIdent:
		p.advance()
		return &ast.Node{Kind: ast.KIdent, Pos: tok.pos, Name: tok.text}, nil
	case tok.kind == tPunct && tok.text == "(":
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tok.kind == tPunct && tok.text == "[":
		return p.parseArray()
	case tok.kind == tPunct && tok.text == "{":
		return p.parseObject()
	default:
		return nil, fmt.Errorf("unexpected token %q at position %d", tok.text, tok.pos)
	}
}

func (p *parser) parseLambda() (*ast.Node, error) {
	pos := p.cur().pos
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.isPunct(")") {
		if p.cur().kind != tIdent {
			return nil, fmt.Errorf("expected parameter name at position %d", p.cur().pos)
		}
		params = append(params, p.cur().text)
		p.advance()
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KLambda, Pos: pos, Params: params, Body: body}, nil
}

func (p *parser) parseArray() (*ast.Node, error) {
	pos := p.cur().pos
	p.advance() // [
	var elems []*ast.Node
	for !p.isPunct("]") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KArray, Pos: pos, Elements: elems}, nil
}

func (p *parser) parseObject() (*ast.Node, error) {
	pos := p.cur().pos
	p.advance() // {
	var fields []ast.ObjectField
	for !p.isPunct("}") {
		var field ast.ObjectField
		if p.isPunct("[") {
			p.advance()
			keyExpr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			field.Computed = keyExpr
		} else if p.cur().kind == tIdent || p.cur().kind == tKeyword {
			field.Name = p.cur().text
			p.advance()
		} else if p.cur().kind == tString {
			field.Name = p.cur().text
			p.advance()
		} else {
			return nil, fmt.Errorf("expected object key at position %d", p.cur().pos)
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		field.Value = val
		fields = append(fields, field)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KObject, Pos: pos, Fields: fields}, nil
}
