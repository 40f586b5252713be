package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ctessum/unit"
)

// ParseError reports a malformed expression or an unknown unit symbol. It
// carries the original expression so the offending stored record can be
// located from the error message alone.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unit expression %q: %s (offset %d)", e.Expr, e.Msg, e.Pos)
}

// The grammar is deliberately closed: symbols, literal numbers, '*', '/',
// '**' with an integer exponent, and parentheses. Nothing else.
//
//	expr   := term (('*' | '/') term)*
//	term   := factor ('**' ['-'] INT)?
//	factor := IDENT | NUMBER | '(' expr ')'

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokMul
	tokDiv
	tokPow
	tokMinus
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func lex(expr string) ([]token, *ParseError) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isAlpha(c):
			start := i
			for i < len(expr) && isAlpha(expr[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, expr[start:i], start})
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, expr[start:i], start})
		case c == '*':
			if i+1 < len(expr) && expr[i+1] == '*' {
				toks = append(toks, token{tokPow, "**", i})
				i += 2
			} else {
				toks = append(toks, token{tokMul, "*", i})
				i++
			}
		case c == '/':
			toks = append(toks, token{tokDiv, "/", i})
			i++
		case c == '-':
			toks = append(toks, token{tokMinus, "-", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		default:
			return nil, &ParseError{Expr: expr, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return append(toks, token{tokEOF, "", len(expr)}), nil
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// noneToken rewrites the serialized form of a missing unit to the
// dimensionless symbol before parsing.
var noneToken = regexp.MustCompile(`\bNone\b`)

type parser struct {
	reg  Registry
	expr string
	toks []token
	i    int
}

func parse(reg Registry, expr string) (Unit, error) {
	rewritten := strings.TrimSpace(noneToken.ReplaceAllString(expr, "dimensionless"))
	toks, lerr := lex(rewritten)
	if lerr != nil {
		return Unit{}, lerr
	}
	p := &parser{reg: reg, expr: rewritten, toks: toks}
	q, err := p.parseExpr()
	if err != nil {
		return Unit{}, err
	}
	if p.cur().kind != tokEOF {
		return Unit{}, p.errorf("unexpected %q after expression", p.cur().text)
	}
	return Unit{expr: rewritten, qty: q}, nil
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	p.i++
	return t
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Expr: p.expr, Pos: p.cur().pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (*unit.Unit, *ParseError) {
	q, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().kind {
		case tokMul:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			q = unit.Mul(q, rhs)
		case tokDiv:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			q = unit.Div(q, rhs)
		default:
			return q, nil
		}
	}
}

func (p *parser) parseTerm() (*unit.Unit, *ParseError) {
	q, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokPow {
		return q, nil
	}
	p.next()
	neg := false
	if p.cur().kind == tokMinus {
		neg = true
		p.next()
	}
	if p.cur().kind != tokNumber {
		return nil, p.errorf("expected integer exponent, got %q", p.cur().text)
	}
	n, convErr := strconv.Atoi(p.next().text)
	if convErr != nil {
		return nil, p.errorf("exponent must be an integer: %v", convErr)
	}
	if neg {
		n = -n
	}
	return pow(q, n), nil
}

func (p *parser) parseFactor() (*unit.Unit, *ParseError) {
	switch t := p.cur(); t.kind {
	case tokIdent:
		p.next()
		q, ok := p.reg.Lookup(t.text)
		if !ok {
			return nil, &ParseError{Expr: p.expr, Pos: t.pos, Msg: fmt.Sprintf("unknown unit %q", t.text)}
		}
		return q.Clone(), nil
	case tokNumber:
		p.next()
		v, convErr := strconv.ParseFloat(t.text, 64)
		if convErr != nil {
			return nil, &ParseError{Expr: p.expr, Pos: t.pos, Msg: fmt.Sprintf("bad number %q", t.text)}
		}
		return unit.New(v, unit.Dimless), nil
	case tokLParen:
		p.next()
		q, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, p.errorf("expected ')', got %q", p.cur().text)
		}
		p.next()
		return q, nil
	default:
		return nil, p.errorf("expected unit symbol, got %q", t.text)
	}
}

// pow raises q to an integer power by repeated multiplication; exponents in
// unit expressions are small.
func pow(q *unit.Unit, n int) *unit.Unit {
	out := unit.New(1, unit.Dimless)
	for i := 0; i < int(math.Abs(float64(n))); i++ {
		out = unit.Mul(out, q)
	}
	if n < 0 {
		out = unit.Div(unit.New(1, unit.Dimless), out)
	}
	return out
}
