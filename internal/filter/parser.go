package filter

import (
	"fmt"
	"strings"

	apperrors "task-cli/internal/errors"
)

// Grammar:
//
//	expr   := term ( OR term )*
//	term   := factor ( AND factor )*
//	factor := "(" expr ")" | clause
//	clause := FIELD ":" VALUE word*
//
// Bare words following a clause extend its value, so title:buy milk
// compares the title against "buy milk". A following word starts a new
// clause only when the text before its colon names a field, so
// title:meet at 10:30 keeps "10:30" in the title.
type parser struct {
	input  string
	tokens []token
	pos    int
}

// Parse parses a filter expression without normalizing clause values.
// A blank filter yields a nil predicate.
func Parse(input string) (Predicate, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{input: input, tokens: tokens}
	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch tok := p.peek(); tok.kind {
	case tokenEOF:
		return pred, nil
	case tokenRParen:
		return nil, p.errorAt(tok, "unbalanced ')'")
	default:
		return nil, p.errorAt(tok, fmt.Sprintf("expected AND or OR before %q", tok.raw))
	}
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorAt(tok token, reason string) error {
	return apperrors.NewMalformedFilterError(p.input, tok.pos, reason)
}

func (p *parser) parseExpr() (Predicate, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	terms := []Predicate{first}
	for p.peek().kind == tokenOr {
		p.next()
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	if len(terms) == 1 {
		return first, nil
	}
	return Or{Terms: flattenOr(terms)}, nil
}

func (p *parser) parseTerm() (Predicate, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	terms := []Predicate{first}
	for p.peek().kind == tokenAnd {
		p.next()
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		terms = append(terms, f)
	}

	if len(terms) == 1 {
		return first, nil
	}
	return And{Terms: flattenAnd(terms)}, nil
}

func (p *parser) parseFactor() (Predicate, error) {
	tok := p.next()
	switch tok.kind {
	case tokenLParen:
		if p.peek().kind == tokenRParen {
			return nil, p.errorAt(p.peek(), "empty parentheses")
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, p.errorAt(tok, "missing ')'")
		}
		return inner, nil
	case tokenWord:
		return p.parseClause(tok)
	case tokenEOF:
		return nil, p.errorAt(tok, "expected a clause")
	default:
		return nil, p.errorAt(tok, fmt.Sprintf("expected a clause, found %s", tok.kind))
	}
}

func (p *parser) parseClause(tok token) (Predicate, error) {
	if tok.colon < 0 {
		return nil, apperrors.NewMalformedClauseError(tok.raw)
	}

	name := tok.text[:tok.colon]
	field, ok := lookupField(name)
	if !ok {
		return nil, apperrors.NewUnknownFilterFieldError(name, Fields())
	}

	parts := []string{tok.text[tok.colon+1:]}
	raw := []string{tok.raw}
	for {
		cont := p.peek()
		if cont.kind != tokenWord || startsClause(cont) {
			break
		}
		p.next()
		parts = append(parts, cont.text)
		raw = append(raw, cont.raw)
	}

	value := strings.TrimSpace(strings.Join(parts, " "))
	if value == "" {
		return nil, apperrors.NewMalformedClauseError(strings.Join(raw, " "))
	}
	return Leaf{Field: field, Value: value}, nil
}

func startsClause(tok token) bool {
	if tok.colon < 0 {
		return false
	}
	_, ok := lookupField(tok.text[:tok.colon])
	return ok
}

// flattenAnd and flattenOr merge nested nodes of the same kind produced by
// parentheses, so (a AND b) AND c becomes a single And of three terms.
func flattenAnd(terms []Predicate) []Predicate {
	out := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if n, ok := t.(And); ok {
			out = append(out, n.Terms...)
			continue
		}
		out = append(out, t)
	}
	return out
}

func flattenOr(terms []Predicate) []Predicate {
	out := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if n, ok := t.(Or); ok {
			out = append(out, n.Terms...)
			continue
		}
		out = append(out, t)
	}
	return out
}
