package filter

import (
	"strings"

	apperrors "task-cli/internal/errors"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenWord
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of filter"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenAnd:
		return "AND"
	case tokenOr:
		return "OR"
	default:
		return "word"
	}
}

type token struct {
	kind tokenKind
	text string // unquoted text of a word
	raw  string // source text of the token
	pos  int
	// colon is the index in text of the first ':' outside quotes, or -1.
	colon int
}

func isOperator(s string) bool {
	return strings.EqualFold(s, "and") || strings.EqualFold(s, "or")
}

// lex splits a filter into tokens. Whitespace separates words and
// parentheses are always tokens of their own unless quoted. Double quotes
// group characters into a word; AND and OR are operators only when unquoted.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "(", pos: i, colon: -1})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")", pos: i, colon: -1})
			i++
		default:
			tok, next, err := lexWord(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input), colon: -1})
	return tokens, nil
}

func lexWord(input string, start int) (token, int, error) {
	var b strings.Builder
	colon := -1
	quoted := false
	i := start
loop:
	for i < len(input) {
		c := input[i]
		switch c {
		case ' ', '\t', '\n', '\r', '(', ')':
			break loop
		case '"':
			end := strings.IndexByte(input[i+1:], '"')
			if end < 0 {
				return token{}, 0, apperrors.NewMalformedFilterError(input, i, "unterminated quote")
			}
			b.WriteString(input[i+1 : i+1+end])
			quoted = true
			i += end + 2
		case ':':
			if colon < 0 {
				colon = b.Len()
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	tok := token{kind: tokenWord, text: b.String(), raw: input[start:i], pos: start, colon: colon}
	if !quoted {
		switch strings.ToLower(tok.text) {
		case "and":
			tok.kind = tokenAnd
		case "or":
			tok.kind = tokenOr
		}
	}
	return tok, i, nil
}
