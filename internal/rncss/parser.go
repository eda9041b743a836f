package rncss

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// commentPattern matches /* ... */ comments, including multi-line ones
var commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

// Clean strips comments from a stylesheet before parsing.
func Clean(src string) string {
	return commentPattern.ReplaceAllString(src, "")
}

// lexeme is a token with its source text
type lexeme struct {
	tt   css.TokenType
	text string
}

// Parser turns CSS text into rules
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses cleaned CSS text into rules in source order.
// At-rules (and any rules nested in them) are skipped. Values keep their
// source text with whitespace runs collapsed to single spaces.
func (p *Parser) Parse(src string) ([]Rule, error) {
	lexer := css.NewLexer(parse.NewInputString(src))

	var rules []Rule
	for {
		tt, text := lexer.Next()

		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, &ParseError{Err: err}
			}
			return rules, nil

		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken:
			continue

		case css.AtKeywordToken:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(text)))
			if err := p.skipAtRule(lexer); err != nil {
				return nil, err
			}

		case css.RightBraceToken:
			return nil, &ParseError{Err: errors.New("unexpected '}'")}

		default:
			selectors, err := p.readSelectors(lexer, lexeme{tt, string(text)})
			if err != nil {
				return nil, err
			}
			declarations, err := p.readDeclarations(lexer)
			if err != nil {
				return nil, err
			}
			rules = append(rules, Rule{Selectors: selectors, Declarations: declarations})
		}
	}
}

// readSelectors reads a selector list up to and including the opening brace.
// Commas inside parentheses or brackets do not split selectors.
func (p *Parser) readSelectors(lexer *css.Lexer, first lexeme) ([]string, error) {
	var selectors []string
	var current []lexeme
	depth := 0

	flush := func() {
		if s := joinLexemes(current); s != "" {
			selectors = append(selectors, s)
		}
		current = nil
	}

	for lx := first; ; {
		switch lx.tt {
		case css.ErrorToken:
			return nil, lexerError(lexer, "missing '{' after selector")

		case css.LeftBraceToken:
			flush()
			if len(selectors) == 0 {
				return nil, &ParseError{Err: errors.New("missing selector before '{'")}
			}
			return selectors, nil

		case css.RightBraceToken, css.SemicolonToken:
			return nil, &ParseError{Err: fmt.Errorf("unexpected %q in selector %q", lx.text, joinLexemes(current))}

		case css.CommaToken:
			if depth == 0 {
				flush()
			} else {
				current = append(current, lx)
			}

		case css.CommentToken:
			// Dropped

		default:
			depth += nesting(lx.tt)
			current = append(current, lx)
		}

		tt, text := lexer.Next()
		lx = lexeme{tt, string(text)}
	}
}

// readDeclarations reads declarations up to and including the closing brace.
// Nested blocks are skipped.
func (p *Parser) readDeclarations(lexer *css.Lexer) ([]Declaration, error) {
	var declarations []Declaration
	var current []lexeme
	depth := 0

	for {
		tt, text := lexer.Next()

		switch {
		case tt == css.ErrorToken:
			return nil, lexerError(lexer, "missing '}'")

		case tt == css.CommentToken:
			continue

		case tt == css.LeftBraceToken:
			// Nested rules are not supported
			p.log.Debug("Skipping nested block", zap.String("prelude", joinLexemes(current)))
			if err := skipBlock(lexer); err != nil {
				return nil, err
			}
			current, depth = nil, 0

		case tt == css.RightBraceToken || (tt == css.SemicolonToken && depth == 0):
			decl, ok, err := p.declaration(current)
			if err != nil {
				return nil, err
			}
			if ok {
				declarations = append(declarations, decl)
			}
			if tt == css.RightBraceToken {
				return declarations, nil
			}
			current, depth = nil, 0

		default:
			depth += nesting(tt)
			current = append(current, lexeme{tt, string(text)})
		}
	}
}

// declaration builds a Declaration from the tokens between two separators.
// ok is false for empty declarations, custom properties and empty values.
func (p *Parser) declaration(tokens []lexeme) (Declaration, bool, error) {
	raw := joinLexemes(tokens)
	if raw == "" {
		return Declaration{}, false, nil
	}

	colon := -1
	for i, lx := range tokens {
		if lx.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		return Declaration{}, false, &ParseError{Err: fmt.Errorf("expected colon in declaration %q", raw)}
	}

	property := strings.ToLower(joinLexemes(tokens[:colon]))
	if property == "" {
		return Declaration{}, false, &ParseError{Err: fmt.Errorf("missing property name in declaration %q", raw)}
	}
	if strings.HasPrefix(property, "--") {
		p.log.Debug("Skipping custom property", zap.String("property", property))
		return Declaration{}, false, nil
	}

	value := joinLexemes(tokens[colon+1:])
	if value == "" {
		return Declaration{}, false, nil
	}
	return Declaration{Property: property, Value: value}, true, nil
}

// skipAtRule skips an at-rule statement or block.
func (p *Parser) skipAtRule(lexer *css.Lexer) error {
	for {
		tt, _ := lexer.Next()
		switch tt {
		case css.ErrorToken:
			// A statement may end the input without a semicolon
			return lexerError(lexer, "")
		case css.SemicolonToken:
			return nil
		case css.LeftBraceToken:
			return skipBlock(lexer)
		}
	}
}

// skipBlock skips tokens until the block that was just opened is closed.
func skipBlock(lexer *css.Lexer) error {
	depth := 1
	for depth > 0 {
		tt, _ := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return lexerError(lexer, "missing '}'")
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
	}
	return nil
}

// nesting returns how a token changes the parenthesis/bracket depth.
func nesting(tt css.TokenType) int {
	switch tt {
	case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
		return 1
	case css.RightParenthesisToken, css.RightBracketToken:
		return -1
	}
	return 0
}

// joinLexemes rebuilds source text, collapsing whitespace runs to single spaces.
func joinLexemes(tokens []lexeme) string {
	var sb strings.Builder
	space := false
	for _, lx := range tokens {
		if lx.tt == css.WhitespaceToken {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(lx.text)
	}
	return sb.String()
}

// lexerError returns the lexer's error, or msg at end of input (nil for an empty msg).
func lexerError(lexer *css.Lexer, msg string) error {
	if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Err: err}
	}
	if msg == "" {
		return nil
	}
	return &ParseError{Err: errors.New(msg)}
}

// ParseStylesheet cleans and parses CSS text with a no-op logger.
func ParseStylesheet(src string) ([]Rule, error) {
	return NewParser(nil).Parse(Clean(src))
}
