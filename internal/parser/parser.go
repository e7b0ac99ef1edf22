// Package parser builds an element tree from a token sequence by recursive
// descent. A single cursor is threaded through the parser state: every
// recursive call leaves it positioned exactly after the element it consumed,
// so the caller continues where the child ended.
package parser

import (
	"fmt"
	"strings"

	"github.com/conneroisu/tagforge/internal/ast"
	"github.com/conneroisu/tagforge/internal/errors"
	"github.com/conneroisu/tagforge/internal/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse consumes the token sequence of one region into its root element.
// Structural failures (missing tag name, tokens exhausted before a valid
// close, mismatched closing tag) are fatal to this one match only.
func Parse(tokens []lexer.Token) (*ast.Element, error) {
	p := &parser{tokens: tokens}
	return p.parseElement()
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseElement() (*ast.Element, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != lexer.OpenTag {
		return nil, errors.NewSyntaxError("expected_element_start", "expected element start")
	}
	p.pos++

	tok, ok = p.peek()
	if !ok || tok.Kind != lexer.TagName {
		return nil, errors.NewSyntaxError("expected_tag_name", "expected tag name")
	}
	el := &ast.Element{TagName: tok.Raw}
	p.pos++

	if err := p.parseAttributes(el); err != nil {
		return nil, err
	}

	tok, _ = p.peek()
	if tok.Kind == lexer.SelfClosingTag {
		p.pos++
		return el, nil
	}

	// Must be the CloseTag that ended the attribute loop.
	p.pos++

	return el, p.parseChildren(el)
}

// parseAttributes consumes props until the '>' or '/>' that ends the start
// tag. A prop name may be followed by '=', then either a string literal
// (stored raw, quotes included) or a code block (outer braces stripped and
// trimmed). Unexpected tokens are skipped rather than failing the match.
func (p *parser) parseAttributes(el *ast.Element) error {
	for {
		tok, ok := p.peek()
		if !ok {
			return errors.NewSyntaxError("unexpected_end",
				fmt.Sprintf("tokens exhausted inside start tag <%s>", el.TagName)).WithTag(el.TagName)
		}

		switch tok.Kind {
		case lexer.CloseTag, lexer.SelfClosingTag:
			return nil

		case lexer.PropName:
			name := tok.Raw
			p.pos++

			if t, ok := p.peek(); ok && t.Kind == lexer.Equals {
				p.pos++
			}

			t, ok := p.peek()
			if !ok {
				continue
			}
			switch t.Kind {
			case lexer.StringLiteral:
				el.StringProps = append(el.StringProps, ast.Prop{Name: name, Raw: t.Raw})
				p.pos++
			case lexer.CodeBlock:
				el.CodeProps = append(el.CodeProps, ast.Prop{Name: name, Raw: stripBraces(t.Raw)})
				p.pos++
			}

		default:
			p.pos++
		}
	}
}

// parseChildren consumes children until the closing triple
// (ClosingOpenTag, TagName, CloseTag) whose name equals el's tag. That
// triple is the sole terminal transition; a closing sequence naming a
// different tag is a hard error rather than being swallowed as content.
func (p *parser) parseChildren(el *ast.Element) error {
	for {
		tok, ok := p.peek()
		if !ok {
			return errors.NewSyntaxError("unexpected_end",
				fmt.Sprintf("missing closing tag for <%s>", el.TagName)).WithTag(el.TagName)
		}

		switch tok.Kind {
		case lexer.TextContent:
			el.Children = append(el.Children, ast.Text{Value: tok.Raw})
			p.pos++

		case lexer.CodeBlock:
			if src := stripBraces(tok.Raw); src != "" {
				el.Children = append(el.Children, ast.CodeExpression{Src: src})
			}
			p.pos++

		case lexer.OpenTag:
			child, err := p.parseElement()
			if err != nil {
				return err
			}
			el.Children = append(el.Children, child)

		case lexer.ClosingOpenTag:
			name, close, ok := p.closingLookahead()
			if !ok {
				return errors.NewSyntaxError("unexpected_end",
					fmt.Sprintf("malformed closing tag for <%s>", el.TagName)).WithTag(el.TagName)
			}
			if name.Kind != lexer.TagName || close.Kind != lexer.CloseTag {
				return errors.NewSyntaxError("malformed_closing_tag",
					fmt.Sprintf("malformed closing tag for <%s>", el.TagName)).WithTag(el.TagName)
			}
			if name.Raw != el.TagName {
				return errors.NewSyntaxError("mismatched_closing_tag",
					fmt.Sprintf("closing tag </%s> does not match open element <%s>", name.Raw, el.TagName)).WithTag(el.TagName)
			}
			p.pos += 3
			return nil

		default:
			p.pos++
		}
	}
}

// closingLookahead peeks the two tokens after the current ClosingOpenTag.
func (p *parser) closingLookahead() (name, close lexer.Token, ok bool) {
	if p.pos+2 >= len(p.tokens) {
		return lexer.Token{}, lexer.Token{}, false
	}
	return p.tokens[p.pos+1], p.tokens[p.pos+2], true
}

// stripBraces removes exactly one outer brace pair and trims the remainder.
func stripBraces(raw string) string {
	if len(raw) >= 2 && raw[0] == '{' && raw[len(raw)-1] == '}' {
		raw = raw[1 : len(raw)-1]
	}
	return strings.TrimSpace(raw)
}
