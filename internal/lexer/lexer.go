// Package lexer turns one extracted markup region into a typed token
// sequence. Lexing is context sensitive: attribute position and child
// content follow different rules, tracked by two state flags.
package lexer

import (
	"fmt"
	"strings"

	"github.com/conneroisu/tagforge/internal/errors"
)

// Kind classifies a token.
type Kind int

const (
	OpenTag Kind = iota
	ClosingOpenTag
	CloseTag
	SelfClosingTag
	TagName
	PropName
	Equals
	StringLiteral
	CodeBlock
	TextContent
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case OpenTag:
		return "OpenTag"
	case ClosingOpenTag:
		return "ClosingOpenTag"
	case CloseTag:
		return "CloseTag"
	case SelfClosingTag:
		return "SelfClosingTag"
	case TagName:
		return "TagName"
	case PropName:
		return "PropName"
	case Equals:
		return "Equals"
	case StringLiteral:
		return "StringLiteral"
	case CodeBlock:
		return "CodeBlock"
	case TextContent:
		return "TextContent"
	default:
		return "Unknown"
	}
}

// Token is one lexed unit. Raw is the exact source slice: string literals
// keep both quotes, code blocks keep both braces, text content is trimmed.
type Token struct {
	Kind Kind
	Raw  string
}

type lexer struct {
	src    string
	pos    int
	tokens []Token

	// expectTagName is set right after '<' or '</' and cleared when the
	// next identifier is consumed. inAttributes is set from tag-name
	// consumption until the matching '>' or '/>'.
	expectTagName bool
	inAttributes  bool
}

// Tokenize lexes one region's content into an ordered token sequence. An
// unterminated string literal or code block is a hard lex error, never a
// silent truncation.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src}

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == '<':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
				l.emit(ClosingOpenTag, "</")
				l.pos += 2
			} else {
				l.emit(OpenTag, "<")
				l.pos++
			}
			l.expectTagName = true

		case c == '{':
			raw, err := l.scanCodeBlock()
			if err != nil {
				return nil, err
			}
			l.emit(CodeBlock, raw)

		case l.inAttributes:
			if err := l.lexAttribute(c); err != nil {
				return nil, err
			}

		case l.expectTagName && isIdentStart(c):
			l.emit(TagName, l.scanIdent())
			l.expectTagName = false
			l.inAttributes = true

		case l.expectTagName && isSpace(c):
			l.pos++

		default:
			l.lexText()
		}
	}

	return l.tokens, nil
}

// lexAttribute handles one step inside a start tag, between the tag name and
// the closing '>' or '/>'.
func (l *lexer) lexAttribute(c byte) error {
	switch {
	case c == '>':
		l.emit(CloseTag, ">")
		l.inAttributes = false
		l.pos++

	case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '>':
		l.emit(SelfClosingTag, "/>")
		l.inAttributes = false
		l.pos += 2

	case c == '=':
		l.emit(Equals, "=")
		l.pos++

	case c == '"' || c == '\'':
		raw, err := l.scanString()
		if err != nil {
			return err
		}
		l.emit(StringLiteral, raw)

	case isIdentStart(c):
		l.emit(PropName, l.scanIdent())

	default:
		// Whitespace and anything unrecognized between attributes is
		// insignificant.
		l.pos++
	}

	return nil
}

// lexText consumes a content run up to the next '<' or '{'. The run is
// trimmed and dropped entirely when empty.
func (l *lexer) lexText() {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '<' && l.src[l.pos] != '{' {
		l.pos++
	}

	if text := strings.TrimSpace(l.src[start:l.pos]); text != "" {
		l.emit(TextContent, text)
	}
}

// scanString consumes a quoted literal inclusive of both quotes. A backslash
// escapes the following character and never terminates the string.
func (l *lexer) scanString() (string, error) {
	quote := l.src[l.pos]
	start := l.pos

	for k := l.pos + 1; k < len(l.src); k++ {
		switch l.src[k] {
		case '\\':
			k++
		case quote:
			l.pos = k + 1
			return l.src[start : k+1], nil
		}
	}

	return "", errors.NewLexError("unterminated_string",
		fmt.Sprintf("unterminated string literal starting at offset %d", start))
}

// scanCodeBlock consumes a brace-delimited block inclusive of both braces,
// depth counting nested braces and ignoring braces that occur inside quoted
// substrings within the block.
func (l *lexer) scanCodeBlock() (string, error) {
	start := l.pos
	depth := 0
	inString := false
	var quote byte

	for k := l.pos; k < len(l.src); k++ {
		c := l.src[k]

		if inString {
			if c == '\\' {
				k++
			} else if c == quote {
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				l.pos = k + 1
				return l.src[start : k+1], nil
			}
		}
	}

	return "", errors.NewLexError("unterminated_code_block",
		fmt.Sprintf("unterminated code block starting at offset %d", start))
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) emit(kind Kind, raw string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Raw: raw})
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
