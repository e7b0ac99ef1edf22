package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/tagforge/internal/errors"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{OpenTag, "OpenTag"},
		{ClosingOpenTag, "ClosingOpenTag"},
		{CloseTag, "CloseTag"},
		{SelfClosingTag, "SelfClosingTag"},
		{TagName, "TagName"},
		{PropName, "PropName"},
		{Equals, "Equals"},
		{StringLiteral, "StringLiteral"},
		{CodeBlock, "CodeBlock"},
		{TextContent, "TextContent"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
}

func TestTokenizeSelfClosing(t *testing.T) {
	tokens, err := Tokenize(`<Loading />`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{OpenTag, TagName, SelfClosingTag}, kinds(tokens))
	assert.Equal(t, "Loading", tokens[1].Raw)
}

func TestTokenizeStringProp(t *testing.T) {
	tokens, err := Tokenize(`<div className="a">x</div>`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		OpenTag, TagName, PropName, Equals, StringLiteral, CloseTag,
		TextContent,
		ClosingOpenTag, TagName, CloseTag,
	}, kinds(tokens))

	// String literals keep both quotes.
	assert.Equal(t, `"a"`, tokens[4].Raw)
	assert.Equal(t, "x", tokens[6].Raw)
}

func TestTokenizeSingleQuotedProp(t *testing.T) {
	tokens, err := Tokenize(`<div title='hi' />`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{OpenTag, TagName, PropName, Equals, StringLiteral, SelfClosingTag}, kinds(tokens))
	assert.Equal(t, `'hi'`, tokens[4].Raw)
}

func TestTokenizeEscapedQuoteInString(t *testing.T) {
	tokens, err := Tokenize(`<div title="a\"b" />`)
	require.NoError(t, err)

	require.Equal(t, StringLiteral, tokens[4].Kind)
	assert.Equal(t, `"a\"b"`, tokens[4].Raw)
}

func TestTokenizeCodeBlockProp(t *testing.T) {
	tokens, err := Tokenize(`<div onclick={handle(e)} />`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{OpenTag, TagName, PropName, Equals, CodeBlock, SelfClosingTag}, kinds(tokens))
	assert.Equal(t, `{handle(e)}`, tokens[4].Raw)
}

func TestTokenizeNestedCodeBlock(t *testing.T) {
	tokens, err := Tokenize(`<div>{fn({a: 1})}</div>`)
	require.NoError(t, err)

	require.Equal(t, CodeBlock, tokens[3].Kind)
	assert.Equal(t, `{fn({a: 1})}`, tokens[3].Raw)
}

func TestTokenizeBracesInsideStringInCodeBlock(t *testing.T) {
	// The '}' inside the quoted substring must not close the block.
	tokens, err := Tokenize(`<div>{say("}")}</div>`)
	require.NoError(t, err)

	require.Equal(t, CodeBlock, tokens[3].Kind)
	assert.Equal(t, `{say("}")}`, tokens[3].Raw)
}

func TestTokenizeTextContent(t *testing.T) {
	tokens, err := Tokenize("<p>  Say \"Hi\" to = everyone  </p>")
	require.NoError(t, err)

	require.Equal(t, TextContent, tokens[3].Kind)
	// Quotes and '=' are plain text outside attributes; surrounding
	// whitespace is trimmed.
	assert.Equal(t, `Say "Hi" to = everyone`, tokens[3].Raw)
}

func TestTokenizeWhitespaceOnlyTextDropped(t *testing.T) {
	tokens, err := Tokenize("<div>   \n\t  </div>")
	require.NoError(t, err)

	assert.Equal(t, []Kind{OpenTag, TagName, CloseTag, ClosingOpenTag, TagName, CloseTag}, kinds(tokens))
}

func TestTokenizeClosingTag(t *testing.T) {
	tokens, err := Tokenize(`</div>`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{ClosingOpenTag, TagName, CloseTag}, kinds(tokens))
	assert.Equal(t, "div", tokens[1].Raw)
}

func TestTokenizeHyphenatedNames(t *testing.T) {
	tokens, err := Tokenize(`<my-tag data-value="1" />`)
	require.NoError(t, err)

	assert.Equal(t, "my-tag", tokens[1].Raw)
	assert.Equal(t, "data-value", tokens[2].Raw)
}

func TestTokenizeMixedChildren(t *testing.T) {
	tokens, err := Tokenize(`<div>before{x}<span>in</span>after</div>`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		OpenTag, TagName, CloseTag,
		TextContent, CodeBlock,
		OpenTag, TagName, CloseTag, TextContent, ClosingOpenTag, TagName, CloseTag,
		TextContent,
		ClosingOpenTag, TagName, CloseTag,
	}, kinds(tokens))
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`<div title="never closed>`)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeLex))
}

func TestTokenizeUnterminatedCodeBlock(t *testing.T) {
	_, err := Tokenize(`<div>{x`)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeLex))
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
