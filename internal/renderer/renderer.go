// Package renderer turns a parsed element tree into target factory-call
// syntax. Rendering is a pure function of the tree, the generator config,
// and the base indentation: identical input always yields byte-identical
// output.
package renderer

import (
	"strings"

	"github.com/conneroisu/tagforge/internal/ast"
	"github.com/conneroisu/tagforge/internal/errors"
)

// Config holds the three generator names, set once per run and read only.
// CreateTextName is accepted for output compatibility but the renderer does
// not invoke it: text children are inlined as bare string literals.
type Config struct {
	FactoryName       string
	CreateElementName string
	CreateTextName    string
}

// DefaultConfig returns the default generator names.
func DefaultConfig() Config {
	return Config{
		FactoryName:       "Document",
		CreateElementName: "CreateElement",
		CreateTextName:    "CreateText",
	}
}

// Render generates the factory call for el at the given base indentation.
// Child elements are indented four columns deeper than their parent.
func Render(el *ast.Element, cfg Config, baseIndent int) (string, error) {
	if el == nil {
		return "", errors.NewRenderError("nil_element", "cannot render nil element")
	}
	if el.TagName == "" {
		return "", errors.NewRenderError("empty_tag_name", "element has empty tag name")
	}

	children, err := renderChildren(el, cfg, baseIndent)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(cfg.FactoryName)
	b.WriteByte('.')
	b.WriteString(cfg.CreateElementName)
	b.WriteByte('(')
	b.WriteString(quote(el.TagName))
	b.WriteString(", ")
	b.WriteString(propsExpression(el))

	if len(children) == 0 {
		b.WriteByte(')')
		return b.String(), nil
	}

	childIndent := strings.Repeat(" ", baseIndent+4)
	b.WriteString(",\n")
	for i, child := range children {
		b.WriteString(childIndent)
		b.WriteString(child)
		if i < len(children)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", baseIndent))
	b.WriteByte(')')

	return b.String(), nil
}

func renderChildren(el *ast.Element, cfg Config, baseIndent int) ([]string, error) {
	var out []string

	for _, child := range el.Children {
		switch c := child.(type) {
		case ast.Text:
			out = append(out, quote(escapeText(c.Value)))

		case ast.CodeExpression:
			// A fragment still wrapped in braces after the parser
			// stripped one pair is an incomplete placeholder; drop it
			// rather than emit unparseable output.
			trimmed := strings.TrimSpace(c.Src)
			if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
				continue
			}
			out = append(out, c.Src)

		case *ast.Element:
			rendered, err := Render(c, cfg, baseIndent+4)
			if err != nil {
				return nil, err
			}
			out = append(out, rendered)

		default:
			return nil, errors.NewRenderError("unknown_child", "unknown child node kind").WithTag(el.TagName)
		}
	}

	return out, nil
}

// propsExpression builds the typed initializer for an element's attributes:
// string props first, then code props, both in encounter order.
func propsExpression(el *ast.Element) string {
	var entries []string
	for _, p := range el.StringProps {
		entries = append(entries, pascalize(p.Name)+" = "+p.Raw)
	}
	for _, p := range el.CodeProps {
		entries = append(entries, pascalize(p.Name)+" = "+p.Raw)
	}

	typeName := propsTypeName(el.TagName)
	if len(entries) == 0 {
		return "new " + typeName + " { }"
	}
	return "new " + typeName + " { " + strings.Join(entries, ", ") + " }"
}

// propsTypeName selects the properties type: components (uppercase first
// character) use <TagName>Props, markup elements use Html<Tag>Props with the
// tag name pascalized.
func propsTypeName(tagName string) string {
	if tagName[0] >= 'A' && tagName[0] <= 'Z' {
		return tagName + "Props"
	}
	return "Html" + pascalize(tagName) + "Props"
}

// pascalize splits on '-', uppercases the first character of each segment,
// and concatenates: data-value becomes DataValue, onclick becomes Onclick,
// and the empty key maps to itself.
func pascalize(key string) string {
	if key == "" {
		return key
	}

	var b strings.Builder
	for _, seg := range strings.Split(key, "-") {
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

// escapeText escapes a text child for embedding in a quoted literal. The
// backslash substitution must run first so it cannot double-escape the
// backslashes introduced by the later ones.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}
