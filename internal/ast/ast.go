// Package ast defines the element tree produced by parsing one embedded
// markup region. Trees are built bottom-up during parsing: every Element
// exclusively owns its subtree, so no sharing or cycles are possible.
package ast

// Node is a child of an Element. Implementations are Text, CodeExpression,
// and *Element; the marker method keeps the set closed so consumption sites
// can type-switch exhaustively.
type Node interface {
	node()
}

// Text is literal character content between tags.
type Text struct {
	Value string
}

func (Text) node() {}

// CodeExpression is a host-language expression that was written inside a
// brace block. The source is passed through verbatim, never inspected.
type CodeExpression struct {
	Src string
}

func (CodeExpression) node() {}

// Prop is a single attribute. Raw holds the value exactly as written: for
// string props the quotes are included, for code props the outer braces have
// been stripped and the expression trimmed.
type Prop struct {
	Name string
	Raw  string
}

// Element is one parsed tag with its attributes and ordered children.
// StringProps and CodeProps preserve encounter order so rendering is
// deterministic.
type Element struct {
	TagName     string
	StringProps []Prop
	CodeProps   []Prop
	Children    []Node
}

func (*Element) node() {}
