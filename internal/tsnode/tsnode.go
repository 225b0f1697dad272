// Package tsnode adapts tree-sitter TypeScript syntax nodes to the classify
// handle interfaces. One handle wraps one type node plus the file's source
// bytes; handles are valid only while the owning tree is open.
package tsnode

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sigmap-dev/sigmap/internal/classify"
)

// Node kinds from the tree-sitter-typescript grammar.
const (
	kindPredefinedType    = "predefined_type"
	kindLiteralType       = "literal_type"
	kindArrayType         = "array_type"
	kindUnionType         = "union_type"
	kindIntersectionType  = "intersection_type"
	kindTupleType         = "tuple_type"
	kindGenericType       = "generic_type"
	kindTypeArguments     = "type_arguments"
	kindParenthesizedType = "parenthesized_type"
	kindTypeAnnotation    = "type_annotation"
)

// Handle wraps one type node.
type Handle struct {
	node   *sitter.Node
	source []byte
}

// Wrap builds a type handle for node, unwrapping annotation and parenthesis
// wrappers. Returns nil for a nil node.
func Wrap(node *sitter.Node, source []byte) classify.TypeHandle {
	node = unwrap(node)
	if node == nil {
		return nil
	}
	return &Handle{node: node, source: source}
}

func unwrap(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case kindTypeAnnotation, kindParenthesizedType:
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return nil
}

func (h *Handle) Text() string {
	return nodeText(h.node, h.source)
}

func (h *Handle) IsAny() bool {
	return h.node.Type() == kindPredefinedType && h.Text() == "any"
}

func (h *Handle) IsUnknown() bool {
	return h.node.Type() == kindPredefinedType && h.Text() == "unknown"
}

func (h *Handle) IsUndefined() bool {
	if h.node.Type() == "undefined" {
		return true
	}
	return h.node.Type() == kindLiteralType && h.literalChildKind() == "undefined"
}

func (h *Handle) IsArray() bool {
	return h.node.Type() == kindArrayType
}

func (h *Handle) Element() classify.TypeHandle {
	if h.node.Type() != kindArrayType {
		return nil
	}
	return Wrap(h.node.NamedChild(0), h.source)
}

func (h *Handle) IsBooleanLiteral() bool {
	k := h.literalChildKind()
	return k == "true" || k == "false"
}

func (h *Handle) IsNumberLiteral() bool {
	k := h.literalChildKind()
	return k == "number" || k == "unary_expression"
}

func (h *Handle) IsStringLiteral() bool {
	return h.literalChildKind() == "string"
}

func (h *Handle) IsString() bool {
	return h.node.Type() == kindPredefinedType && h.Text() == "string"
}

func (h *Handle) IsNumber() bool {
	return h.node.Type() == kindPredefinedType && h.Text() == "number"
}

func (h *Handle) IsBoolean() bool {
	return h.node.Type() == kindPredefinedType && h.Text() == "boolean"
}

func (h *Handle) IsUnion() bool {
	return h.node.Type() == kindUnionType
}

func (h *Handle) IsIntersection() bool {
	return h.node.Type() == kindIntersectionType
}

// Members flattens the grammar's left-nested binary form (A | B | C parses as
// ((A | B) | C)) into one declaration-ordered list. Parenthesized sub-unions
// stay nested.
func (h *Handle) Members() []classify.TypeHandle {
	k := h.node.Type()
	if k != kindUnionType && k != kindIntersectionType {
		return nil
	}
	return flattenMembers(h.node, k, h.source)
}

func flattenMembers(node *sitter.Node, kind string, source []byte) []classify.TypeHandle {
	var out []classify.TypeHandle
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == kind {
			out = append(out, flattenMembers(child, kind, source)...)
		} else {
			out = append(out, Wrap(child, source))
		}
	}
	return out
}

func (h *Handle) IsTuple() bool {
	return h.node.Type() == kindTupleType
}

func (h *Handle) TupleElements() []classify.TypeHandle {
	if h.node.Type() != kindTupleType {
		return nil
	}
	var out []classify.TypeHandle
	for i := 0; i < int(h.node.NamedChildCount()); i++ {
		out = append(out, Wrap(h.node.NamedChild(i), h.source))
	}
	return out
}

func (h *Handle) TypeArguments() []classify.TypeHandle {
	args := h.typeArgumentsNode()
	if args == nil {
		return nil
	}
	var out []classify.TypeHandle
	for i := 0; i < int(args.NamedChildCount()); i++ {
		out = append(out, Wrap(args.NamedChild(i), h.source))
	}
	return out
}

func (h *Handle) BaseName() string {
	if h.node.Type() != kindGenericType {
		return ""
	}
	if name := h.node.ChildByFieldName("name"); name != nil {
		return nodeText(name, h.source)
	}
	return ""
}

func (h *Handle) typeArgumentsNode() *sitter.Node {
	if h.node.Type() != kindGenericType {
		return nil
	}
	if args := h.node.ChildByFieldName("type_arguments"); args != nil {
		return args
	}
	for i := 0; i < int(h.node.NamedChildCount()); i++ {
		if child := h.node.NamedChild(i); child.Type() == kindTypeArguments {
			return child
		}
	}
	return nil
}

// literalChildKind returns the node kind of a literal_type's payload, or "".
func (h *Handle) literalChildKind() string {
	if h.node.Type() != kindLiteralType {
		return ""
	}
	child := h.node.NamedChild(0)
	if child == nil {
		return ""
	}
	return child.Type()
}

// Parameter wraps one required_parameter, optional_parameter, or bare
// identifier (single-parameter arrow functions).
type Parameter struct {
	node   *sitter.Node
	source []byte
}

// NewParameter builds a parameter handle.
func NewParameter(node *sitter.Node, source []byte) classify.ParameterHandle {
	if node == nil {
		return nil
	}
	return &Parameter{node: node, source: source}
}

func (p *Parameter) Name() string {
	pattern := p.node
	if p.node.Type() != "identifier" && p.node.Type() != "this" {
		pattern = p.node.ChildByFieldName("pattern")
	}
	if pattern == nil {
		return ""
	}
	switch pattern.Type() {
	case "identifier", "this":
		return nodeText(pattern, p.source)
	case "rest_pattern":
		if inner := pattern.NamedChild(0); inner != nil && inner.Type() == "identifier" {
			return nodeText(inner, p.source)
		}
		return ""
	default:
		// Destructuring patterns carry no single name; the stringifier
		// substitutes a positional placeholder.
		return ""
	}
}

func (p *Parameter) Type() classify.TypeHandle {
	if p.node.Type() == "identifier" || p.node.Type() == "this" {
		return nil
	}
	return Wrap(p.node.ChildByFieldName("type"), p.source)
}

// TypeParameter wraps one type_parameter node.
type TypeParameter struct {
	node   *sitter.Node
	source []byte
}

// NewTypeParameter builds a type-parameter handle.
func NewTypeParameter(node *sitter.Node, source []byte) classify.TypeParameterHandle {
	if node == nil {
		return nil
	}
	return &TypeParameter{node: node, source: source}
}

func (t *TypeParameter) Name() string {
	if name := t.node.ChildByFieldName("name"); name != nil {
		return nodeText(name, t.source)
	}
	return nodeText(t.node, t.source)
}

func (t *TypeParameter) Constraint() classify.TypeHandle {
	// The constraint node is "extends" plus the bound type.
	c := t.node.ChildByFieldName("constraint")
	if c == nil {
		return nil
	}
	return Wrap(c.NamedChild(0), t.source)
}

func (t *TypeParameter) Default() classify.TypeHandle {
	d := t.node.ChildByFieldName("value")
	if d == nil {
		return nil
	}
	return Wrap(d.NamedChild(0), t.source)
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
