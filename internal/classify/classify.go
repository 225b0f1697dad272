// Package classify maps opaque type handles from a syntax or compiler
// collaborator onto the closed type algebra. Handles are read-only and are
// not retained past a classification call.
package classify

import (
	"strconv"

	"github.com/sigmap-dev/sigmap/internal/model"
)

// TypeHandle is the capability surface the classifier requires from one type.
// Accessors returning handles may return nil when the capability does not
// apply.
type TypeHandle interface {
	IsAny() bool
	IsUnknown() bool
	IsUndefined() bool

	IsArray() bool
	// Element returns the element-type handle of an array handle, or nil.
	Element() TypeHandle

	IsBooleanLiteral() bool
	IsNumberLiteral() bool
	IsStringLiteral() bool

	IsString() bool
	IsNumber() bool
	IsBoolean() bool

	IsUnion() bool
	IsIntersection() bool
	// Members returns the constituents of a union or intersection handle, in
	// declaration order.
	Members() []TypeHandle

	IsTuple() bool
	// TupleElements returns the elements of a tuple handle, in order.
	TupleElements() []TypeHandle

	// TypeArguments returns generic instantiation arguments, possibly empty.
	TypeArguments() []TypeHandle
	// BaseName returns the parameterized type's base name, or "" when the
	// provider cannot separate it from the arguments.
	BaseName() string

	// Text returns the handle's source-level rendering.
	Text() string
}

// TypeParameterHandle is the capability surface for one generic type
// parameter declaration.
type TypeParameterHandle interface {
	Name() string
	// Constraint returns the extends-bound handle, or nil.
	Constraint() TypeHandle
	// Default returns the default-type handle, or nil.
	Default() TypeHandle
}

// ParameterHandle is the capability surface for one function parameter
// declaration.
type ParameterHandle interface {
	// Name returns the declared name, or "" for destructuring patterns.
	Name() string
	// Type returns the annotation handle, or nil when unannotated.
	Type() TypeHandle
}

// MaxDepth bounds classification recursion. Syntax trees are acyclic, but a
// handle provider backed by a checker's type graph may not be; past the bound
// the handle's text lands in Other.
const MaxDepth = 64

// Type classifies one handle into exactly one variant. The checks form a
// priority-ordered decision list; first match wins. A nil handle yields Any.
func Type(h TypeHandle) model.Type {
	return classifyType(h, 0)
}

func classifyType(h TypeHandle, depth int) model.Type {
	if h == nil {
		return model.Any{}
	}
	if depth >= MaxDepth {
		return model.Other{Text: h.Text()}
	}

	switch {
	case h.IsAny():
		return model.Any{}
	case h.IsUnknown():
		return model.Unknown{}
	case h.IsUndefined():
		return model.Undefined{}
	case h.IsArray():
		elem := h.Element()
		if elem == nil {
			// Array handle with no retrievable element type.
			return model.Array{Text: h.Text(), Elem: model.Any{}}
		}
		return model.Array{Text: h.Text(), Elem: classifyType(elem, depth+1)}
	case h.IsBooleanLiteral():
		return model.LiteralBoolean{Value: h.Text() == "true"}
	case h.IsNumberLiteral():
		f, err := strconv.ParseFloat(h.Text(), 64)
		if err != nil {
			// Hex, binary, and bigint literal forms stay textual.
			return model.Other{Text: h.Text()}
		}
		return model.LiteralNumber{Value: f}
	case h.IsStringLiteral():
		return model.LiteralString{Value: h.Text()}
	case h.IsString():
		return model.Primitive{Text: h.Text(), TypeName: "string"}
	case h.IsNumber():
		return model.Primitive{Text: h.Text(), TypeName: "number"}
	case h.IsBoolean():
		return model.Primitive{Text: h.Text(), TypeName: "boolean"}
	case h.IsUnion():
		return model.Union{Text: h.Text(), Types: classifyAll(h.Members(), depth+1)}
	case h.IsIntersection():
		// Intersections keep their own variant instead of collapsing into
		// Union; see DESIGN.md.
		return model.Intersection{Text: h.Text(), Types: classifyAll(h.Members(), depth+1)}
	case h.IsTuple():
		return model.Tuple{Text: h.Text(), Types: classifyAll(h.TupleElements(), depth+1)}
	}

	if args := h.TypeArguments(); len(args) > 0 {
		return model.HigherOrder{
			Text:     h.Text(),
			BaseName: h.BaseName(),
			Args:     classifyAll(args, depth+1),
		}
	}

	return model.Other{Text: h.Text()}
}

func classifyAll(handles []TypeHandle, depth int) []model.Type {
	if len(handles) == 0 {
		return nil
	}
	types := make([]model.Type, len(handles))
	for i, h := range handles {
		types[i] = classifyType(h, depth)
	}
	return types
}

// Signature assembles a whole signature from handle collections, preserving
// declaration order throughout. A nil return handle classifies as Any.
func Signature(params []ParameterHandle, typeParams []TypeParameterHandle, ret TypeHandle) model.Signature {
	sig := model.Signature{ReturnType: Type(ret)}

	for _, tp := range typeParams {
		sig.TypeParameters = append(sig.TypeParameters, TypeParameter(tp))
	}
	for _, p := range params {
		sig.Parameters = append(sig.Parameters, model.Parameter{
			Name: p.Name(),
			Type: Type(p.Type()),
		})
	}
	return sig
}

// TypeParameter builds one type parameter. The constraint takes priority; a
// default on a constrained parameter is ignored.
func TypeParameter(h TypeParameterHandle) model.TypeParameter {
	if c := h.Constraint(); c != nil {
		return model.Constrained{Text: h.Name(), Constraint: Type(c)}
	}
	if d := h.Default(); d != nil {
		return model.WithDefault{Text: h.Name(), Default: Type(d)}
	}
	return model.Polymorphic{Text: h.Name()}
}
