// Package model defines core data structures for sigmap: the closed type
// algebra, generic type parameters, and extracted function records.
package model

// Kind discriminates Type variants. It is the value of the "kind" field in
// the serialized form.
type Kind string

const (
	KindAny            Kind = "any"
	KindUnknown        Kind = "unknown"
	KindUndefined      Kind = "undefined"
	KindLiteralString  Kind = "literalString"
	KindLiteralNumber  Kind = "literalNumber"
	KindLiteralBoolean Kind = "literalBoolean"
	KindPrimitive      Kind = "primitive"
	KindArray          Kind = "array"
	KindUnion          Kind = "union"
	KindIntersection   Kind = "intersection"
	KindTuple          Kind = "tuple"
	KindFunction       Kind = "function"
	KindHigherOrder    Kind = "higherOrder"
	KindOther          Kind = "other"
)

// Type is the closed sum of every type shape sigmap can express. Exactly one
// variant matches any value. Adding a variant requires updating every
// TypeCases table and the serializer.
//
// Values are immutable after construction and owned by value; a Type tree has
// no back-references and no cycles.
type Type interface {
	Kind() Kind
	typ()
}

// Any is the unconstrained opt-out type.
type Any struct{}

// Unknown is statically unconstrained but not opt-out.
type Unknown struct{}

// Undefined is the absence-of-value type.
type Undefined struct{}

// LiteralString is an exact string literal type. Value carries the literal's
// own quoting as captured from source.
type LiteralString struct {
	Value string
}

// LiteralNumber is an exact numeric literal type.
type LiteralNumber struct {
	Value float64
}

// LiteralBoolean is an exact boolean literal type.
type LiteralBoolean struct {
	Value bool
}

// Primitive is a named scalar type. TypeName is one of "string", "number",
// "boolean".
type Primitive struct {
	Text     string
	TypeName string
}

// Array is a homogeneous sequence type.
type Array struct {
	Text string
	Elem Type
}

// Union is a "one of" alternation. Member order is declaration order and is
// significant for display.
type Union struct {
	Text  string
	Types []Type
}

// Intersection is an "all of" combination.
type Intersection struct {
	Text  string
	Types []Type
}

// Tuple is a fixed-length heterogeneous sequence.
type Tuple struct {
	Text  string
	Types []Type
}

// Function is a callable type.
type Function struct {
	Text      string
	Signature Signature
}

// HigherOrder is a parameterized type instantiation, e.g. Promise<string>.
// BaseName may be empty when the provider cannot separate the base from its
// arguments; Text then carries the only rendering.
type HigherOrder struct {
	Text     string
	BaseName string
	Args     []Type
}

// Other is the fallback for any type not classified above. Text preserves
// the original source rendering.
type Other struct {
	Text string
}

func (Any) typ()            {}
func (Unknown) typ()        {}
func (Undefined) typ()      {}
func (LiteralString) typ()  {}
func (LiteralNumber) typ()  {}
func (LiteralBoolean) typ() {}
func (Primitive) typ()      {}
func (Array) typ()          {}
func (Union) typ()          {}
func (Intersection) typ()   {}
func (Tuple) typ()          {}
func (Function) typ()       {}
func (HigherOrder) typ()    {}
func (Other) typ()          {}

func (Any) Kind() Kind            { return KindAny }
func (Unknown) Kind() Kind        { return KindUnknown }
func (Undefined) Kind() Kind      { return KindUndefined }
func (LiteralString) Kind() Kind  { return KindLiteralString }
func (LiteralNumber) Kind() Kind  { return KindLiteralNumber }
func (LiteralBoolean) Kind() Kind { return KindLiteralBoolean }
func (Primitive) Kind() Kind      { return KindPrimitive }
func (Array) Kind() Kind          { return KindArray }
func (Union) Kind() Kind          { return KindUnion }
func (Intersection) Kind() Kind   { return KindIntersection }
func (Tuple) Kind() Kind          { return KindTuple }
func (Function) Kind() Kind       { return KindFunction }
func (HigherOrder) Kind() Kind    { return KindHigherOrder }
func (Other) Kind() Kind          { return KindOther }
