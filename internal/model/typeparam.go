package model

// TypeParameterKind discriminates TypeParameter variants.
type TypeParameterKind string

const (
	KindPolymorphic TypeParameterKind = "polymorphic"
	KindConstrained TypeParameterKind = "constrained"
	KindWithDefault TypeParameterKind = "withDefault"
)

// TypeParameter is the closed sum of generic type parameter shapes. Text is
// the declared parameter name.
type TypeParameter interface {
	Kind() TypeParameterKind
	typeParam()
}

// Polymorphic is an unconstrained generic parameter.
type Polymorphic struct {
	Text string
}

// Constrained carries an extends-style bound.
type Constrained struct {
	Text       string
	Constraint Type
}

// WithDefault carries a default type.
type WithDefault struct {
	Text    string
	Default Type
}

func (Polymorphic) typeParam() {}
func (Constrained) typeParam() {}
func (WithDefault) typeParam() {}

func (Polymorphic) Kind() TypeParameterKind { return KindPolymorphic }
func (Constrained) Kind() TypeParameterKind { return KindConstrained }
func (WithDefault) Kind() TypeParameterKind { return KindWithDefault }
