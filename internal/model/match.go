package model

import "github.com/cockroachdb/errors"

// TypeCases is a total handler table over the Type algebra: exactly one
// handler per variant, all returning R. MatchType panics on a nil handler, so
// an incomplete table fails at first use rather than silently defaulting.
type TypeCases[R any] struct {
	Any            func(Any) R
	Unknown        func(Unknown) R
	Undefined      func(Undefined) R
	LiteralString  func(LiteralString) R
	LiteralNumber  func(LiteralNumber) R
	LiteralBoolean func(LiteralBoolean) R
	Primitive      func(Primitive) R
	Array          func(Array) R
	Union          func(Union) R
	Intersection   func(Intersection) R
	Tuple          func(Tuple) R
	Function       func(Function) R
	HigherOrder    func(HigherOrder) R
	Other          func(Other) R
}

// MatchType invokes the handler matching t's variant and returns its result.
// Pure dispatch, no side effects.
func MatchType[R any](t Type, cases TypeCases[R]) R {
	switch v := t.(type) {
	case Any:
		if cases.Any == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Any(v)
	case Unknown:
		if cases.Unknown == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Unknown(v)
	case Undefined:
		if cases.Undefined == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Undefined(v)
	case LiteralString:
		if cases.LiteralString == nil {
			panic(missingTypeHandler(t))
		}
		return cases.LiteralString(v)
	case LiteralNumber:
		if cases.LiteralNumber == nil {
			panic(missingTypeHandler(t))
		}
		return cases.LiteralNumber(v)
	case LiteralBoolean:
		if cases.LiteralBoolean == nil {
			panic(missingTypeHandler(t))
		}
		return cases.LiteralBoolean(v)
	case Primitive:
		if cases.Primitive == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Primitive(v)
	case Array:
		if cases.Array == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Array(v)
	case Union:
		if cases.Union == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Union(v)
	case Intersection:
		if cases.Intersection == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Intersection(v)
	case Tuple:
		if cases.Tuple == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Tuple(v)
	case Function:
		if cases.Function == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Function(v)
	case HigherOrder:
		if cases.HigherOrder == nil {
			panic(missingTypeHandler(t))
		}
		return cases.HigherOrder(v)
	case Other:
		if cases.Other == nil {
			panic(missingTypeHandler(t))
		}
		return cases.Other(v)
	default:
		panic(errors.AssertionFailedf("unhandled Type variant %#v", t))
	}
}

// TypeParameterCases is a total handler table over the TypeParameter algebra.
type TypeParameterCases[R any] struct {
	Polymorphic func(Polymorphic) R
	Constrained func(Constrained) R
	WithDefault func(WithDefault) R
}

// MatchTypeParameter invokes the handler matching p's variant.
func MatchTypeParameter[R any](p TypeParameter, cases TypeParameterCases[R]) R {
	switch v := p.(type) {
	case Polymorphic:
		if cases.Polymorphic == nil {
			panic(missingTypeParameterHandler(p))
		}
		return cases.Polymorphic(v)
	case Constrained:
		if cases.Constrained == nil {
			panic(missingTypeParameterHandler(p))
		}
		return cases.Constrained(v)
	case WithDefault:
		if cases.WithDefault == nil {
			panic(missingTypeParameterHandler(p))
		}
		return cases.WithDefault(v)
	default:
		panic(errors.AssertionFailedf("unhandled TypeParameter variant %#v", p))
	}
}

func missingTypeHandler(t Type) error {
	return errors.AssertionFailedf("no handler for Type variant %q: %#v", t.Kind(), t)
}

func missingTypeParameterHandler(p TypeParameter) error {
	return errors.AssertionFailedf("no handler for TypeParameter variant %q: %#v", p.Kind(), p)
}
