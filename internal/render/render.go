// Package render turns algebra values back into canonical TypeScript-style
// text. All functions are pure; rendering depends only on the value's
// structure (HigherOrder and Other echo their stored text).
package render

import (
	"strconv"
	"strings"

	"github.com/sigmap-dev/sigmap/internal/model"
)

// Type renders one Type value. Built entirely on model.MatchType.
func Type(t model.Type) string {
	return model.MatchType(t, model.TypeCases[string]{
		Any:       func(model.Any) string { return "any" },
		Unknown:   func(model.Unknown) string { return "unknown" },
		Undefined: func(model.Undefined) string { return "undefined" },
		LiteralString: func(v model.LiteralString) string {
			// The stored value carries its own quoting from source capture.
			return v.Value
		},
		LiteralNumber: func(v model.LiteralNumber) string {
			return strconv.FormatFloat(v.Value, 'f', -1, 64)
		},
		LiteralBoolean: func(v model.LiteralBoolean) string {
			return strconv.FormatBool(v.Value)
		},
		Primitive: func(v model.Primitive) string { return v.TypeName },
		Array:     func(v model.Array) string { return Type(v.Elem) + "[]" },
		Union: func(v model.Union) string {
			return joinTypes(v.Types, " | ")
		},
		Intersection: func(v model.Intersection) string {
			return joinTypes(v.Types, " & ")
		},
		Tuple: func(v model.Tuple) string {
			return "[" + joinTypes(v.Types, ", ") + "]"
		},
		Function: func(v model.Function) string {
			return Signature(v.Signature)
		},
		HigherOrder: func(v model.HigherOrder) string {
			if v.BaseName == "" {
				return v.Text
			}
			return v.BaseName + "<" + joinTypes(v.Args, ", ") + ">"
		},
		Other: func(v model.Other) string { return v.Text },
	})
}

// Signature renders a signature as "(a: string, b: number) => boolean",
// prefixed with "<T, U>" when type parameters are present. A parameter with
// an empty name gets a positional placeholder derived from its index.
func Signature(s model.Signature) string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		name := p.Name
		if name == "" {
			name = "t" + strconv.Itoa(i)
		}
		params[i] = name + ": " + Type(p.Type)
	}

	core := "(" + strings.Join(params, ", ") + ") => " + Type(s.ReturnType)
	if len(s.TypeParameters) == 0 {
		return core
	}

	tps := make([]string, len(s.TypeParameters))
	for i, tp := range s.TypeParameters {
		tps[i] = TypeParameter(tp)
	}
	return "<" + strings.Join(tps, ", ") + ">" + core
}

// TypeParameter renders one generic type parameter.
func TypeParameter(p model.TypeParameter) string {
	return model.MatchTypeParameter(p, model.TypeParameterCases[string]{
		Polymorphic: func(v model.Polymorphic) string { return v.Text },
		Constrained: func(v model.Constrained) string {
			return v.Text + " extends " + Type(v.Constraint)
		},
		WithDefault: func(v model.WithDefault) string {
			return v.Text + " = " + Type(v.Default)
		},
	})
}

func joinTypes(types []model.Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = Type(t)
	}
	return strings.Join(parts, sep)
}
