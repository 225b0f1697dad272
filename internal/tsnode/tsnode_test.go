package tsnode_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/require"

	"github.com/sigmap-dev/sigmap/internal/classify"
	"github.com/sigmap-dev/sigmap/internal/model"
	"github.com/sigmap-dev/sigmap/internal/render"
	"github.com/sigmap-dev/sigmap/internal/tsnode"
)

func parse(t *testing.T, src []byte) *sitter.Tree {
	t.Helper()
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, src)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

// typeHandle parses "let x: <typeSrc>;" and returns the annotation's handle.
func typeHandle(t *testing.T, typeSrc string) classify.TypeHandle {
	t.Helper()
	src := []byte("let x: " + typeSrc + ";")
	tree := parse(t, src)

	decl := tree.RootNode().NamedChild(0)
	require.NotNil(t, decl, "no declaration for %q", typeSrc)
	declarator := decl.NamedChild(0)
	require.NotNil(t, declarator)
	ann := declarator.ChildByFieldName("type")
	require.NotNil(t, ann, "no type annotation for %q", typeSrc)
	return tsnode.Wrap(ann, src)
}

func TestClassifyAndRenderSourceTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"any", "any"},
		{"unknown", "unknown"},
		{"undefined", "undefined"},
		{"string", "string"},
		{"number", "number"},
		{"boolean", "boolean"},
		{"number[]", "number[]"},
		{"string[][]", "string[][]"},
		{"string | number", "string | number"},
		{"A | B | C", "A | B | C"},
		{"A & B", "A & B"},
		{"[number, string]", "[number, string]"},
		{`"on" | "off"`, `"on" | "off"`},
		{"42", "42"},
		{"-1", "-1"},
		{"true", "true"},
		{"false", "false"},
		{"Promise<string>", "Promise<string>"},
		{"Map<string, number>", "Map<string, number>"},
		{"Foo", "Foo"},
		{"{ title: string }", "{ title: string }"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			h := typeHandle(t, tt.src)
			got := render.Type(classify.Type(h))
			if got != tt.want {
				t.Errorf("render(classify(%q)) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestUnionFlattening(t *testing.T) {
	t.Parallel()

	got := classify.Type(typeHandle(t, "A | B | C"))
	u, ok := got.(model.Union)
	require.True(t, ok, "got %T", got)
	require.Len(t, u.Types, 3)
	require.Equal(t, model.Other{Text: "A"}, u.Types[0])
	require.Equal(t, model.Other{Text: "B"}, u.Types[1])
	require.Equal(t, model.Other{Text: "C"}, u.Types[2])
}

func TestParenthesizedUnionStaysNested(t *testing.T) {
	t.Parallel()

	got := classify.Type(typeHandle(t, "A | (B | C)"))
	u, ok := got.(model.Union)
	require.True(t, ok, "got %T", got)
	require.Len(t, u.Types, 2)
	require.IsType(t, model.Union{}, u.Types[1])
}

func TestIntersectionClassifiesAsIntersection(t *testing.T) {
	t.Parallel()

	got := classify.Type(typeHandle(t, "A & B"))
	require.IsType(t, model.Intersection{}, got)
}

func TestGenericTypeHandle(t *testing.T) {
	t.Parallel()

	got := classify.Type(typeHandle(t, "Promise<string>"))
	ho, ok := got.(model.HigherOrder)
	require.True(t, ok, "got %T", got)
	require.Equal(t, "Promise", ho.BaseName)
	require.Len(t, ho.Args, 1)
	require.Equal(t, model.Primitive{Text: "string", TypeName: "string"}, ho.Args[0])
}

func TestParameterHandles(t *testing.T) {
	t.Parallel()

	src := []byte("function f({title}: Opts, cb: (x: number) => void, ...rest: string[]): void {}")
	tree := parse(t, src)

	fn := tree.RootNode().NamedChild(0)
	require.NotNil(t, fn)
	require.Equal(t, "function_declaration", fn.Type())
	params := fn.ChildByFieldName("parameters")
	require.NotNil(t, params)
	require.Equal(t, 3, int(params.NamedChildCount()))

	destructured := tsnode.NewParameter(params.NamedChild(0), src)
	require.Equal(t, "", destructured.Name(), "destructuring patterns have no single name")
	require.Equal(t, model.Other{Text: "Opts"}, classify.Type(destructured.Type()))

	callback := tsnode.NewParameter(params.NamedChild(1), src)
	require.Equal(t, "cb", callback.Name())
	require.Equal(t, model.Other{Text: "(x: number) => void"}, classify.Type(callback.Type()))

	rest := tsnode.NewParameter(params.NamedChild(2), src)
	require.Equal(t, "rest", rest.Name())
	require.IsType(t, model.Array{}, classify.Type(rest.Type()))
}

func TestUnannotatedParameterHasNilType(t *testing.T) {
	t.Parallel()

	src := []byte("function f(x) {}")
	tree := parse(t, src)

	fn := tree.RootNode().NamedChild(0)
	params := fn.ChildByFieldName("parameters")
	require.NotNil(t, params)

	p := tsnode.NewParameter(params.NamedChild(0), src)
	require.Equal(t, "x", p.Name())
	require.Nil(t, p.Type())
}

func TestTypeParameterHandles(t *testing.T) {
	t.Parallel()

	src := []byte("function g<T extends object, U = string, V>(x: T): T { return x; }")
	tree := parse(t, src)

	fn := tree.RootNode().NamedChild(0)
	tps := fn.ChildByFieldName("type_parameters")
	require.NotNil(t, tps)
	require.Equal(t, 3, int(tps.NamedChildCount()))

	constrained := tsnode.NewTypeParameter(tps.NamedChild(0), src)
	require.Equal(t, "T", constrained.Name())
	require.NotNil(t, constrained.Constraint())
	require.Equal(t, model.Constrained{Text: "T", Constraint: model.Other{Text: "object"}},
		classify.TypeParameter(constrained))

	defaulted := tsnode.NewTypeParameter(tps.NamedChild(1), src)
	require.Equal(t, model.WithDefault{Text: "U", Default: model.Primitive{Text: "string", TypeName: "string"}},
		classify.TypeParameter(defaulted))

	plain := tsnode.NewTypeParameter(tps.NamedChild(2), src)
	require.Equal(t, model.Polymorphic{Text: "V"}, classify.TypeParameter(plain))
}

func TestReturnTypeHandle(t *testing.T) {
	t.Parallel()

	src := []byte("function h(): Promise<number> { return Promise.resolve(1); }")
	tree := parse(t, src)

	fn := tree.RootNode().NamedChild(0)
	ret := tsnode.Wrap(fn.ChildByFieldName("return_type"), src)
	require.NotNil(t, ret)

	got := classify.Type(ret)
	require.Equal(t, model.HigherOrder{
		Text:     "Promise<number>",
		BaseName: "Promise",
		Args:     []model.Type{model.Primitive{Text: "number", TypeName: "number"}},
	}, got)
}
