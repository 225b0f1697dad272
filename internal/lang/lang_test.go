package lang

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".ts", "typescript"},
		{".mts", "typescript"},
		{".cts", "typescript"},
		{".tsx", "tsx"},
		{".js", ""},
		{".go", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ForExtension(tt.ext); got != tt.want {
			t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestGetTagQuery(t *testing.T) {
	t.Parallel()

	for name, l := range Languages {
		q, err := l.GetTagQuery()
		if err != nil {
			t.Errorf("GetTagQuery(%s): %v", name, err)
			continue
		}
		if q == nil {
			t.Errorf("GetTagQuery(%s) returned nil query", name)
		}

		// Second call must return the cached query.
		again, err := l.GetTagQuery()
		if err != nil || again != q {
			t.Errorf("GetTagQuery(%s) not cached", name)
		}
	}
}

func TestQueryMatchesFunctionDeclaration(t *testing.T) {
	t.Parallel()

	l := Languages["typescript"]
	q, err := l.GetTagQuery()
	if err != nil {
		t.Fatal(err)
	}

	source := []byte("function hello(name: string): string { return name; }")
	p := l.NewParser()
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var found bool
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			if q.CaptureNameForId(c.Index) == "name" && NodeText(c.Node, source) == "hello" {
				found = true
			}
		}
	}
	if !found {
		t.Error("query did not capture the function name")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a  b", "a b"},
		{"  a\n\tb  ", "a b"},
		{"", ""},
		{"one", "one"},
	}
	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
