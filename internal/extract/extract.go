// Package extract drives signature extraction: it parses discovered files
// with tree-sitter, locates function declarations via the embedded tag
// queries, and assembles one Module of FunctionRecords per file.
package extract

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/sigmap-dev/sigmap/internal/classify"
	"github.com/sigmap-dev/sigmap/internal/discover"
	"github.com/sigmap-dev/sigmap/internal/lang"
	"github.com/sigmap-dev/sigmap/internal/model"
	"github.com/sigmap-dev/sigmap/internal/tsnode"
)

// Options configures one extraction run. The driver holds no process-wide
// state; everything it needs is handed in here.
type Options struct {
	IncludeSource bool
	IncludeDocs   bool
	Workers       int
	Log           *zap.SugaredLogger
}

var definitionCaptures = map[string]struct{}{
	"definition.function": {},
	"definition.method":   {},
}

// Modules parses files concurrently and returns one Module per successfully
// parsed file, in input order.
func Modules(root string, files []discover.FileEntry, opts Options) []model.Module {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	type result struct {
		index  int
		module model.Module
		ok     bool
	}

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each goroutine gets its own parser per language.
			parsers := make(map[string]*parserPair)

			for idx := range work {
				f := files[idx]
				pp, ok := parsers[f.Language]
				if !ok {
					l := lang.Languages[f.Language]
					q, err := l.GetTagQuery()
					if err != nil {
						log.Warnf("failed to compile query for %s: %v", f.Language, err)
						continue
					}
					pp = &parserPair{parser: l.NewParser(), query: q}
					parsers[f.Language] = pp
				}

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					log.Warnf("failed to read %s: %v", f.Path, err)
					continue
				}

				mod, err := fileModule(pp, source, f.Path, opts)
				if err != nil {
					log.Warnf("failed to parse %s: %v", f.Path, err)
					continue
				}
				results <- result{index: idx, module: mod, ok: true}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order.
	indexed := make([]model.Module, len(files))
	valid := make([]bool, len(files))
	for r := range results {
		indexed[r.index] = r.module
		valid[r.index] = r.ok
	}

	var modules []model.Module
	for i, v := range valid {
		if v {
			modules = append(modules, indexed[i])
		}
	}
	return modules
}

type parserPair struct {
	parser *sitter.Parser
	query  *sitter.Query
}

func fileModule(pp *parserPair, source []byte, relPath string, opts Options) (model.Module, error) {
	tree, err := pp.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return model.Module{}, err
	}
	defer tree.Close()

	name := moduleName(relPath)
	return model.Module{
		Name:      name,
		Functions: records(pp.query, tree.RootNode(), source, relPath, name, opts),
	}, nil
}

func records(query *sitter.Query, root *sitter.Node, source []byte, relPath, moduleName string, opts Options) []model.FunctionRecord {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	var out []model.FunctionRecord
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)

		var nameNode, defNode *sitter.Node
		for _, c := range match.Captures {
			cname := query.CaptureNameForId(c.Index)
			if cname == "name" {
				nameNode = c.Node
			} else if _, ok := definitionCaptures[cname]; ok {
				defNode = c.Node
			}
		}
		if nameNode == nil || defNode == nil {
			continue
		}

		out = append(out, buildRecord(defNode, nameNode, source, relPath, moduleName, opts))
	}
	return out
}

func buildRecord(defNode, nameNode *sitter.Node, source []byte, relPath, moduleName string, opts Options) model.FunctionRecord {
	// Named arrow functions are captured at the declarator; the signature
	// pieces live on the arrow_function value.
	fnNode := defNode
	if defNode.Type() == "variable_declarator" {
		if v := defNode.ChildByFieldName("value"); v != nil {
			fnNode = v
		}
	}

	sig := classify.Signature(
		parameterHandles(fnNode, source),
		typeParameterHandles(fnNode, source),
		tsnode.Wrap(fnNode.ChildByFieldName("return_type"), source),
	)

	outer := outermostDeclaration(defNode)
	rec := model.FunctionRecord{
		Name:   lang.NodeText(nameNode, source),
		Module: moduleName,
		Location: model.Location{
			File:      relPath,
			StartLine: int(outer.StartPoint().Row) + 1,
			EndLine:   int(outer.EndPoint().Row) + 1,
		},
		Signature: sig,
	}
	if opts.IncludeDocs {
		rec.Docs = docComment(outer, source)
	}
	if opts.IncludeSource {
		rec.Text = lang.NodeText(outer, source)
	}
	return rec
}

func parameterHandles(fnNode *sitter.Node, source []byte) []classify.ParameterHandle {
	if params := fnNode.ChildByFieldName("parameters"); params != nil {
		var out []classify.ParameterHandle
		for i := 0; i < int(params.NamedChildCount()); i++ {
			child := params.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			out = append(out, tsnode.NewParameter(child, source))
		}
		return out
	}
	// Single-identifier arrow functions omit the parentheses.
	if p := fnNode.ChildByFieldName("parameter"); p != nil {
		return []classify.ParameterHandle{tsnode.NewParameter(p, source)}
	}
	return nil
}

func typeParameterHandles(fnNode *sitter.Node, source []byte) []classify.TypeParameterHandle {
	tps := fnNode.ChildByFieldName("type_parameters")
	if tps == nil {
		return nil
	}
	var out []classify.TypeParameterHandle
	for i := 0; i < int(tps.NamedChildCount()); i++ {
		child := tps.NamedChild(i)
		if child.Type() != "type_parameter" {
			continue
		}
		out = append(out, tsnode.NewTypeParameter(child, source))
	}
	return out
}

// outermostDeclaration walks up through declaration wrappers (lexical
// declarations, export statements, ambient declare blocks) so locations,
// docs, and source text cover the whole statement.
func outermostDeclaration(node *sitter.Node) *sitter.Node {
	outer := node
	for parent := outer.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Type() {
		case "variable_declaration", "lexical_declaration", "export_statement", "ambient_declaration":
			outer = parent
		default:
			return outer
		}
	}
	return outer
}

// docComment returns the comment immediately preceding node, or "".
func docComment(node *sitter.Node, source []byte) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	if int(node.StartPoint().Row)-int(prev.EndPoint().Row) > 1 {
		return ""
	}
	return lang.NodeText(prev, source)
}

func moduleName(rel string) string {
	p := filepath.ToSlash(rel)
	if strings.HasSuffix(p, ".d.ts") {
		return strings.TrimSuffix(p, ".d.ts")
	}
	return strings.TrimSuffix(p, path.Ext(p))
}
