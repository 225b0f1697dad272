package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigmap-dev/sigmap/internal/model"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// createSampleRepo lays out a small TypeScript tree for end-to-end runs.
func createSampleRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "src/math.ts", `/** Doubles n. */
export function double(n: number): number {
  return n * 2;
}
`)
	writeTestFile(t, dir, "src/app.tsx", `export const mount = (el: string): boolean => el.length > 0;
`)
	writeTestFile(t, dir, "node_modules/dep/index.ts", "export function hidden(): void {}\n")
	return dir
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunVersion(t *testing.T) {
	stdout, _, err := runCmd(t, "-version")
	require.NoError(t, err)
	require.Equal(t, "sigmap "+version+"\n", stdout)
}

func TestRunJSONOutput(t *testing.T) {
	dir := createSampleRepo(t)

	stdout, _, err := runCmd(t, dir)
	require.NoError(t, err)

	var modules []model.Module
	require.NoError(t, json.Unmarshal([]byte(stdout), &modules))
	require.Len(t, modules, 2)

	require.Equal(t, "src/app", modules[0].Name)
	require.Equal(t, "mount", modules[0].Functions[0].Name)

	require.Equal(t, "src/math", modules[1].Name)
	double := modules[1].Functions[0]
	require.Equal(t, "double", double.Name)
	require.Equal(t, "/** Doubles n. */", double.Docs)
	require.Equal(t, model.Primitive{Text: "number", TypeName: "number"}, double.Signature.ReturnType)
}

func TestRunTextFormat(t *testing.T) {
	dir := createSampleRepo(t)

	stdout, _, err := runCmd(t, "-f", "text", dir)
	require.NoError(t, err)
	require.Contains(t, stdout, "# src/math")
	require.Contains(t, stdout, "double: (n: number) => number (src/math.ts:2-4)")
	require.Contains(t, stdout, "mount: (el: string) => boolean (src/app.tsx:1-1)")
	require.NotContains(t, stdout, "hidden")
}

func TestRunFlagOrderIndependent(t *testing.T) {
	dir := createSampleRepo(t)

	// Positional root before the flag still parses.
	stdout, _, err := runCmd(t, dir, "-f", "text")
	require.NoError(t, err)
	require.Contains(t, stdout, "# src/math")
}

func TestRunLanguageFilter(t *testing.T) {
	dir := createSampleRepo(t)

	stdout, _, err := runCmd(t, "-l", "tsx", "-f", "text", dir)
	require.NoError(t, err)
	require.Contains(t, stdout, "mount")
	require.NotContains(t, stdout, "double")
}

func TestRunBadFormat(t *testing.T) {
	dir := createSampleRepo(t)

	_, _, err := runCmd(t, "-f", "yaml", dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format")
}

func TestRunUnknownLanguage(t *testing.T) {
	dir := createSampleRepo(t)

	_, _, err := runCmd(t, "-l", "cobol", dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported language")
}

func TestRunRootNotADirectory(t *testing.T) {
	dir := createSampleRepo(t)

	_, _, err := runCmd(t, filepath.Join(dir, "src/math.ts"))
	require.Error(t, err)
}

func TestRunEmptyTree(t *testing.T) {
	_, _, err := runCmd(t, t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no parseable files")
}

func TestRunConfigFile(t *testing.T) {
	dir := createSampleRepo(t)
	writeTestFile(t, dir, "sigmap.toml", "format = \"text\"\n")

	stdout, _, err := runCmd(t, dir)
	require.NoError(t, err)
	require.Contains(t, stdout, "# src/math")

	// A flag still overrides the file value.
	stdout, _, err = runCmd(t, "-f", "json", dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "["), "expected JSON array, got %q", stdout[:1])
}

func TestRunOutputFile(t *testing.T) {
	dir := createSampleRepo(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	stdout, _, err := runCmd(t, "-o", outPath, dir)
	require.NoError(t, err)
	require.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var modules []model.Module
	require.NoError(t, json.Unmarshal(data, &modules))
	require.Len(t, modules, 2)
}

func TestRunCache(t *testing.T) {
	dir := createSampleRepo(t)
	cachePath := filepath.Join(t.TempDir(), "cache.json")

	first, _, err := runCmd(t, "-cache", cachePath, dir)
	require.NoError(t, err)
	require.FileExists(t, cachePath)

	// Second run with sources unchanged serves the cached bytes.
	second, _, err := runCmd(t, "-cache", cachePath, dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunMaxFileSize(t *testing.T) {
	dir := createSampleRepo(t)

	_, stderr, err := runCmd(t, "-max-file-size", "10", "-f", "text", dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "size limit")
	require.Contains(t, stderr, "skipped")
}

func TestReorderArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"already ordered", []string{"-f", "text", "repo"}, []string{"-f", "text", "repo"}},
		{"positional first", []string{"repo", "-f", "text"}, []string{"-f", "text", "repo"}},
		{"bool flag after positional", []string{"repo", "-include-source"}, []string{"-include-source", "repo"}},
		{"double dash stops parsing", []string{"-f", "text", "--", "-repo"}, []string{"-f", "text", "-repo"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, reorderArgs(tt.in))
		})
	}
}
