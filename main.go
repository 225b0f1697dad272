// sigmap extracts normalized function signatures from TypeScript sources and
// emits them as a JSON document or readable text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sigmap-dev/sigmap/internal/config"
	"github.com/sigmap-dev/sigmap/internal/discover"
	"github.com/sigmap-dev/sigmap/internal/extract"
	"github.com/sigmap-dev/sigmap/internal/lang"
	"github.com/sigmap-dev/sigmap/internal/model"
	"github.com/sigmap-dev/sigmap/internal/render"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sigmap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		langs         string
		cachePath     string
		configPath    string
		format        string
		outPath       string
		maxFileSize   int
		includeSource bool
		noDocs        bool
		watch         bool
		showVersion   bool
	)

	fs.StringVar(&langs, "l", "", "comma-separated languages to include")
	fs.StringVar(&langs, "langs", "", "comma-separated languages to include")
	fs.StringVar(&cachePath, "cache", "", "cache file path")
	fs.StringVar(&configPath, "config", "", "config file path (default <root>/sigmap.toml)")
	fs.StringVar(&format, "f", "", "output format: json or text")
	fs.StringVar(&format, "format", "", "output format: json or text")
	fs.StringVar(&outPath, "o", "", "write output to file instead of stdout")
	fs.IntVar(&maxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	fs.BoolVar(&includeSource, "include-source", false, "include each function's source text in records")
	fs.BoolVar(&noDocs, "no-docs", false, "omit doc comments from records")
	fs.BoolVar(&watch, "watch", false, "keep running and re-extract on file changes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "sigmap %s\n", version)
		return nil
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrap(err, "resolving root")
	}

	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "root path")
	}
	if !info.IsDir() {
		return errors.Newf("%s: not a directory", root)
	}

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.DefaultFileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Explicitly set flags win over file values.
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if visited["max-file-size"] {
		cfg.MaxFileSize = maxFileSize
	}
	if visited["f"] || visited["format"] {
		cfg.Format = format
	}
	if visited["include-source"] {
		cfg.IncludeSource = includeSource
	}
	if visited["no-docs"] {
		cfg.IncludeDocs = !noDocs
	}
	if visited["l"] || visited["langs"] {
		cfg.Languages = nil
		for _, name := range strings.Split(langs, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Languages = append(cfg.Languages, name)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, name := range cfg.Languages {
		if _, ok := lang.Languages[name]; !ok {
			return errors.Newf("unsupported language %q", name)
		}
	}

	logger := newLogger(stderr)
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	doRun := func() error {
		return extractOnce(root, cfg, cachePath, outPath, stdout, log)
	}

	if err := doRun(); err != nil {
		return err
	}
	if watch {
		return watchLoop(root, doRun, log)
	}
	return nil
}

func extractOnce(root string, cfg config.Config, cachePath, outPath string, stdout io.Writer, log *zap.SugaredLogger) error {
	files, err := discover.Files(root, cfg.Languages)
	if err != nil {
		return errors.Wrap(err, "discovering files")
	}
	if len(files) == 0 {
		return errors.New("no parseable files found")
	}

	// Check cache freshness
	if cachePath != "" && cacheIsFresh(cachePath, root, files) {
		data, err := os.ReadFile(cachePath)
		if err == nil {
			return writeOutput(data, outPath, stdout)
		}
	}

	files = filterBySize(root, files, cfg.MaxFileSize, log)
	if len(files) == 0 {
		return errors.New("no parseable files found (all exceeded size limit)")
	}

	modules := extract.Modules(root, files, extract.Options{
		IncludeSource: cfg.IncludeSource,
		IncludeDocs:   cfg.IncludeDocs,
		Log:           log,
	})
	if len(modules) == 0 {
		return errors.New("no files could be parsed")
	}

	output, err := encode(modules, cfg.Format)
	if err != nil {
		return err
	}

	if cachePath != "" {
		_ = os.WriteFile(cachePath, output, 0o644)
	}

	return writeOutput(output, outPath, stdout)
}

func encode(modules []model.Module, format string) ([]byte, error) {
	if format == "text" {
		return []byte(formatText(modules)), nil
	}
	b, err := json.MarshalIndent(modules, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding modules")
	}
	return append(b, '\n'), nil
}

func formatText(modules []model.Module) string {
	var b strings.Builder
	for i := range modules {
		m := &modules[i]
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "# %s\n", m.Name)
		for j := range m.Functions {
			fn := &m.Functions[j]
			fmt.Fprintf(&b, "%s: %s (%s:%d-%d)\n",
				fn.Name, render.Signature(fn.Signature),
				fn.Location.File, fn.Location.StartLine, fn.Location.EndLine)
		}
	}
	return b.String()
}

func writeOutput(data []byte, outPath string, stdout io.Writer) error {
	if outPath == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}
	return nil
}

func cacheIsFresh(cachePath, root string, files []discover.FileEntry) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	cacheMtime := cacheInfo.ModTime()

	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			return false
		}
		if !fi.ModTime().Before(cacheMtime) {
			return false
		}
	}
	return true
}

func filterBySize(root string, files []discover.FileEntry, maxSize int, log *zap.SugaredLogger) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if fi.Size() > int64(maxSize) {
			log.Warnf("%s: skipped (>%d bytes)", f.Path, maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func newLogger(w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.WarnLevel)
	return zap.New(core)
}

func watchLoop(root string, rerun func() error, log *zap.SugaredLogger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}
	defer func() { _ = w.Close() }()

	if err := addDirs(w, root); err != nil {
		return errors.Wrap(err, "watching directories")
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !discover.SkipDir(filepath.Base(ev.Name)) {
					_ = addDirs(w, ev.Name)
				}
			}
			debounce.Reset(300 * time.Millisecond)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)
		case <-debounce.C:
			if err := rerun(); err != nil {
				log.Warnf("re-extract failed: %v", err)
			}
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && discover.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-l": true, "--l": true,
	"-langs": true, "--langs": true,
	"-cache": true, "--cache": true,
	"-config": true, "--config": true,
	"-f": true, "--f": true,
	"-format": true, "--format": true,
	"-o": true, "--o": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
