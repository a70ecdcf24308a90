package source

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"

	"mercator-hq/docguard/pkg/policy/engine"
)

// Analyzer produces a ScanContext for a project root.
type Analyzer interface {
	// Scan walks root and returns every element admitted by scope.
	// A missing root yields an empty context. An unreadable root fails
	// with *ScanError.
	Scan(ctx context.Context, root string, scope engine.CompiledScan) (*ScanContext, error)
}

// GoAnalyzer scans Go source trees with go/parser. It needs no build and
// no type information, so it works on modules whose dependencies are not
// downloaded.
type GoAnalyzer struct {
	logger *slog.Logger
}

// NewGoAnalyzer creates a Go source analyzer.
func NewGoAnalyzer(logger *slog.Logger) *GoAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoAnalyzer{logger: logger}
}

// Scan implements Analyzer.
func (a *GoAnalyzer) Scan(ctx context.Context, root string, scope engine.CompiledScan) (*ScanContext, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("project root does not exist, nothing to scan", "path", root)
		return NewScanContext(nil, nil), nil
	}
	if err != nil {
		return nil, &ScanError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Root: root, Err: errors.New("not a directory")}
	}

	modPath := a.modulePath(root)

	dirs, err := a.collect(ctx, root)
	if err != nil {
		return nil, err
	}

	out := NewScanContext(nil, nil)
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		importPath := joinImportPath(modPath, dir.rel)
		if scope.Packages != nil && !scope.Packages.Matches(importPath) {
			a.logger.Debug("package out of scope", "package", importPath)
			continue
		}

		fset := token.NewFileSet()
		byPkg := make(map[string][]*ast.File)
		var names []string
		for _, rel := range dir.files {
			f, err := a.parseFile(fset, root, rel)
			if err != nil {
				a.logger.Warn("failed to parse file, skipping", "path", rel, "error", err)
				continue
			}
			name := f.Name.Name
			if _, ok := byPkg[name]; !ok {
				names = append(names, name)
			}
			byPkg[name] = append(byPkg[name], f)
		}

		for _, name := range names {
			pc := Extract(fset, byPkg[name], importPath, scope)
			a.logger.Debug("scanned package",
				"package", importPath,
				"files", len(byPkg[name]),
				"elements", pc.Len(),
			)
			out.Merge(pc)
		}
	}

	return out, nil
}

// sourceDir is one directory holding Go files, with paths relative to the
// project root in slash form.
type sourceDir struct {
	rel   string
	files []string
}

// collect walks root and groups non-test Go files by directory.
func (a *GoAnalyzer) collect(ctx context.Context, root string) ([]sourceDir, error) {
	index := make(map[string]int)
	var dirs []sourceDir

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			// A nested go.mod starts another module.
			if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
				a.logger.Debug("skipping nested module", "path", p)
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		dir := path.Dir(rel)

		i, ok := index[dir]
		if !ok {
			i = len(dirs)
			index[dir] = i
			dirs = append(dirs, sourceDir{rel: dir})
		}
		dirs[i].files = append(dirs[i].files, rel)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ScanError{Root: root, Err: fmt.Errorf("failed to walk directory: %w", err)}
	}

	slices.SortFunc(dirs, func(x, y sourceDir) int { return strings.Compare(x.rel, y.rel) })
	return dirs, nil
}

func (a *GoAnalyzer) parseFile(fset *token.FileSet, root, rel string) (*ast.File, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// The relative name ends up in element source locations.
	return parser.ParseFile(fset, rel, data, parser.ParseComments)
}

// modulePath reads the module path from root/go.mod. Without one, the
// root directory name stands in for it.
func (a *GoAnalyzer) modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err == nil {
		if mp := modfile.ModulePath(data); mp != "" {
			return mp
		}
	}

	abs, absErr := filepath.Abs(root)
	if absErr != nil {
		abs = root
	}
	fallback := filepath.Base(abs)
	a.logger.Debug("no module path found, using directory name",
		"path", root,
		"module", fallback,
	)
	return fallback
}

func skipDir(name string) bool {
	switch name {
	case "vendor", "testdata", "node_modules":
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func joinImportPath(modPath, rel string) string {
	if rel == "." || rel == "" {
		return modPath
	}
	return modPath + "/" + rel
}
