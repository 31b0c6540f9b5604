// Package codebase indexes the #define directives of every C header and
// source file below a root directory.
package codebase

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/cppast/cpp"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("cppast.codebase")

// Extensions are the file name extensions that get indexed.
var Extensions = []string{".h", ".c"}

func isSource(path string) bool {
	return slices.Contains(Extensions, filepath.Ext(path))
}

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is the result of scanning one file. AST holds every statement
// scanned before ParseErr, if any.
type FileInfo struct {
	Path     string
	Content  []byte
	AST      *cpp.Ast
	ParseErr error
}

// Definition is a define together with the file it came from.
type Definition struct {
	Path   string
	Define cpp.Define
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll indexes every source file below the root directory, parsing in
// parallel. Unreadable files are logged and skipped.
func (c *Codebase) ScanAll(ctx context.Context) error {
	var paths []string
	err := filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.ScanFile(path); err != nil {
				log.Warningf("skipping %s: %s", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Infof("indexed %d files below %s", len(paths), c.rootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and replaces whatever
// was indexed for it.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := parseFile(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

// parseFile runs the passthrough scanner so ordinary C code between the
// directives is not an error.
func parseFile(path string, content []byte) *FileInfo {
	s := cpp.NewScanner(bytes.NewReader(content), cpp.WithFile(path))
	var parseErr error
	for _, err := range s.All() {
		if err != nil {
			parseErr = err
		}
	}
	if parseErr != nil {
		log.Debugf("%s", parseErr)
	}
	return &FileInfo{
		Path:     path,
		Content:  content,
		AST:      s.Ast(),
		ParseErr: parseErr,
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the indexed paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// AllDefines returns every define, ordered by path and then by position.
func (c *Codebase) AllDefines() []Definition {
	var defs []Definition
	for _, path := range c.Files() {
		f := c.GetFile(path)
		if f == nil {
			continue
		}
		for _, d := range f.AST.Defines() {
			defs = append(defs, Definition{Path: path, Define: d})
		}
	}
	return defs
}

// FindDefines returns every definition of name across the codebase.
func (c *Codebase) FindDefines(name string) []Definition {
	var found []Definition
	for _, def := range c.AllDefines() {
		if def.Define.DefineName().Name == name {
			found = append(found, def)
		}
	}
	return found
}

// DefineAtPoint returns the define whose directive covers the 1-based line
// and column of path.
func (c *Codebase) DefineAtPoint(path string, line, column int) cpp.Define {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	return f.AST.DefineAt(line, column)
}

// WordAtPoint returns the identifier under the 1-based line and column.
func (c *Codebase) WordAtPoint(path string, line, column int) string {
	f := c.GetFile(path)
	if f == nil {
		return ""
	}
	runes := lineRunes(f.Content, line)
	i := column - 1
	if i < 0 || i > len(runes) {
		return ""
	}
	start, end := i, i
	for start > 0 && cpp.IsIdentifierChar(runes[start-1]) {
		start--
	}
	for end < len(runes) && cpp.IsIdentifierChar(runes[end]) {
		end++
	}
	word := string(runes[start:end])
	if _, ok := cpp.NewIdentifier(word); !ok {
		return ""
	}
	return word
}

// prefixAtPoint returns the identifier characters just before the 1-based
// line and column.
func prefixAtPoint(content []byte, line, column int) string {
	runes := lineRunes(content, line)
	end := min(max(column-1, 0), len(runes))
	start := end
	for start > 0 && cpp.IsIdentifierChar(runes[start-1]) {
		start--
	}
	return string(runes[start:end])
}

func lineRunes(content []byte, line int) []rune {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return nil
	}
	return []rune(strings.TrimSuffix(lines[line-1], "\r"))
}
