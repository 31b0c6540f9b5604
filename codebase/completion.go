package codebase

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/cppast/cpp"
)

type CompletionKind int

const (
	CompletionKindConstant CompletionKind = iota
	CompletionKindFunction
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// CompletionsAtPoint offers every known macro whose name starts with the
// identifier being typed at the 1-based line and column. When a name is
// defined more than once the last definition wins.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	prefix := prefixAtPoint(f.Content, line, column)

	byName := make(map[string]cpp.Define)
	for _, def := range c.AllDefines() {
		name := def.Define.DefineName().Name
		if strings.HasPrefix(name, prefix) {
			byName[name] = def.Define
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, completionItem(byName[name]))
	}
	return items
}

func completionItem(d cpp.Define) CompletionItem {
	item := CompletionItem{
		Label:      d.DefineName().Name,
		Kind:       CompletionKindConstant,
		Detail:     FormatDefine(d),
		InsertText: d.DefineName().Name,
	}
	if f, ok := d.(*cpp.Function); ok {
		item.Kind = CompletionKindFunction
		item.InsertText = formatFunctionInsert(f)
	}
	return item
}

// FormatDefine renders d the way it would be written after "#define".
func FormatDefine(d cpp.Define) string {
	head := d.DefineName().Name
	if f, ok := d.(*cpp.Function); ok {
		head = f.Signature()
	}
	if body := d.Body(); body != nil {
		return head + " " + body.String()
	}
	return head
}

// formatFunctionInsert builds a snippet with one placeholder per parameter.
func formatFunctionInsert(f *cpp.Function) string {
	placeholders := make([]string, len(f.Params))
	for i, p := range f.Params {
		placeholders[i] = "${" + strconv.Itoa(i+1) + ":" + p.Name + "}"
	}
	return f.Name.Name + "(" + strings.Join(placeholders, ", ") + ")"
}
