package lsp

import (
	"bytes"
	"errors"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/cppast/codebase"
	"github.com/dhamidi/cppast/cpp"
	"github.com/iancoleman/strcase"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// toPosition converts a 1-based cpp position, whose column counts runes, to
// a 0-based protocol one, whose character counts UTF-16 units of the line in
// content.
func toPosition(content []byte, p cpp.Position) protocol.Position {
	if !p.IsValid() {
		return protocol.Position{}
	}
	return protocol.Position{
		Line:      protocol.UInteger(p.Line - 1),
		Character: protocol.UInteger(utf16Units(lineText(content, p.Line), max(p.Column-1, 0))),
	}
}

func toRange(content []byte, span cpp.Span) protocol.Range {
	return protocol.Range{Start: toPosition(content, span.Start), End: toPosition(content, span.End)}
}

// fromPosition converts a 0-based protocol position to a 1-based line and
// rune column.
func fromPosition(content []byte, p protocol.Position) (int, int) {
	line := int(p.Line) + 1
	return line, runesIn(lineText(content, line), int(p.Character)) + 1
}

// lineText returns the 1-based line of content without its terminator.
func lineText(content []byte, line int) string {
	for ; line > 1; line-- {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			return ""
		}
		content = content[i+1:]
	}
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return string(bytes.TrimSuffix(content, []byte("\r")))
}

// utf16Units counts the UTF-16 units of the first n runes of s. Runes past
// the end of s count one unit each.
func utf16Units(s string, n int) int {
	units := 0
	for _, r := range s {
		if n == 0 {
			break
		}
		units += utf16.RuneLen(r)
		n--
	}
	return units + n
}

// runesIn is the inverse of utf16Units: the number of runes spanned by the
// first units UTF-16 units of s.
func runesIn(s string, units int) int {
	n := 0
	for _, r := range s {
		if units <= 0 {
			break
		}
		units -= utf16.RuneLen(r)
		n++
	}
	return n + max(units, 0)
}

// toDiagnostic places err at its token. Errors without a position are
// reported at the start of the document.
func toDiagnostic(content []byte, err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	d := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}

	var e *cpp.Error
	if !errors.As(err, &e) {
		return d
	}
	d.Message = e.Message()
	d.Code = &protocol.IntegerOrString{Value: strcase.ToKebab(e.Kind.String())}

	start := e.Pos
	end := start
	if n := utf8.RuneCountInString(e.Token.Text); n > 0 && !e.Token.Is(cpp.NewLine) && e.Token.Span.Start == start {
		end.Column += n
	}
	d.Range = toRange(content, cpp.Span{Start: start, End: end})
	return d
}

// diagnostics never returns nil so that publishing it clears old entries.
func diagnostics(info *codebase.FileInfo) []protocol.Diagnostic {
	if info == nil || info.ParseErr == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{toDiagnostic(info.Content, info.ParseErr)}
}

func documentSymbols(info *codebase.FileInfo) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if info == nil {
		return symbols
	}
	for _, d := range info.AST.Defines() {
		detail := codebase.FormatDefine(d)
		kind := protocol.SymbolKindConstant
		if _, ok := d.(*cpp.Function); ok {
			kind = protocol.SymbolKindFunction
		}
		r := toRange(info.Content, d.NodeSpan())
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           d.DefineName().Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols
}

// hoverText renders every definition of a macro as markdown.
func hoverText(defs []codebase.Definition) string {
	var sb strings.Builder
	for i, def := range defs {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString("```c\n#define " + codebase.FormatDefine(def.Define) + "\n```\n\n")
		start := def.Define.NodeSpan().Start
		sb.WriteString("`" + filepath.Base(def.Path) + ":" + strconv.Itoa(start.Line) + "`\n")
	}
	return sb.String()
}

func toCompletionItems(completions []codebase.CompletionItem) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText
		format := protocol.InsertTextFormatPlainText
		if c.Kind == codebase.CompletionKindFunction {
			format = protocol.InsertTextFormatSnippet
		}
		items = append(items, protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &format,
		})
	}
	return items
}

func toProtocolKind(kind codebase.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case codebase.CompletionKindConstant:
		return protocol.CompletionItemKindConstant
	case codebase.CompletionKindFunction:
		return protocol.CompletionItemKindFunction
	default:
		return protocol.CompletionItemKindText
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
