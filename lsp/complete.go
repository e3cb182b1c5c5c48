package lsp

import (
	"sort"
	"strings"
	"unicode"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"jocks/object"
	"jocks/token"
)

// Keywords, natives and the document's top-level names starting with
// prefix, sorted by label.
func Complete(prefix string, globals []string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0)
	seen := make(map[string]bool)

	add := func(label string, kind protocol.CompletionItemKind, detail string) {
		if seen[label] || !strings.HasPrefix(label, prefix) {
			return
		}
		seen[label] = true

		items = append(items, protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	for _, word := range token.Keywords() {
		add(word, protocol.CompletionItemKindKeyword, "keyword")
	}

	for _, native := range object.Natives() {
		if _, ok := native.Value.(*object.Class); ok {
			add(native.Name, protocol.CompletionItemKindClass, "builtin class")
		} else {
			add(native.Name, protocol.CompletionItemKindFunction, native.Value.String())
		}
	}

	for _, name := range globals {
		add(name, protocol.CompletionItemKindVariable, "global")
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// The identifier fragment before the cursor.
func extractPrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}

	// Walk backwards from cursor to find the start of the identifier
	start := col
	for start > 0 {
		ch := rune(line[start-1])
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			start--
		} else {
			break
		}
	}

	return line[start:col]
}
