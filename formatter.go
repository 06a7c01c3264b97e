package rulesbot

import "strings"

// FormatDocs renders docs as markdown links, one per line, each followed
// by its kind. Returns "" for no docs.
func FormatDocs(docs []Doc) string {
	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, link(doc.ShortName, doc.URL)+" "+doc.Kind)
	}
	return strings.Join(lines, "\n")
}

// FormatReferences renders resolved references as markdown links, one per
// line. Returns "" for no references.
func FormatReferences(refs []ResolvedReference) string {
	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		lines = append(lines, link(ref.DisplayName, ref.URL))
	}
	return strings.Join(lines, "\n")
}

func link(text, url string) string {
	return "[" + EscapeMarkdown(text) + "](" + url + ")"
}
