package rulesbot

import (
	"regexp"
	"strings"
)

// EnclosingCharacter marks symbols to be replaced by documentation links,
// as in "I like +TelegramClient+".
const EnclosingCharacter = "+"

var enclosedPattern = regexp.MustCompile(`\+([a-zA-Z_.0-9]*)\+`)

// EnclosedSymbols returns the symbols enclosed in EnclosingCharacter, in
// order of appearance.
func EnclosedSymbols(text string) []string {
	var symbols []string
	for _, m := range enclosedPattern.FindAllStringSubmatch(text, -1) {
		symbols = append(symbols, m[1])
	}
	return symbols
}

// ApplyReplacements rewrites every enclosed symbol in text as a markdown
// link to its documentation match; docs[i] is the match for symbols[i] or
// nil. Symbols without a match are replaced by their escaped text. It
// returns the display names of the replacements, with misses suffixed by
// "❓", and the rewritten text.
func ApplyReplacements(text string, symbols []string, docs []*Doc) ([]string, string) {
	changed := make([]string, 0, len(symbols))
	result := text
	for i, s := range symbols {
		enclosed := EnclosingCharacter + s + EnclosingCharacter
		if doc := docs[i]; doc != nil {
			changed = append(changed, doc.ShortName)
			result = strings.ReplaceAll(result, enclosed, "["+doc.ShortName+"]("+doc.URL+")")
			continue
		}
		changed = append(changed, s+"❓")
		result = strings.ReplaceAll(result, enclosed, EscapeMarkdown(s))
	}
	return changed, result
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown escapes the characters that have meaning in legacy
// Telegram markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
