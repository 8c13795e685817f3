package format

import "strings"

const markdownV1Specials = "_*`["

var markdownV1 = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown escapes text for Telegram's legacy Markdown parse mode.
func EscapeMarkdown(text string) string {
	return markdownV1.Replace(text)
}

// BoldMarkdown renders text in bold for the legacy Markdown parse mode.
// Escapes are not allowed inside an entity, so every special character is
// written escaped between separate bold runs.
func BoldMarkdown(text string) string {
	var b, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString("*" + run.String() + "*")
			run.Reset()
		}
	}
	for _, r := range text {
		if strings.ContainsRune(markdownV1Specials, r) {
			flush()
			b.WriteString(`\` + string(r))
			continue
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

// Truncate keeps the first n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
