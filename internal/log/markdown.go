package log

import (
	"regexp"

	"github.com/speakeasy-api/textmerge/internal/charm/styles"
)

var (
	parentStyleRegex = regexp.MustCompile(`\x1b\[.*?m`)
	codeRegex        = regexp.MustCompile("`([^`]+)`")
)

// StyleMarkdown highlights `code` spans, resuming the surrounding style after each span.
func StyleMarkdown(s string) string {
	// Extract the first style from the string, if present
	parentStyle := parentStyleRegex.FindString(s)

	return codeRegex.ReplaceAllString(s, styles.HeavilyEmphasized.Render("$1")+parentStyle)
}
