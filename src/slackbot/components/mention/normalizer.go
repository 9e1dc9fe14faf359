package mention

import (
	"regexp"
	"strings"
)

var mentionToken = regexp.MustCompile(`<@[A-Za-z0-9]+>`)

// Clean strips raw <@USERID> mention tokens and collapses whitespace runs to
// single spaces, trimming the ends. Case is preserved; this is the form sent
// to the model on the chat path.
func Clean(text string) string {
	text = mentionToken.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Normalize is Clean plus lowercasing. The lowercased form is used only for
// intent matching, never for display.
func Normalize(text string) string {
	return strings.ToLower(Clean(text))
}
