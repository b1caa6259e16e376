package field

import (
	"strings"

	"github.com/danielroe/directus-typegen/internal/model"
)

var docEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"*/", `*\/`,
)

// DocText returns the single line documentation text of a field, taken from
// its note or, when there's no note, its description. The returned text can
// be embedded in a block comment without terminating it.
func DocText(f model.Field) string {
	if f.Meta == nil {
		return ""
	}

	text := f.Meta.Note
	if strings.TrimSpace(text) == "" {
		text = f.Meta.Description
	}

	return strings.TrimSpace(docEscaper.Replace(text))
}

// DocComment returns a single line `/** ... */` comment for f, or an empty
// string if f has nothing to say.
func DocComment(f model.Field) string {
	text := DocText(f)
	if text == "" {
		return ""
	}

	return "/** " + text + " */"
}
