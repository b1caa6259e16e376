// Package naming contains the string transforms used to derive type and
// member names from Directus collection and field keys.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var safeIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// uncountable lists words that the suffix rules of Singularize would
// otherwise mangle: uncountable nouns and singulars ending in "s".
var uncountable = map[string]bool{
	"news":        true,
	"series":      true,
	"species":     true,
	"data":        true,
	"metadata":    true,
	"information": true,
	"equipment":   true,
	"status":      true,
	"analysis":    true,
	"basis":       true,
	"campus":      true,
}

// PascalCase splits s into words on non-alphanumeric characters and on
// lower-to-upper case transitions and concatenates the words with their
// first letters upper cased. The rest of each word is left as is.
func PascalCase(s string) string {
	var b strings.Builder

	for _, w := range words(s) {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}

	return b.String()
}

func words(s string) []string {
	out := make([]string, 0)
	start := -1
	var prev rune

	for i, r := range s {
		alnum := unicode.IsLetter(r) || unicode.IsDigit(r)

		switch {
		case !alnum:
			if start != -1 {
				out = append(out, s[start:i])
				start = -1
			}
		case start == -1:
			start = i
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			out = append(out, s[start:i])
			start = i
		}

		prev = r
	}

	if start != -1 {
		out = append(out, s[start:])
	}

	return out
}

// Singularize returns a best-effort English singular of a plural collection
// name. It only knows a handful of suffix rules:
//
//	categories -> category
//	boxes, churches, addresses -> box, church, address
//	articles -> article
//
// Anything else, including irregular plurals like "people", is returned
// unchanged. Do not rely on it being correct for arbitrary English.
func Singularize(s string) string {
	lower := strings.ToLower(s)

	if uncountable[lower] {
		return s
	}

	switch {
	case len(lower) > 3 && strings.HasSuffix(lower, "ies"):
		return s[:len(s)-3] + matchCase("y", s[len(s)-3:])
	case len(lower) > 2 && strings.HasSuffix(lower, "es") && isSibilant(lower[:len(lower)-2]):
		return s[:len(s)-2]
	case len(lower) > 1 && strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return s[:len(s)-1]
	}

	return s
}

func isSibilant(stem string) bool {
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}

	return false
}

func matchCase(replacement string, original string) string {
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}

	return replacement
}

// IsSafeIdentifier reports whether name can be used as an unquoted member
// name in the emitted declarations.
func IsSafeIdentifier(name string) bool {
	return safeIdentifierRegex.MatchString(name)
}

// GoIdentifier returns an exported Go identifier for name. Names that don't
// start with a letter after pascal casing get an "X" prefix.
func GoIdentifier(name string) string {
	id := PascalCase(name)

	if id == "" {
		return "X"
	}

	if r, _ := utf8.DecodeRuneInString(id); !unicode.IsLetter(r) {
		return "X" + id
	}

	return id
}

// TypeScriptIdentifier makes a pascal cased type name usable as a
// TypeScript identifier: names that don't start with a letter get an "_"
// prefix.
func TypeScriptIdentifier(name string) string {
	if name == "" {
		return "_"
	}

	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(r) && r != '_' && r != '$' {
		return "_" + name
	}

	return name
}
