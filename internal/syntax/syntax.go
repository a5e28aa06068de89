// Package syntax guesses a backend syntax choice for paste content.
package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"

	"github.com/qastetray/cli/internal/backend"
)

// Linguist names that backends tend to spell differently.
var aliases = map[string][]string{
	"Shell":      {"Bash", "Shell session"},
	"Text":       {"Plain text"},
	"Python":     {"Python 3"},
	"Emacs Lisp": {"Common Lisp"},
	"F#":         {"FSharp"},
}

// Detect returns the linguist language name for content, or "" when it
// can't tell. filename may be empty for stdin.
func Detect(filename string, content []byte) string {
	if filename != "" {
		if lang, safe := enry.GetLanguageByExtension(filename); safe && lang != "" {
			return lang
		}
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return lang
	}
	if filename == "" {
		return ""
	}
	return enry.GetLanguage(filename, content)
}

// Match finds the syntax label in d that corresponds to language. Labels and
// codes are compared case-insensitively.
func Match(d backend.Descriptor, language string) (string, bool) {
	if language == "" || len(d.SyntaxChoices) == 0 {
		return "", false
	}

	candidates := append([]string{language}, aliases[language]...)
	labels := backend.SyntaxLabels(d)
	for _, candidate := range candidates {
		for _, label := range labels {
			if strings.EqualFold(label, candidate) || strings.EqualFold(d.SyntaxChoices[label], candidate) {
				return label, true
			}
		}
	}
	return "", false
}

// Guess combines Detect and Match.
func Guess(d backend.Descriptor, filename string, content []byte) (string, bool) {
	return Match(d, Detect(filename, content))
}

// IsText reports whether content can be pasted: valid UTF-8 that doesn't
// look binary.
func IsText(content []byte) bool {
	return utf8.Valid(content) && !enry.IsBinary(content)
}
