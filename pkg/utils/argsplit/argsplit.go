// Package argsplit splits a flat option string into discrete argument
// tokens using POSIX-ish word splitting. It exists so pass-through
// flag strings from config files and the CLI can be handed to the
// tool builder as a proper vector instead of being re-joined through
// a shell.
package argsplit

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quote is never closed.
	ErrUnclosedQuote = errors.New("unclosed quote in argument string")

	// ErrTrailingEscape is returned for a backslash at end of input.
	ErrTrailingEscape = errors.New("trailing escape at end of argument string")
)

// Split parses input into tokens. Single quotes are literal, double
// quotes allow backslash escapes of `"` `\` `$` and backtick, and a
// bare backslash escapes the next rune. Empty input yields no tokens.
func Split(input string) ([]string, error) {
	var (
		tokens    []string
		cur       strings.Builder
		inSingle  bool
		inDouble  bool
		sawQuotes bool
	)

	flush := func() {
		if cur.Len() > 0 || sawQuotes {
			tokens = append(tokens, cur.String())
			cur.Reset()
			sawQuotes = false
		}
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case ch == '\\' && !inSingle:
			if i+1 >= len(runes) {
				return nil, ErrTrailingEscape
			}
			i++
			next := runes[i]
			if inDouble && !strings.ContainsRune("\"\\$`", next) {
				cur.WriteRune('\\')
			}
			cur.WriteRune(next)

		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			sawQuotes = true

		case ch == '"' && !inSingle:
			inDouble = !inDouble
			sawQuotes = true

		case unicode.IsSpace(ch) && !inSingle && !inDouble:
			flush()

		default:
			cur.WriteRune(ch)
		}
	}

	if inSingle || inDouble {
		return nil, ErrUnclosedQuote
	}
	flush()

	if tokens == nil {
		return []string{}, nil
	}
	return tokens, nil
}
