// Package command splits and joins shell-like command lines.
//
// Splitting follows POSIX shell word rules: whitespace separation, single
// quotes (literal), double quotes and backslash escapes. Encode is the
// inverse of Parse: Parse(Encode(parts...)) returns parts unchanged.
package command

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Parse splits a command line into tokens. Empty input yields an empty
// slice; an unterminated quote or trailing escape is an error.
func Parse(line string) ([]string, error) {
	return shellquote.Split(line)
}

// Encode joins parts into a command line that Parse splits back into parts.
func Encode(parts ...string) string {
	return shellquote.Join(parts...)
}

// Quote returns part unchanged when it needs no quoting, otherwise a quoted
// form that Parse reads back as a single token.
func Quote(part string) string {
	return shellquote.Join(part)
}

// Split returns the first token of line and the remaining tokens re-joined
// with single spaces. A quoted single argument comes back unquoted, so a
// path with spaces arrives intact.
func Split(line string) (head, rest string, err error) {
	parts, err := Parse(line)
	if err != nil || len(parts) == 0 {
		return "", "", err
	}
	return parts[0], strings.Join(parts[1:], " "), nil
}
