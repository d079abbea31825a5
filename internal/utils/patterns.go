package utils

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	backslash        = `\`
	escapedBackslash = `\\`
)

// MatchesAnyPattern reports whether entryName matches at least one of the glob
// patterns. Patterns are evaluated against the bare name, never a full path.
// A pattern that cannot be parsed is compared literally against the name.
func MatchesAnyPattern(entryName string, patterns []string) bool {
	for _, patternValue := range patterns {
		if MatchesPattern(entryName, patternValue) {
			return true
		}
	}
	return false
}

// MatchesPattern reports whether entryName matches a single glob pattern.
// A backslash is an ordinary character, as in shell-style fnmatch globs.
func MatchesPattern(entryName string, patternValue string) bool {
	if strings.TrimSpace(patternValue) == EmptyString {
		return false
	}
	escapedPattern := strings.ReplaceAll(patternValue, backslash, escapedBackslash)
	isMatched, matchError := doublestar.Match(escapedPattern, entryName)
	if matchError != nil {
		if errors.Is(matchError, doublestar.ErrBadPattern) {
			return patternValue == entryName
		}
		return false
	}
	return isMatched
}
