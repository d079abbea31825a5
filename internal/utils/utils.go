// Package utils contains general helper functions used across treeprint.
package utils

import (
	"strings"
)

const patternListSeparator = ","

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// SplitPatternList expands comma separated pattern arguments, trims whitespace
// and drops empty entries. The order of appearance is preserved.
func SplitPatternList(values []string) []string {
	var patterns []string
	for _, value := range values {
		for _, candidate := range strings.Split(value, patternListSeparator) {
			trimmedCandidate := strings.TrimSpace(candidate)
			if trimmedCandidate == EmptyString {
				continue
			}
			patterns = append(patterns, trimmedCandidate)
		}
	}
	return patterns
}
