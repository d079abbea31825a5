// Package config loads configuration defaults and exclusion pattern files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/treeprint/internal/utils"
)

const commentPrefix = "#"

// LoadExclusionFilePatterns reads glob patterns from a file, one per line.
// Blank lines and lines starting with '#' are skipped.
//
// #nosec G304
func LoadExclusionFilePatterns(exclusionFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(exclusionFilePath)
	if openFileError != nil {
		return nil, fmt.Errorf("opening exclusion file %s: %w", exclusionFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", exclusionFilePath, closeError)
		}
	}()

	var exclusionPatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		exclusionPatterns = append(exclusionPatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading exclusion file %s: %w", exclusionFilePath, scanError)
	}
	return exclusionPatterns, nil
}

// CombineExclusionPatterns merges pattern sources in order, dropping blanks and
// repeated patterns. The first occurrence of each pattern keeps its position.
func CombineExclusionPatterns(patternSources ...[]string) []string {
	var combinedPatterns []string
	for _, patternSource := range patternSources {
		for _, pattern := range patternSource {
			trimmedPattern := strings.TrimSpace(pattern)
			if trimmedPattern == "" {
				continue
			}
			if !utils.ContainsString(combinedPatterns, trimmedPattern) {
				combinedPatterns = append(combinedPatterns, trimmedPattern)
			}
		}
	}
	return combinedPatterns
}
