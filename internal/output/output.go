// Package output renders tree lines and writes them to their destinations.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	lineSeparator    = "\n"
	sizeSuffixFormat = " (%s)"

	errorWriteTreeFormat = "writing tree output: %w"
)

// TreeLinePrefix returns the prefix for an entry line and the indentation its
// children inherit, depending on whether the entry closes its directory listing.
func TreeLinePrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + treeLastConnector, prefix + treeLastPadding
	}
	return prefix + treeBranchConnector, prefix + treeBranchPadding
}

// SizeSuffix formats an already human-readable size as a line suffix.
func SizeSuffix(formattedSize string) string {
	return fmt.Sprintf(sizeSuffixFormat, formattedSize)
}

// JoinLines assembles materialized tree lines into a single text block.
func JoinLines(lines []string) string {
	return strings.Join(lines, lineSeparator)
}

// WriteLines writes the materialized tree lines followed by a trailing newline.
// Nothing is written for an empty tree.
func WriteLines(writer io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if _, writeError := io.WriteString(writer, JoinLines(lines)+lineSeparator); writeError != nil {
		return fmt.Errorf(errorWriteTreeFormat, writeError)
	}
	return nil
}

// StripANSI removes terminal escape sequences from text.
func StripANSI(text string) string {
	return ansi.Strip(text)
}
