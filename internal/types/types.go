// Package types defines cross-package data structures used by the treeprint CLI.
package types

// ValidatedPath is an absolute path to an existing directory.
type ValidatedPath struct {
	AbsolutePath string
}

// TreeSettings is the fully resolved set of rendering options for one invocation,
// after configuration files and command line flags have been combined.
type TreeSettings struct {
	ExclusionPatterns []string
	UseGit            bool
	ColorEnabled      bool
	ShowSizes         bool
	Compact           bool
	MaxDepth          *int
	Clipboard         bool
}
