package commands

import (
	"os"

	"github.com/temirov/treeprint/internal/output"
	"github.com/temirov/treeprint/internal/tracked"
)

// TreeConfiguration holds the rendering options shared by every level of a tree build.
type TreeConfiguration struct {
	ExclusionPatterns []string
	// Tracked restricts the tree to version-controlled paths when non-nil.
	Tracked      *tracked.Set
	ColorEnabled bool
	ShowSizes    bool
	Compact      bool
	// MaxDepth limits how many directory levels are rendered; nil means unbounded.
	MaxDepth *int
}

// TreeBuilder builds directory tree lines using configured options.
type TreeBuilder struct {
	Configuration TreeConfiguration
	Styler        output.Styler
	readDirectory func(string) ([]os.DirEntry, error)
}

// NewTreeBuilder constructs a TreeBuilder whose styler follows the color preference.
func NewTreeBuilder(configuration TreeConfiguration) *TreeBuilder {
	return &TreeBuilder{
		Configuration: configuration,
		Styler:        output.NewStyler(configuration.ColorEnabled),
		readDirectory: os.ReadDir,
	}
}
