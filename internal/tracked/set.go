// Package tracked models the set of version-controlled paths that scope a tree rendering.
package tracked

import (
	"os"
	"path/filepath"
)

// Set is an immutable collection of absolute tracked file paths together with
// every directory that contains at least one of them.
type Set struct {
	files     map[string]struct{}
	ancestors map[string]struct{}
}

// NewSet resolves relativePaths against rootDirectoryPath. Entries that are not
// regular files on disk stay members of the set but do not make their parent
// directories visible.
func NewSet(rootDirectoryPath string, relativePaths []string) *Set {
	set := &Set{
		files:     make(map[string]struct{}, len(relativePaths)),
		ancestors: make(map[string]struct{}),
	}
	absoluteRoot, absoluteRootError := filepath.Abs(rootDirectoryPath)
	if absoluteRootError != nil {
		absoluteRoot = filepath.Clean(rootDirectoryPath)
	}
	for _, relativePath := range relativePaths {
		if relativePath == "" {
			continue
		}
		trackedPath := filepath.Join(absoluteRoot, filepath.FromSlash(relativePath))
		set.files[trackedPath] = struct{}{}
		fileInfo, statError := os.Stat(trackedPath)
		if statError != nil || !fileInfo.Mode().IsRegular() {
			continue
		}
		set.addAncestors(trackedPath)
	}
	return set
}

// Empty returns a set without members.
func Empty() *Set {
	return &Set{files: map[string]struct{}{}, ancestors: map[string]struct{}{}}
}

func (set *Set) addAncestors(trackedPath string) {
	currentDirectory := filepath.Dir(trackedPath)
	for {
		if _, seen := set.ancestors[currentDirectory]; seen {
			return
		}
		set.ancestors[currentDirectory] = struct{}{}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return
		}
		currentDirectory = parentDirectory
	}
}

// Contains reports whether path itself was listed as tracked.
func (set *Set) Contains(path string) bool {
	if set == nil {
		return false
	}
	_, found := set.files[filepath.Clean(path)]
	return found
}

// Covers reports whether path is tracked or is a directory holding a tracked
// regular file at any depth. Containment is decided on whole path segments, so
// "src/app" never covers "src/application/main.go".
func (set *Set) Covers(path string) bool {
	if set == nil {
		return false
	}
	if set.Contains(path) {
		return true
	}
	_, found := set.ancestors[filepath.Clean(path)]
	return found
}

// Len returns the number of tracked entries.
func (set *Set) Len() int {
	if set == nil {
		return 0
	}
	return len(set.files)
}

// IsEmpty reports whether nothing is tracked.
func (set *Set) IsEmpty() bool {
	return set.Len() == 0
}
