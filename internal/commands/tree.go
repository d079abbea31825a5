// Package commands contains the core logic for building directory trees.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/treeprint/internal/output"
	"github.com/temirov/treeprint/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"

	// errorStatPathFormat is used when file information cannot be retrieved.
	errorStatPathFormat = "stat %s: %w"

	// errorCompactLabelFormat is used when a collapsed chain cannot be expressed relative to its entry.
	errorCompactLabelFormat = "labelling collapsed directory %s: %w"
)

// treeEntry is a directory child that survived filtering.
type treeEntry struct {
	name          string
	path          string
	isDirectory   bool
	isRegularFile bool
	size          int64
}

// Render builds the tree for rootDirectoryPath and joins its lines into one text block.
func (treeBuilder *TreeBuilder) Render(rootDirectoryPath string) (string, error) {
	lines, buildError := treeBuilder.GetTreeLines(rootDirectoryPath)
	if buildError != nil {
		return "", buildError
	}
	return output.JoinLines(lines), nil
}

// GetTreeLines generates the display lines for the directory at rootDirectoryPath.
// The root itself is not rendered; its children start at depth zero.
func (treeBuilder *TreeBuilder) GetTreeLines(rootDirectoryPath string) ([]string, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	lines, buildError := treeBuilder.BuildLines(absoluteRootDirPath, utils.EmptyString, 0)
	if buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, buildError)
	}
	return lines, nil
}

// BuildLines renders the children of startPath, prefixing each line with indentPrefix.
// With compaction enabled startPath is first replaced by the end of its chain of
// single-directory wrappers. Once currentDepth reaches the configured maximum
// nothing is listed and nothing below is visited.
func (treeBuilder *TreeBuilder) BuildLines(startPath string, indentPrefix string, currentDepth int) ([]string, error) {
	if treeBuilder.depthExhausted(currentDepth) {
		return nil, nil
	}
	_, entries, listError := treeBuilder.listDirectory(startPath)
	if listError != nil {
		return nil, listError
	}
	return treeBuilder.renderEntries(entries, indentPrefix, currentDepth)
}

// renderEntries renders an already filtered listing. Child directories are listed
// once: the listing that ends their compaction chain is the one rendered below them.
func (treeBuilder *TreeBuilder) renderEntries(entries []treeEntry, indentPrefix string, currentDepth int) ([]string, error) {
	sortEntries(entries)

	var lines []string
	for entryIndex, entry := range entries {
		isLast := entryIndex == len(entries)-1
		linePrefix, childPrefix := output.TreeLinePrefix(indentPrefix, isLast)

		childDepth := currentDepth + 1
		descend := !treeBuilder.depthExhausted(childDepth)
		if !entry.isDirectory || (!descend && !treeBuilder.Configuration.Compact) {
			lines = append(lines, linePrefix+treeBuilder.renderEntry(entry, entry.name))
			continue
		}

		listedPath, childEntries, listError := treeBuilder.listDirectory(entry.path)
		if listError != nil {
			return nil, listError
		}
		label, labelError := collapsedLabel(entry, listedPath)
		if labelError != nil {
			return nil, labelError
		}
		lines = append(lines, linePrefix+treeBuilder.renderEntry(entry, label))

		if descend {
			childLines, childError := treeBuilder.renderEntries(childEntries, childPrefix, childDepth)
			if childError != nil {
				return nil, childError
			}
			lines = append(lines, childLines...)
		}
	}
	return lines, nil
}

func (treeBuilder *TreeBuilder) depthExhausted(currentDepth int) bool {
	maximumDepth := treeBuilder.Configuration.MaxDepth
	return maximumDepth != nil && currentDepth >= *maximumDepth
}

func (treeBuilder *TreeBuilder) renderEntry(entry treeEntry, label string) string {
	styler := treeBuilder.Styler
	if styler == nil {
		styler = output.NewPlainStyler()
	}
	if entry.isDirectory {
		return styler.Directory(label)
	}
	renderedName := styler.File(label)
	if treeBuilder.Configuration.ShowSizes && entry.isRegularFile {
		renderedName += output.SizeSuffix(utils.FormatFileSize(entry.size))
	}
	return renderedName
}

// listEntries returns the children of directoryPath that pass the exclusion
// patterns and, when configured, the tracked-path filter.
func (treeBuilder *TreeBuilder) listEntries(directoryPath string) ([]treeEntry, error) {
	readDirectory := treeBuilder.readDirectory
	if readDirectory == nil {
		readDirectory = os.ReadDir
	}
	directoryEntries, readDirectoryError := readDirectory(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	trackedSet := treeBuilder.Configuration.Tracked
	entries := make([]treeEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if utils.MatchesAnyPattern(entryName, treeBuilder.Configuration.ExclusionPatterns) {
			continue
		}
		childPath := filepath.Join(directoryPath, entryName)
		if trackedSet != nil && !trackedSet.Covers(childPath) {
			continue
		}
		entry, statError := statEntry(entryName, childPath)
		if statError != nil {
			return nil, statError
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// statEntry classifies a child, following symbolic links. A dangling link is
// neither a directory nor a regular file.
func statEntry(entryName string, childPath string) (treeEntry, error) {
	entry := treeEntry{name: entryName, path: childPath}
	fileInfo, statError := os.Stat(childPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			if linkInfo, linkError := os.Lstat(childPath); linkError == nil && linkInfo.Mode()&fs.ModeSymlink != 0 {
				return entry, nil
			}
		}
		return treeEntry{}, fmt.Errorf(errorStatPathFormat, childPath, statError)
	}
	entry.isDirectory = fileInfo.IsDir()
	entry.isRegularFile = fileInfo.Mode().IsRegular()
	if entry.isRegularFile {
		entry.size = fileInfo.Size()
	}
	return entry, nil
}

// listDirectory lists directoryPath. With compaction enabled it keeps descending
// while the filtered listing holds exactly one entry and that entry is a directory,
// and returns the path whose listing it stopped at.
func (treeBuilder *TreeBuilder) listDirectory(directoryPath string) (string, []treeEntry, error) {
	currentPath := directoryPath
	for {
		entries, listError := treeBuilder.listEntries(currentPath)
		if listError != nil {
			return "", nil, listError
		}
		if !treeBuilder.Configuration.Compact || len(entries) != 1 || !entries[0].isDirectory {
			return currentPath, entries, nil
		}
		currentPath = entries[0].path
	}
}

// collapsedLabel names a compacted directory by its chain, e.g. "a/b/c".
func collapsedLabel(entry treeEntry, collapsedPath string) (string, error) {
	if collapsedPath == entry.path {
		return entry.name, nil
	}
	relativePath, relativeError := filepath.Rel(filepath.Dir(entry.path), collapsedPath)
	if relativeError != nil {
		return "", fmt.Errorf(errorCompactLabelFormat, entry.path, relativeError)
	}
	return filepath.ToSlash(relativePath), nil
}

// sortEntries orders directories before files and names case-insensitively,
// falling back to the exact name so the order never depends on the filesystem.
func sortEntries(entries []treeEntry) {
	sort.Slice(entries, func(leftIndex, rightIndex int) bool {
		left := entries[leftIndex]
		right := entries[rightIndex]
		if left.isRegularFile != right.isRegularFile {
			return !left.isRegularFile
		}
		leftLower := strings.ToLower(left.name)
		rightLower := strings.ToLower(right.name)
		if leftLower != rightLower {
			return leftLower < rightLower
		}
		return left.name < right.name
	})
}
