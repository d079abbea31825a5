// Package git queries the git executable for version-controlled files.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/temirov/treeprint/internal/tracked"
)

const (
	gitExecutableName    = "git"
	gitDirectoryOption   = "-C"
	listFilesCommand     = "ls-files"
	nulSeparatorOption   = "-z"
	nulSeparator         = "\x00"
	errorListFilesFormat = "git ls-files in %s: %w: %s"
)

// Lister runs `git ls-files` to enumerate tracked files.
type Lister struct {
	executable string
}

// NewLister constructs a Lister using the git executable found on PATH.
func NewLister() *Lister {
	return &Lister{executable: gitExecutableName}
}

// ListTracked returns tracked files below rootDirectoryPath, relative to it.
// Any non-zero exit, including a missing executable or a directory outside a
// repository, is returned as an error.
func (lister *Lister) ListTracked(ctx context.Context, rootDirectoryPath string) ([]string, error) {
	executable := lister.executable
	if executable == "" {
		executable = gitExecutableName
	}
	// #nosec G204
	listCommand := exec.CommandContext(ctx, executable, gitDirectoryOption, rootDirectoryPath, listFilesCommand, nulSeparatorOption)
	var standardError bytes.Buffer
	listCommand.Stderr = &standardError
	listOutput, runError := listCommand.Output()
	if runError != nil {
		return nil, fmt.Errorf(errorListFilesFormat, rootDirectoryPath, runError, strings.TrimSpace(standardError.String()))
	}
	return parseNulSeparated(string(listOutput)), nil
}

func parseNulSeparated(listOutput string) []string {
	var relativePaths []string
	for _, entry := range strings.Split(listOutput, nulSeparator) {
		if entry == "" {
			continue
		}
		relativePaths = append(relativePaths, entry)
	}
	return relativePaths
}

var _ tracked.Lister = (*Lister)(nil)
