package tracked

import (
	"context"

	"go.uber.org/zap"
)

const trackedQueryFailedMessage = "tracked file query failed; treating every path as untracked"

// Lister enumerates version-controlled files below a root directory. Returned
// paths are relative to rootDirectoryPath and use forward slashes.
type Lister interface {
	ListTracked(ctx context.Context, rootDirectoryPath string) ([]string, error)
}

// Build queries lister once and returns the resulting set. A failed query
// yields an empty set so that a tracking-filtered rendering shows nothing.
func Build(ctx context.Context, lister Lister, rootDirectoryPath string, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lister == nil {
		return Empty()
	}
	relativePaths, listError := lister.ListTracked(ctx, rootDirectoryPath)
	if listError != nil {
		logger.Debug(trackedQueryFailedMessage, zap.String("root", rootDirectoryPath), zap.Error(listError))
		return Empty()
	}
	set := NewSet(rootDirectoryPath, relativePaths)
	logger.Debug("tracked files loaded", zap.String("root", rootDirectoryPath), zap.Int("count", set.Len()))
	return set
}
