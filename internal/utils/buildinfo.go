// Package utils provides helper functions, including version retrieval.
package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	gitExecutableName  = "git"
	gitDirectoryOption = "-C"
)

// applicationVersion can be set at link time with -ldflags "-X".
var applicationVersion string

// GetApplicationVersion determines the application version. A link-time value wins,
// then Go build info, then git describe run against the executable's source directory.
func GetApplicationVersion() string {
	if applicationVersion != EmptyString {
		return applicationVersion
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	for _, describeArguments := range [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	} {
		if described := describeWorkingTree(describeArguments); described != EmptyString {
			return described
		}
	}
	return unknownVersion
}

func describeWorkingTree(describeArguments []string) string {
	arguments := append([]string{gitDirectoryOption, "."}, describeArguments...)
	// #nosec G204
	describeCommand := exec.Command(gitExecutableName, arguments...)
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil {
		return EmptyString
	}
	return strings.TrimSpace(string(describeOutput))
}
