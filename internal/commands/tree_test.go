package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treeprint/internal/commands"
	"github.com/temirov/treeprint/internal/output"
	"github.com/temirov/treeprint/internal/tracked"
)

const (
	smallFileName     = "a.txt"
	largeFileName     = "b.txt"
	nestedFileName    = "c.txt"
	subDirectoryName  = "sub"
	smallFileSize     = 10
	largeFileSize     = 2000
	nestedFileSize    = 5
	fixtureFileMode   = 0o644
	fixtureFolderMode = 0o755
)

func writeSizedFile(testingHandle *testing.T, path string, size int) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(path), fixtureFolderMode); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(path), makeDirError)
	}
	if writeError := os.WriteFile(path, []byte(strings.Repeat("x", size)), fixtureFileMode); writeError != nil {
		testingHandle.Fatalf("write %s: %v", path, writeError)
	}
}

func makeDirectory(testingHandle *testing.T, path string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(path, fixtureFolderMode); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", path, makeDirError)
	}
}

// createScenarioTree lays out a.txt (10 bytes), b.txt (2000 bytes) and sub/c.txt (5 bytes).
func createScenarioTree(testingHandle *testing.T) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, smallFileName), smallFileSize)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, largeFileName), largeFileSize)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, subDirectoryName, nestedFileName), nestedFileSize)
	return rootDirectory
}

func depthPointer(depth int) *int {
	return &depth
}

func buildLines(testingHandle *testing.T, rootDirectory string, configuration commands.TreeConfiguration) []string {
	testingHandle.Helper()
	lines, buildError := commands.NewTreeBuilder(configuration).GetTreeLines(rootDirectory)
	if buildError != nil {
		testingHandle.Fatalf("GetTreeLines error: %v", buildError)
	}
	return lines
}

func assertLines(testingHandle *testing.T, actual []string, expected []string) {
	testingHandle.Helper()
	if len(actual) != len(expected) {
		testingHandle.Fatalf("expected %d lines %q, got %d lines %q", len(expected), expected, len(actual), actual)
	}
	for lineIndex := range expected {
		if actual[lineIndex] != expected[lineIndex] {
			testingHandle.Fatalf("line %d: expected %q, got %q\nall lines: %q", lineIndex, expected[lineIndex], actual[lineIndex], actual)
		}
	}
}

func TestGetTreeLinesScenario(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{ShowSizes: true})
	assertLines(testingHandle, lines, []string{
		"├── sub",
		"│   └── c.txt (5.0B)",
		"├── a.txt (10.0B)",
		"└── b.txt (2.0KB)",
	})
}

func TestGetTreeLinesDepthLimit(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	testCases := []struct {
		name     string
		depth    *int
		expected []string
	}{
		{name: "depth_zero_shows_nothing", depth: depthPointer(0), expected: nil},
		{name: "depth_one_hides_nested", depth: depthPointer(1), expected: []string{"├── sub", "├── a.txt", "└── b.txt"}},
		{name: "depth_two_shows_all", depth: depthPointer(2), expected: []string{"├── sub", "│   └── c.txt", "├── a.txt", "└── b.txt"}},
		{name: "unbounded", depth: nil, expected: []string{"├── sub", "│   └── c.txt", "├── a.txt", "└── b.txt"}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{MaxDepth: testCase.depth})
			assertLines(testingHandle, lines, testCase.expected)
		})
	}
}

func TestGetTreeLinesExclusions(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, subDirectoryName, "debug.log"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "node_modules", "dependency.js"), 1)

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{
		ExclusionPatterns: []string{"*.log", "node_modules", "b.*"},
	})
	assertLines(testingHandle, lines, []string{
		"├── sub",
		"│   └── c.txt",
		"└── a.txt",
	})
	for _, line := range lines {
		for _, excludedName := range []string{"debug.log", "node_modules", "dependency.js", largeFileName} {
			if strings.Contains(line, excludedName) {
				testingHandle.Fatalf("excluded name %s rendered in %q", excludedName, line)
			}
		}
	}
}

func TestGetTreeLinesOrdering(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "Zeta.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "alpha.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "Beta.txt"), 1)
	makeDirectory(testingHandle, filepath.Join(rootDirectory, "zdir"))
	makeDirectory(testingHandle, filepath.Join(rootDirectory, "Adir"))

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{})
	assertLines(testingHandle, lines, []string{
		"├── Adir",
		"├── zdir",
		"├── alpha.txt",
		"├── Beta.txt",
		"└── Zeta.txt",
	})
}

func TestGetTreeLinesNestedIndentation(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "first", "inner", "deep.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "first", "leaf.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "last", "only.txt"), 1)

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{})
	assertLines(testingHandle, lines, []string{
		"├── first",
		"│   ├── inner",
		"│   │   └── deep.txt",
		"│   └── leaf.txt",
		"└── last",
		"    └── only.txt",
	})
}

func TestGetTreeLinesCompaction(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "src", "main", "java", "App.java"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "src", "main", "java", "Util.java"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "README.md"), 1)

	testCases := []struct {
		name     string
		compact  bool
		expected []string
	}{
		{
			name:    "disabled_shows_every_level",
			compact: false,
			expected: []string{
				"├── src",
				"│   └── main",
				"│       └── java",
				"│           ├── App.java",
				"│           └── Util.java",
				"└── README.md",
			},
		},
		{
			name:    "enabled_collapses_chain",
			compact: true,
			expected: []string{
				"├── src/main/java",
				"│   ├── App.java",
				"│   └── Util.java",
				"└── README.md",
			},
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Compact: testCase.compact})
			assertLines(testingHandle, lines, testCase.expected)
		})
	}
}

func TestGetTreeLinesCompactionStopsAtFiles(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "pkg", "doc.go"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "pkg", "inner", "impl.go"), 1)
	makeDirectory(testingHandle, filepath.Join(rootDirectory, "empty", "leaf"))

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Compact: true})
	assertLines(testingHandle, lines, []string{
		"├── empty/leaf",
		"└── pkg",
		"    ├── inner",
		"    │   └── impl.go",
		"    └── doc.go",
	})
}

func TestGetTreeLinesCompactionCollapsesRoot(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "wrapper", "inner", "one.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "wrapper", "inner", "two.txt"), 1)

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Compact: true})
	assertLines(testingHandle, lines, []string{
		"├── one.txt",
		"└── two.txt",
	})
}

func TestGetTreeLinesCompactionHonorsExclusions(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "outer", "inner", "kept.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "outer", "ignored.log"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "top.txt"), 1)

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{
		Compact:           true,
		ExclusionPatterns: []string{"*.log"},
	})
	assertLines(testingHandle, lines, []string{
		"├── outer/inner",
		"│   └── kept.txt",
		"└── top.txt",
	})
}

func TestGetTreeLinesCompactionHonorsTrackedFilter(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "a", "b", "c", "x.go"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "a", "b", "untracked.txt"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "top.txt"), 1)

	trackedSet := tracked.NewSet(rootDirectory, []string{"a/b/c/x.go", "top.txt"})
	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{
		Compact: true,
		Tracked: trackedSet,
	})
	assertLines(testingHandle, lines, []string{
		"├── a/b/c",
		"│   └── x.go",
		"└── top.txt",
	})
}

func TestGetTreeLinesCompactionLabelIsStyledAsDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "src", "main", "java", "App.java"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "README.md"), 1)

	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Compact: true, ColorEnabled: true})
	if len(lines) != 3 {
		testingHandle.Fatalf("expected 3 lines, got %q", lines)
	}
	expectedLabel := output.NewColorStyler().Directory("src/main/java")
	if !strings.Contains(lines[0], "\x1b[") {
		testingHandle.Fatalf("expected colored compaction label, got %q", lines[0])
	}
	if lines[0] != "├── "+expectedLabel {
		testingHandle.Fatalf("expected the whole chain styled as one directory name, got %q", lines[0])
	}
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped = append(stripped, output.StripANSI(line))
	}
	assertLines(testingHandle, stripped, []string{
		"├── src/main/java",
		"│   └── App.java",
		"└── README.md",
	})
}

func TestGetTreeLinesTrackedFilter(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "build", "output.bin"), 1)
	writeSizedFile(testingHandle, filepath.Join(rootDirectory, "subsidiary", "notes.txt"), 1)

	trackedSet := tracked.NewSet(rootDirectory, []string{"sub/c.txt", smallFileName})
	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Tracked: trackedSet})
	assertLines(testingHandle, lines, []string{
		"├── sub",
		"│   └── c.txt",
		"└── a.txt",
	})
}

func TestGetTreeLinesEmptyTrackedSetShowsNothing(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{Tracked: tracked.Empty()})
	if len(lines) != 0 {
		testingHandle.Fatalf("expected no lines, got %q", lines)
	}
}

func TestGetTreeLinesColorsDirectories(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	lines := buildLines(testingHandle, rootDirectory, commands.TreeConfiguration{ColorEnabled: true, ShowSizes: true})
	if len(lines) != 4 {
		testingHandle.Fatalf("expected 4 lines, got %q", lines)
	}
	if !strings.Contains(lines[0], "\x1b[") {
		testingHandle.Fatalf("expected colored directory line, got %q", lines[0])
	}
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped = append(stripped, output.StripANSI(line))
	}
	assertLines(testingHandle, stripped, []string{
		"├── sub",
		"│   └── c.txt (5.0B)",
		"├── a.txt (10.0B)",
		"└── b.txt (2.0KB)",
	})
}

func TestRenderJoinsLines(testingHandle *testing.T) {
	rootDirectory := createScenarioTree(testingHandle)
	rendered, renderError := commands.NewTreeBuilder(commands.TreeConfiguration{MaxDepth: depthPointer(1)}).Render(rootDirectory)
	if renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	if rendered != "├── sub\n├── a.txt\n└── b.txt" {
		testingHandle.Fatalf("unexpected rendering %q", rendered)
	}
}

func TestGetTreeLinesMissingRoot(testingHandle *testing.T) {
	missingDirectory := filepath.Join(testingHandle.TempDir(), "missing")
	if _, buildError := commands.NewTreeBuilder(commands.TreeConfiguration{}).GetTreeLines(missingDirectory); buildError == nil {
		testingHandle.Fatalf("expected error for missing root")
	}
}

func TestGetTreeLinesUnreadableDirectoryAborts(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	rootDirectory := createScenarioTree(testingHandle)
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	makeDirectory(testingHandle, lockedDirectory)
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() {
		_ = os.Chmod(lockedDirectory, fixtureFolderMode)
	})
	if _, buildError := commands.NewTreeBuilder(commands.TreeConfiguration{}).GetTreeLines(rootDirectory); buildError == nil {
		testingHandle.Fatalf("expected traversal to fail on unreadable directory")
	}
}
