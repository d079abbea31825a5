// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/treeprint/internal/commands"
	"github.com/temirov/treeprint/internal/config"
	"github.com/temirov/treeprint/internal/output"
	"github.com/temirov/treeprint/internal/services/clipboard"
	"github.com/temirov/treeprint/internal/services/git"
	"github.com/temirov/treeprint/internal/tracked"
	"github.com/temirov/treeprint/internal/types"
	"github.com/temirov/treeprint/internal/utils"
)

const (
	exclusionFlagName       = "exclude"
	exclusionFlagShorthand  = "e"
	exclusionFileFlagName   = "exclude-file"
	gitFlagName             = "git"
	gitFlagShorthand        = "G"
	noColorFlagName         = "no-color"
	noSizeFlagName          = "no-size"
	compactFlagName         = "compact"
	compactFlagShorthand    = "c"
	depthFlagName           = "depth"
	depthFlagShorthand      = "L"
	clipboardFlagName       = "clipboard"
	configFlagName          = "config"
	initConfigFlagName      = "init-config"
	initConfigDefaultTarget = "local"
	forceFlagName           = "force"
	verboseFlagName         = "verbose"
	versionFlagName         = "version"
	versionTemplate         = "treeprint version: %s\n"
	defaultPath             = "."
	rootUse                 = "treeprint [path]"
	rootShortDescription    = "Git-aware directory tree printer"
	rootLongDescription     = `treeprint renders a directory as a tree diagram.
Directories are listed before files and names sort case-insensitively.
Use --git to restrict the tree to files tracked by git, --compact to collapse
chains of single-directory wrappers, and --depth to limit nesting.`
	// rootUsageExample demonstrates typical invocations.
	rootUsageExample = `  # Render the current directory without sizes
  treeprint --no-size

  # Show only tracked files two levels deep, collapsing wrapper directories
  treeprint -G -c -L 2 ./src

  # Exclude logs and vendored code, then copy the tree to the clipboard
  treeprint -e '*.log' -e vendor --clipboard .`

	exclusionFlagDescription     = "exclude entries whose name matches the glob pattern (repeatable, comma separated)"
	exclusionFileFlagDescription = "read additional exclusion patterns from a file, one per line"
	gitFlagDescription           = "only show git-tracked files and the directories containing them"
	noColorFlagDescription       = "disable colored output"
	noSizeFlagDescription        = "hide file sizes"
	compactFlagDescription       = "collapse single-child directories"
	depthFlagDescription         = "limit the depth of the tree"
	clipboardFlagDescription     = "copy tree output to the clipboard instead of printing"
	configFlagDescription        = "path to a configuration file used instead of ./" + utils.ConfigFileName
	initConfigFlagDescription    = "write a default configuration file (local or global) and exit"
	forceFlagDescription         = "overwrite an existing configuration file with --" + initConfigFlagName
	verboseFlagDescription       = "log diagnostic details to stderr"
	versionFlagDescription       = "display application version"

	clipboardConfirmationMessage = "Tree copied to clipboard!"
	configurationWrittenFormat   = "Configuration written to %s\n"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorPathNotDirectoryFormat reports a root that is not a directory.
	errorPathNotDirectoryFormat = "path '%s' is not a directory"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNegativeDepthFormat reports an invalid depth flag.
	errorNegativeDepthFormat = "depth must not be negative, got %d"
)

// Dependencies carries the collaborators of the root command. Zero values are
// replaced with production implementations.
type Dependencies struct {
	Logger           *zap.Logger
	LogLevel         *zap.AtomicLevel
	Lister           tracked.Lister
	Clipboard        clipboard.Copier
	Stdout           io.Writer
	Stderr           io.Writer
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Lister == nil {
		dependencies.Lister = git.NewLister()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}
	return dependencies
}

// Execute runs the treeprint application.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := createRootCommand(Dependencies{Logger: logger, LogLevel: &logLevel})
	rootCommand.SetArgs(normalizeCommandArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// normalizeCommandArguments attaches separated values to the flags that own them, so that
// "--init-config global" selects the global target instead of leaking "global" as the path.
func normalizeCommandArguments(command *cobra.Command, arguments []string) []string {
	return joinFlagValues(normalizeBooleanFlagArguments(command, arguments), func(flagName string, value string) bool {
		if flagName != initConfigFlagName {
			return false
		}
		_, targetError := config.ParseInitTarget(value)
		return targetError == nil && strings.TrimSpace(value) != ""
	})
}

// treeOptions stores the raw flag values of the root command.
type treeOptions struct {
	exclusionPatterns []string
	exclusionFile     string
	useGit            bool
	disableColor      bool
	disableSize       bool
	compact           bool
	depth             int
	clipboard         bool
	configPath        string
	initTarget        string
	force             bool
	verbose           bool
	showVersion       bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if options.verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
			}
			if command.Flags().Changed(initConfigFlagName) {
				return runInitConfiguration(dependencies, options)
			}
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}
			return runTree(command.Context(), command, dependencies, options, rootPath)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	flagSet.StringVar(&options.exclusionFile, exclusionFileFlagName, "", exclusionFileFlagDescription)
	registerBooleanFlag(flagSet, &options.useGit, gitFlagName, gitFlagShorthand, false, gitFlagDescription)
	registerBooleanFlag(flagSet, &options.disableColor, noColorFlagName, "", false, noColorFlagDescription)
	registerBooleanFlag(flagSet, &options.disableSize, noSizeFlagName, "", false, noSizeFlagDescription)
	registerBooleanFlag(flagSet, &options.compact, compactFlagName, compactFlagShorthand, false, compactFlagDescription)
	flagSet.IntVarP(&options.depth, depthFlagName, depthFlagShorthand, 0, depthFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboard, clipboardFlagName, "", false, clipboardFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.initTarget, initConfigFlagName, initConfigDefaultTarget, initConfigFlagDescription)
	if lookup := flagSet.Lookup(initConfigFlagName); lookup != nil {
		lookup.NoOptDefVal = initConfigDefaultTarget
	}
	registerBooleanFlag(flagSet, &options.force, forceFlagName, "", false, forceFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, "", false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, "", false, versionFlagDescription)

	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)
	return rootCommand
}

// runInitConfiguration writes the default configuration template.
func runInitConfiguration(dependencies Dependencies, options treeOptions) error {
	target, targetError := config.ParseInitTarget(options.initTarget)
	if targetError != nil {
		return targetError
	}
	writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
		Target:           target,
		Force:            options.force,
		WorkingDirectory: dependencies.WorkingDirectory,
	})
	if initError != nil {
		return initError
	}
	fmt.Fprintf(dependencies.Stdout, configurationWrittenFormat, writtenPath)
	return nil
}

// runTree renders the tree for rootPath and delivers it to stdout or the clipboard.
func runTree(ctx context.Context, command *cobra.Command, dependencies Dependencies, options treeOptions, rootPath string) error {
	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}

	settings, settingsError := resolveTreeSettings(command, options, applicationConfiguration.Tree, workingDirectory)
	if settingsError != nil {
		return settingsError
	}

	validatedPath, pathValidationError := resolveAndValidatePath(rootPath, workingDirectory)
	if pathValidationError != nil {
		return pathValidationError
	}

	treeConfiguration := commands.TreeConfiguration{
		ExclusionPatterns: settings.ExclusionPatterns,
		ColorEnabled:      settings.ColorEnabled,
		ShowSizes:         settings.ShowSizes,
		Compact:           settings.Compact,
		MaxDepth:          settings.MaxDepth,
	}
	if settings.UseGit {
		trackedSet := tracked.Build(ctx, dependencies.Lister, validatedPath.AbsolutePath, dependencies.Logger)
		if trackedSet.IsEmpty() {
			dependencies.Logger.Debug("no tracked files found; the tree will be empty", zap.String("root", validatedPath.AbsolutePath))
		}
		treeConfiguration.Tracked = trackedSet
	}

	dependencies.Logger.Debug("rendering tree",
		zap.String("root", validatedPath.AbsolutePath),
		zap.Strings("exclude", settings.ExclusionPatterns),
		zap.Bool("git", settings.UseGit),
		zap.Bool("compact", settings.Compact),
	)

	treeBuilder := commands.NewTreeBuilder(treeConfiguration)
	if settings.Clipboard {
		renderedTree, renderError := treeBuilder.Render(validatedPath.AbsolutePath)
		if renderError != nil {
			return renderError
		}
		if copyError := dependencies.Clipboard.Copy(renderedTree); copyError != nil {
			return copyError
		}
		fmt.Fprintln(dependencies.Stdout, clipboardConfirmationMessage)
		return nil
	}

	lines, buildError := treeBuilder.GetTreeLines(validatedPath.AbsolutePath)
	if buildError != nil {
		return buildError
	}
	return output.WriteLines(dependencies.Stdout, lines)
}

// resolveTreeSettings layers explicitly set flags over configuration values over built-in defaults.
func resolveTreeSettings(command *cobra.Command, options treeOptions, configuration config.TreeCommandConfiguration, workingDirectory string) (types.TreeSettings, error) {
	flagSet := command.Flags()
	settings := types.TreeSettings{
		UseGit:       valueOrDefault(configuration.Git, false),
		ColorEnabled: valueOrDefault(configuration.Color, true),
		ShowSizes:    valueOrDefault(configuration.Size, true),
		Compact:      valueOrDefault(configuration.Compact, false),
		MaxDepth:     configuration.Depth,
		Clipboard:    valueOrDefault(configuration.Clipboard, false),
	}
	if flagSet.Changed(gitFlagName) {
		settings.UseGit = options.useGit
	}
	if flagSet.Changed(noColorFlagName) {
		settings.ColorEnabled = !options.disableColor
	}
	if flagSet.Changed(noSizeFlagName) {
		settings.ShowSizes = !options.disableSize
	}
	if flagSet.Changed(compactFlagName) {
		settings.Compact = options.compact
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.Clipboard = options.clipboard
	}
	if flagSet.Changed(depthFlagName) {
		if options.depth < 0 {
			return types.TreeSettings{}, fmt.Errorf(errorNegativeDepthFormat, options.depth)
		}
		depth := options.depth
		settings.MaxDepth = &depth
	}

	exclusionFile := configuration.ExcludeFile
	if flagSet.Changed(exclusionFileFlagName) {
		exclusionFile = options.exclusionFile
		if exclusionFile != "" && !filepath.IsAbs(exclusionFile) {
			exclusionFile = filepath.Join(workingDirectory, exclusionFile)
		}
	}
	var filePatterns []string
	if exclusionFile != "" {
		loadedPatterns, loadError := config.LoadExclusionFilePatterns(exclusionFile)
		if loadError != nil {
			return types.TreeSettings{}, loadError
		}
		filePatterns = loadedPatterns
	}
	settings.ExclusionPatterns = config.CombineExclusionPatterns(
		configuration.Exclude,
		filePatterns,
		utils.SplitPatternList(options.exclusionPatterns),
	)
	return settings, nil
}

func valueOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

// resolveAndValidatePath converts the input path to absolute form and checks that it is an existing directory.
func resolveAndValidatePath(inputPath string, workingDirectory string) (types.ValidatedPath, error) {
	candidatePath := inputPath
	if !filepath.IsAbs(candidatePath) && workingDirectory != "" {
		candidatePath = filepath.Join(workingDirectory, candidatePath)
	}
	absolutePath, absolutePathError := filepath.Abs(candidatePath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorPathNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath}, nil
}
