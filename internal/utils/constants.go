package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Configuration file locations.
const (
	// ConfigFileName is the name of both the local and the global configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".treeprint"
)

// Application lifecycle messages.
const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes a fatal execution error.
	ApplicationExecutionFailedMessage = "treeprint failed"
)
