package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/treeprint/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationDirectoryMode = 0o755
	configurationFileMode      = 0o600

	defaultConfigurationTemplate = `tree:
  exclude: []
  exclude_file: ""
  git: false
  color: true
  size: true
  compact: false
  clipboard: false
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// ParseInitTarget converts a flag value into an InitTarget. An empty value selects the local target.
func ParseInitTarget(value string) (InitTarget, error) {
	switch InitTarget(strings.ToLower(strings.TrimSpace(value))) {
	case "", InitTargetLocal:
		return InitTargetLocal, nil
	case InitTargetGlobal:
		return InitTargetGlobal, nil
	default:
		return "", fmt.Errorf("unsupported init target %q", value)
	}
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns the path of the written file. Existing files are kept unless Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveError := resolveInitDestination(options)
	if resolveError != nil {
		return "", resolveError
	}

	_, statError := os.Stat(destinationPath)
	switch {
	case statError == nil && !options.Force:
		return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
	case statError != nil && !errors.Is(statError, fs.ErrNotExist):
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
	}

	if err := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), configurationFileMode); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}
	return destinationPath, nil
}

func resolveInitDestination(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, configurationDirectoryMode); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}
}
