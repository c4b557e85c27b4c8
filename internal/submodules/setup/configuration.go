package setup

import "strings"

const (
	defaultRepositoryPathConstant          = "."
	repositoryPathConfigurationKeyConstant = ".repository_path"
)

// CommandConfiguration captures configurable defaults for the setup command.
type CommandConfiguration struct {
	RepositoryPath string `mapstructure:"repository_path"`
}

// DefaultCommandConfiguration returns the built-in setup configuration.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RepositoryPath: defaultRepositoryPathConstant}
}

// Sanitize normalizes configured values, falling back to defaults for blanks.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryPath = strings.TrimSpace(sanitized.RepositoryPath)
	if len(sanitized.RepositoryPath) == 0 {
		sanitized.RepositoryPath = defaultRepositoryPathConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	return map[string]any{
		configurationPrefix + repositoryPathConfigurationKeyConstant: defaultRepositoryPathConstant,
	}
}
