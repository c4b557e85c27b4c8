package utils

import "context"

// commandContextKey is a private key type so context values set here cannot
// collide with values set by other packages.
type commandContextKey string

const configurationFileContextKeyConstant commandContextKey = "subsync.configuration_file"

// CommandContextAccessor stores and retrieves CLI-scoped values on command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFile records the resolved configuration file path on the context.
func (accessor CommandContextAccessor) WithConfigurationFile(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFileContextKeyConstant, configurationFilePath)
}

// ConfigurationFile returns the recorded configuration file path, when present.
func (accessor CommandContextAccessor) ConfigurationFile(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathRecorded := executionContext.Value(configurationFileContextKeyConstant).(string)
	return configurationFilePath, configurationFilePathRecorded
}
