package setup

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/subsync/internal/submodules/dependencies"
	"github.com/temirov/subsync/internal/submodules/shared"
)

const (
	commandUseConstant                  = "setup"
	commandShortDescriptionConstant     = "Fetch the parent repository and initialize submodules"
	commandLongDescriptionConstant      = "setup fast-forwards the parent repository and initializes every registered submodule recursively."
	repositoryFlagNameConstant          = "repository"
	repositoryFlagDescriptionConstant   = "Path to the parent repository working tree"
	setupSuccessMessageTemplateConstant = "INITIALIZED: %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the setup command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the setup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	repositoryPath := configuration.RepositoryPath
	repositoryFlagValue, repositoryFlagError := command.Flags().GetString(repositoryFlagNameConstant)
	if repositoryFlagError != nil {
		return repositoryFlagError
	}
	if len(strings.TrimSpace(repositoryFlagValue)) > 0 {
		repositoryPath = strings.TrimSpace(repositoryFlagValue)
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	service, serviceCreationError := NewService(Dependencies{GitExecutor: gitExecutor})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	synchronizationResult, synchronizationError := service.Synchronize(command.Context(), Options{RepositoryPath: repositoryPath})
	if synchronizationError != nil {
		return synchronizationError
	}

	fmt.Fprintf(command.OutOrStdout(), setupSuccessMessageTemplateConstant, synchronizationResult.RepositoryPath)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
