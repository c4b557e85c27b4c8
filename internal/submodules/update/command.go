package update

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/subsync/internal/submodules/dependencies"
	"github.com/temirov/subsync/internal/submodules/setup"
	"github.com/temirov/subsync/internal/submodules/shared"
)

const (
	mainCommandUseConstant                   = "update-main"
	mainCommandAliasConstant                 = "main"
	mainCommandShortDescriptionConstant      = "Switch every submodule to main and pull the latest changes"
	mainCommandLongDescriptionConstant       = "Update-main refreshes the parent repository, then checks out main in every submodule, falling back to master when main does not exist, and pulls the latest changes."
	developCommandUseConstant                = "update-develop"
	developCommandAliasConstant              = "develop"
	developCommandShortDescriptionConstant   = "Switch every submodule to develop and pull the latest changes"
	developCommandLongDescriptionConstant    = "Update-develop refreshes the parent repository, then checks out develop in every submodule and pulls the latest changes."
	mainTargetBranchConstant                 = "main"
	mainFallbackBranchConstant               = "master"
	developTargetBranchConstant              = "develop"
	repositoryFlagNameConstant               = "repository"
	repositoryFlagDescriptionConstant        = "Path to the parent repository"
	updateSummaryTemplateConstant            = "UPDATED: %s (%d submodules)\n"
	serviceConstructionErrorTemplateConstant = "failed to construct update service: %w"
)

// CommandBuilder assembles the update commands together with their dependencies.
type CommandBuilder struct {
	LoggerProvider               func() *zap.Logger
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// BuildMainCommand constructs the update-main command.
func (builder *CommandBuilder) BuildMainCommand() (*cobra.Command, error) {
	return builder.buildBranchCommand(branchCommandDefinition{
		use:     mainCommandUseConstant,
		aliases: []string{mainCommandAliasConstant},
		short:   mainCommandShortDescriptionConstant,
		long:    mainCommandLongDescriptionConstant,
		plan:    MainBranchPlan(),
	})
}

// BuildDevelopCommand constructs the update-develop command.
func (builder *CommandBuilder) BuildDevelopCommand() (*cobra.Command, error) {
	return builder.buildBranchCommand(branchCommandDefinition{
		use:     developCommandUseConstant,
		aliases: []string{developCommandAliasConstant},
		short:   developCommandShortDescriptionConstant,
		long:    developCommandLongDescriptionConstant,
		plan:    DevelopBranchPlan(),
	})
}

type branchCommandDefinition struct {
	use     string
	aliases []string
	short   string
	long    string
	plan    BranchPlan
}

func (builder *CommandBuilder) buildBranchCommand(definition branchCommandDefinition) (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     definition.use,
		Aliases: definition.aliases,
		Short:   definition.short,
		Long:    definition.long,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runUpdate(command, definition.plan)
		},
	}
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) runUpdate(command *cobra.Command, plan BranchPlan) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	repositoryPath := configuration.RepositoryPath
	if command.Flags().Changed(repositoryFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(repositoryFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		repositoryPath = flagValue
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.GitRepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	parentSynchronizer, synchronizerError := setup.NewService(setup.Dependencies{GitExecutor: gitExecutor})
	if synchronizerError != nil {
		return fmt.Errorf(serviceConstructionErrorTemplateConstant, synchronizerError)
	}

	service, serviceError := NewService(Dependencies{
		GitExecutor:        gitExecutor,
		RepositoryManager:  repositoryManager,
		ParentSynchronizer: parentSynchronizer,
		Reporter:           shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return fmt.Errorf(serviceConstructionErrorTemplateConstant, serviceError)
	}

	result, updateError := service.Update(command.Context(), Options{RepositoryPath: repositoryPath, Plan: plan})
	if updateError != nil {
		return updateError
	}

	fmt.Fprintf(command.OutOrStdout(), updateSummaryTemplateConstant, result.RepositoryPath, len(result.Submodules))
	return nil
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

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}
