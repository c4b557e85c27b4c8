package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/subsync/internal/execshell"
	"github.com/temirov/subsync/internal/submodules/shared"
)

const (
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	gitFetchFailureTemplateConstant             = "failed to fetch updates: %w"
	gitPullFailureTemplateConstant              = "failed to pull latest changes: %w"
	submoduleSyncFailureTemplateConstant        = "failed to synchronize submodule remotes: %w"
	submoduleUpdateFailureTemplateConstant      = "failed to initialize submodules: %w"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchPruneFlagConstant                   = "--prune"
	gitPullSubcommandConstant                   = "pull"
	gitPullFastForwardFlagConstant              = "--ff-only"
	gitSubmoduleSubcommandConstant              = "submodule"
	gitSubmoduleSyncVerbConstant                = "sync"
	gitSubmoduleUpdateVerbConstant              = "update"
	gitSubmoduleInitFlagConstant                = "--init"
	gitSubmoduleRecursiveFlagConstant           = "--recursive"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// Dependencies enumerates external collaborators required for setup operations.
type Dependencies struct {
	GitExecutor shared.GitExecutor
}

// Options configures a parent repository synchronization.
type Options struct {
	RepositoryPath string
}

// Result captures the observable outcomes of a synchronization.
type Result struct {
	RepositoryPath string
}

// Service brings the parent repository current and initializes registered submodules.
type Service struct {
	executor shared.GitExecutor
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &Service{executor: dependencies.GitExecutor}, nil
}

// Synchronize fetches and fast-forwards the parent repository, then initializes submodules.
func (service *Service) Synchronize(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	if fetchError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}); fetchError != nil {
		return Result{}, fmt.Errorf(gitFetchFailureTemplateConstant, fetchError)
	}

	if pullError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPullSubcommandConstant, gitPullFastForwardFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}); pullError != nil {
		return Result{}, fmt.Errorf(gitPullFailureTemplateConstant, pullError)
	}

	if syncError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSubmoduleSubcommandConstant, gitSubmoduleSyncVerbConstant, gitSubmoduleRecursiveFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}); syncError != nil {
		return Result{}, fmt.Errorf(submoduleSyncFailureTemplateConstant, syncError)
	}

	if updateError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitSubmoduleSubcommandConstant,
			gitSubmoduleUpdateVerbConstant,
			gitSubmoduleInitFlagConstant,
			gitSubmoduleRecursiveFlagConstant,
		},
		WorkingDirectory: trimmedRepositoryPath,
	}); updateError != nil {
		return Result{}, fmt.Errorf(submoduleUpdateFailureTemplateConstant, updateError)
	}

	return Result{RepositoryPath: trimmedRepositoryPath}, nil
}

func (service *Service) executeGit(executionContext context.Context, details execshell.CommandDetails) error {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	_, executionError := service.executor.ExecuteGit(executionContext, details)
	return executionError
}
