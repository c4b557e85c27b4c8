package update

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/subsync/internal/execshell"
	"github.com/temirov/subsync/internal/submodules/setup"
	"github.com/temirov/subsync/internal/submodules/shared"
)

const (
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	targetBranchRequiredMessageConstant         = "target branch must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryManagerMissingMessageConstant     = "repository manager not configured"
	parentSynchronizerMissingMessageConstant    = "parent synchronizer not configured"
	parentSynchronizationFailureTemplate        = "failed to synchronize parent repository: %w"
	submoduleEnumerationFailureTemplate         = "failed to enumerate submodules: %w"
	submoduleFetchFailureTemplate               = "failed to fetch updates for submodule %s: %w"
	submoduleWorktreeInspectionFailureTemplate  = "failed to inspect worktree in submodule %s: %w"
	submoduleWorktreeDirtyTemplateConstant      = "submodule %s has uncommitted changes"
	submoduleCheckoutFailureTemplate            = "failed to checkout branch %q in submodule %s: %w"
	submodulePullFailureTemplate                = "failed to pull latest changes in submodule %s: %w"
	submoduleBranchLookupFailureTemplate        = "failed to identify current branch in submodule %s: %w"
	submoduleSyncedReportTemplateConstant       = "SYNCED: %s (%s)\n"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchPruneFlagConstant                   = "--prune"
	gitCheckoutSubcommandConstant               = "checkout"
	gitPullSubcommandConstant                   = "pull"
	gitPullFastForwardFlagConstant              = "--ff-only"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrTargetBranchRequired indicates the branch plan was missing a target branch.
var ErrTargetBranchRequired = errors.New(targetBranchRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrParentSynchronizerNotConfigured indicates the parent synchronizer dependency was missing.
var ErrParentSynchronizerNotConfigured = errors.New(parentSynchronizerMissingMessageConstant)

// BranchPlan names the branch every submodule should track, with an optional fallback.
type BranchPlan struct {
	TargetBranch   string
	FallbackBranch string
}

// MainBranchPlan targets main and falls back to master.
func MainBranchPlan() BranchPlan {
	return BranchPlan{TargetBranch: mainTargetBranchConstant, FallbackBranch: mainFallbackBranchConstant}
}

// DevelopBranchPlan targets develop with no fallback.
func DevelopBranchPlan() BranchPlan {
	return BranchPlan{TargetBranch: developTargetBranchConstant}
}

// ParentSynchronizer brings the parent repository current before submodule iteration.
type ParentSynchronizer interface {
	Synchronize(executionContext context.Context, options setup.Options) (setup.Result, error)
}

// Dependencies enumerates external collaborators required for update operations.
type Dependencies struct {
	GitExecutor        shared.GitExecutor
	RepositoryManager  shared.GitRepositoryManager
	ParentSynchronizer ParentSynchronizer
	Reporter           shared.Reporter
}

// Options configures a submodule update operation.
type Options struct {
	RepositoryPath string
	Plan           BranchPlan
}

// SubmoduleResult records the branch a submodule ended up on.
type SubmoduleResult struct {
	Path       string
	BranchName string
}

// Result captures the observable outcomes of an update.
type Result struct {
	RepositoryPath string
	Submodules     []SubmoduleResult
}

// Service switches submodules to a planned branch and pulls their latest changes.
type Service struct {
	executor           shared.GitExecutor
	repositoryManager  shared.GitRepositoryManager
	parentSynchronizer ParentSynchronizer
	reporter           shared.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.ParentSynchronizer == nil {
		return nil, ErrParentSynchronizerNotConfigured
	}
	return &Service{
		executor:           dependencies.GitExecutor,
		repositoryManager:  dependencies.RepositoryManager,
		parentSynchronizer: dependencies.ParentSynchronizer,
		reporter:           dependencies.Reporter,
	}, nil
}

// Update synchronizes the parent repository and moves every submodule onto the planned branch.
func (service *Service) Update(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	trimmedTargetBranch := strings.TrimSpace(options.Plan.TargetBranch)
	if len(trimmedTargetBranch) == 0 {
		return Result{}, ErrTargetBranchRequired
	}
	trimmedFallbackBranch := strings.TrimSpace(options.Plan.FallbackBranch)

	parentResult, parentError := service.parentSynchronizer.Synchronize(executionContext, setup.Options{RepositoryPath: trimmedRepositoryPath})
	if parentError != nil {
		return Result{}, fmt.Errorf(parentSynchronizationFailureTemplate, parentError)
	}

	submodulePaths, enumerationError := service.repositoryManager.ListSubmodulePaths(executionContext, parentResult.RepositoryPath)
	if enumerationError != nil {
		return Result{}, fmt.Errorf(submoduleEnumerationFailureTemplate, enumerationError)
	}

	updateResult := Result{RepositoryPath: parentResult.RepositoryPath}
	for _, submodulePath := range submodulePaths {
		submoduleResult, submoduleError := service.updateSubmodule(executionContext, parentResult.RepositoryPath, submodulePath, trimmedTargetBranch, trimmedFallbackBranch)
		if submoduleError != nil {
			return Result{}, submoduleError
		}
		updateResult.Submodules = append(updateResult.Submodules, submoduleResult)
		if service.reporter != nil {
			service.reporter.Printf(submoduleSyncedReportTemplateConstant, submoduleResult.Path, submoduleResult.BranchName)
		}
	}

	return updateResult, nil
}

func (service *Service) updateSubmodule(executionContext context.Context, repositoryPath string, submodulePath string, targetBranch string, fallbackBranch string) (SubmoduleResult, error) {
	submoduleWorkingDirectory := filepath.Join(repositoryPath, submodulePath)

	if fetchError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant},
		WorkingDirectory: submoduleWorkingDirectory,
	}); fetchError != nil {
		return SubmoduleResult{}, fmt.Errorf(submoduleFetchFailureTemplate, submodulePath, fetchError)
	}

	worktreeClean, worktreeInspectionError := service.repositoryManager.CheckCleanWorktree(executionContext, submoduleWorkingDirectory)
	if worktreeInspectionError != nil {
		return SubmoduleResult{}, fmt.Errorf(submoduleWorktreeInspectionFailureTemplate, submodulePath, worktreeInspectionError)
	}
	if !worktreeClean {
		return SubmoduleResult{}, fmt.Errorf(submoduleWorktreeDirtyTemplateConstant, submodulePath)
	}

	targetCheckoutError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, targetBranch},
		WorkingDirectory: submoduleWorkingDirectory,
	})
	if targetCheckoutError != nil {
		if len(fallbackBranch) == 0 {
			return SubmoduleResult{}, fmt.Errorf(submoduleCheckoutFailureTemplate, targetBranch, submodulePath, targetCheckoutError)
		}
		if fallbackCheckoutError := service.executeGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitCheckoutSubcommandConstant, fallbackBranch},
			WorkingDirectory: submoduleWorkingDirectory,
		}); fallbackCheckoutError != nil {
			return SubmoduleResult{}, fmt.Errorf(submoduleCheckoutFailureTemplate, fallbackBranch, submodulePath, fallbackCheckoutError)
		}
	}

	if pullError := service.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPullSubcommandConstant, gitPullFastForwardFlagConstant},
		WorkingDirectory: submoduleWorkingDirectory,
	}); pullError != nil {
		return SubmoduleResult{}, fmt.Errorf(submodulePullFailureTemplate, submodulePath, pullError)
	}

	currentBranch, branchLookupError := service.repositoryManager.GetCurrentBranch(executionContext, submoduleWorkingDirectory)
	if branchLookupError != nil {
		return SubmoduleResult{}, fmt.Errorf(submoduleBranchLookupFailureTemplate, submodulePath, branchLookupError)
	}

	return SubmoduleResult{Path: submodulePath, BranchName: currentBranch}, nil
}

func (service *Service) executeGit(executionContext context.Context, details execshell.CommandDetails) error {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	_, executionError := service.executor.ExecuteGit(executionContext, details)
	return executionError
}
