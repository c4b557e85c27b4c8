package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/subsync/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	gitRevParseSubcommandConstant        = "rev-parse"
	gitAbbrevRefFlagConstant             = "--abbrev-ref"
	gitHeadReferenceConstant             = "HEAD"
	gitStatusSubcommandConstant          = "status"
	gitStatusPorcelainFlagConstant       = "--porcelain"
	gitConfigSubcommandConstant          = "config"
	gitConfigFileFlagConstant            = "--file"
	gitModulesFileNameConstant           = ".gitmodules"
	gitConfigGetRegexpFlagConstant       = "--get-regexp"
	gitSubmodulePathKeyPatternConstant   = `^submodule\..*\.path$`
	gitConfigNoMatchesExitCodeConstant   = 1
	submoduleEntryFieldCountConstant     = 2
	lineSeparatorConstant                = "\n"
	submoduleEntryFieldSeparatorConstant = " "
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository-level git operations through an executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCurrentBranch resolves the branch currently checked out in the repository.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CheckCleanWorktree reports whether the repository carries no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// ListSubmodulePaths returns the registered submodule paths in .gitmodules order.
//
// A repository without a .gitmodules file yields an empty list.
func (manager *RepositoryManager) ListSubmodulePaths(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitConfigSubcommandConstant,
			gitConfigFileFlagConstant,
			gitModulesFileNameConstant,
			gitConfigGetRegexpFlagConstant,
			gitSubmodulePathKeyPatternConstant,
		},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		// git config --get-regexp exits 1 when the file or pattern is absent.
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == gitConfigNoMatchesExitCodeConstant {
			return nil, nil
		}
		return nil, executionError
	}

	return parseSubmodulePathEntries(executionResult.StandardOutput), nil
}

func parseSubmodulePathEntries(configOutput string) []string {
	submodulePaths := []string{}
	for _, configLine := range strings.Split(configOutput, lineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(configLine)
		if len(trimmedLine) == 0 {
			continue
		}
		lineFields := strings.SplitN(trimmedLine, submoduleEntryFieldSeparatorConstant, submoduleEntryFieldCountConstant)
		if len(lineFields) != submoduleEntryFieldCountConstant {
			continue
		}
		submodulePaths = append(submodulePaths, strings.TrimSpace(lineFields[1]))
	}
	return submodulePaths
}
