package shared

import (
	"context"

	"github.com/temirov/subsync/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by submodule services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes repository-level git operations.
type GitRepositoryManager interface {
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	ListSubmodulePaths(executionContext context.Context, repositoryPath string) ([]string, error)
}
