// Package dependencies resolves collaborator implementations for the submodule
// commands, preferring supplied instances over OS-backed defaults.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/subsync/internal/execshell"
	"github.com/temirov/subsync/internal/gitrepo"
	"github.com/temirov/subsync/internal/submodules/shared"
	"github.com/temirov/subsync/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		eventLogger := ui.NewConsoleCommandEventLogger(logger)
		shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, commandRunner, eventLogger)
		if executorError != nil {
			return nil, executorError
		}
		return shellExecutor, nil
	}
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, managerError
	}
	return repositoryManager, nil
}
