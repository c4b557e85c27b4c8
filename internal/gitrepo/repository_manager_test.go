package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/subsync/internal/execshell"
	"github.com/temirov/subsync/internal/gitrepo"
)

const (
	testRepositoryPathConstant  = "/workspace/parent"
	testSubmoduleConfigConstant = "submodule.services/api.path services/api\nsubmodule.services/rust-api.path services/rust-api\nsubmodule.frontend.path frontend\n"
)

type scriptedGitExecutor struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	return executor.executionResult, executor.executionError
}

func TestNewRepositoryManagerValidatesExecutor(t *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(t, creationError, gitrepo.ErrExecutorNotConfigured)
	require.Nil(t, manager)

	manager, creationError = gitrepo.NewRepositoryManager(&scriptedGitExecutor{})
	require.NoError(t, creationError)
	require.NotNil(t, manager)
}

func TestGetCurrentBranchTrimsOutput(t *testing.T) {
	executor := &scriptedGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "develop\n"}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(t, creationError)

	branchName, branchError := manager.GetCurrentBranch(context.Background(), testRepositoryPathConstant)
	require.NoError(t, branchError)
	require.Equal(t, "develop", branchName)
}

func TestCheckCleanWorktree(t *testing.T) {
	testCases := []struct {
		name            string
		executionResult execshell.ExecutionResult
		executionError  error
		expectedClean   bool
		expectError     bool
	}{
		{
			name:            "CleanWorktree",
			executionResult: execshell.ExecutionResult{StandardOutput: "\n"},
			expectedClean:   true,
		},
		{
			name:            "DirtyWorktree",
			executionResult: execshell.ExecutionResult{StandardOutput: " M services/api/main.go\n?? notes.txt\n"},
			expectedClean:   false,
		},
		{
			name:           "ExecutionFailure",
			executionError: errors.New("not a git repository"),
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &scriptedGitExecutor{executionResult: testCase.executionResult, executionError: testCase.executionError}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(t, creationError)

			worktreeClean, worktreeError := manager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
			if testCase.expectError {
				require.Error(t, worktreeError)
				return
			}

			require.NoError(t, worktreeError)
			require.Equal(t, testCase.expectedClean, worktreeClean)
			require.Len(t, executor.recordedCommands, 1)
			require.Equal(t, []string{"status", "--porcelain"}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestListSubmodulePathsParsesConfigEntriesInOrder(t *testing.T) {
	executor := &scriptedGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testSubmoduleConfigConstant}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(t, creationError)

	submodulePaths, listError := manager.ListSubmodulePaths(context.Background(), testRepositoryPathConstant)
	require.NoError(t, listError)
	require.Equal(t, []string{"services/api", "services/rust-api", "frontend"}, submodulePaths)
	require.Len(t, executor.recordedCommands, 1)
	require.Equal(t, "config", executor.recordedCommands[0].Arguments[0])
}

func TestListSubmodulePathsTreatsMissingModulesFileAsEmpty(t *testing.T) {
	missingModulesFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}
	executor := &scriptedGitExecutor{executionError: missingModulesFailure}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(t, creationError)

	submodulePaths, listError := manager.ListSubmodulePaths(context.Background(), testRepositoryPathConstant)
	require.NoError(t, listError)
	require.Empty(t, submodulePaths)
}

func TestListSubmodulePathsPropagatesUnexpectedFailures(t *testing.T) {
	executor := &scriptedGitExecutor{executionError: errors.New("git not installed")}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(t, creationError)

	_, listError := manager.ListSubmodulePaths(context.Background(), testRepositoryPathConstant)
	require.Error(t, listError)
}
