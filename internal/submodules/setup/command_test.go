package setup_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/subsync/internal/execshell"
	"github.com/temirov/subsync/internal/submodules/setup"
)

type recordingGitExecutor struct {
	invocationErrors []error
	recordedCommands []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if len(executor.invocationErrors) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	err := executor.invocationErrors[0]
	executor.invocationErrors = executor.invocationErrors[1:]
	if err != nil {
		return execshell.ExecutionResult{}, err
	}
	return execshell.ExecutionResult{}, nil
}

func newTestCommand(t *testing.T, executor *recordingGitExecutor, configuration setup.CommandConfiguration) *cobra.Command {
	t.Helper()
	builder := setup.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
		ConfigurationProvider: func() setup.CommandConfiguration {
			return configuration
		},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetContext(context.Background())
	return command
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := setup.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.Equal(t, "setup", command.Use)
}

func TestCommandRunsFullSequence(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{}
	command := newTestCommand(t, executor, setup.CommandConfiguration{RepositoryPath: temporaryRepository})

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Len(t, executor.recordedCommands, 4)
	require.Contains(t, outputBuffer.String(), temporaryRepository)
}

func TestCommandRepositoryFlagOverridesConfiguration(t *testing.T) {
	configuredRepository := t.TempDir()
	flagRepository := t.TempDir()
	executor := &recordingGitExecutor{}
	command := newTestCommand(t, executor, setup.CommandConfiguration{RepositoryPath: configuredRepository})

	require.NoError(t, command.Flags().Set("repository", flagRepository))

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	for _, commandDetails := range executor.recordedCommands {
		require.Equal(t, flagRepository, commandDetails.WorkingDirectory)
	}
}

func TestCommandPropagatesGitFailures(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{invocationErrors: []error{errors.New("fetch refused")}}
	command := newTestCommand(t, executor, setup.CommandConfiguration{RepositoryPath: temporaryRepository})

	runError := command.RunE(command, []string{})
	require.Error(t, runError)
	require.Len(t, executor.recordedCommands, 1)
}
