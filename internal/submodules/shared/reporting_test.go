package shared_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/subsync/internal/submodules/shared"
)

func TestWriterReporterWritesFormattedLines(t *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := shared.NewWriterReporter(outputBuffer)

	reporter.Printf("SYNCED: %s (%s)\n", "services/api", "main")
	reporter.Printf("SYNCED: %s (%s)\n", "frontend", "develop")

	require.Equal(t, "SYNCED: services/api (main)\nSYNCED: frontend (develop)\n", outputBuffer.String())
}

func TestWriterReporterKeepsDiscardWriterSilent(t *testing.T) {
	readEnd, writeEnd, pipeError := os.Pipe()
	require.NoError(t, pipeError)
	originalStdout := os.Stdout
	os.Stdout = writeEnd
	t.Cleanup(func() { os.Stdout = originalStdout })

	reporter := shared.NewWriterReporter(io.Discard)
	reporter.Printf("SYNCED: %s (%s)\n", "legacy", "master")

	require.NoError(t, writeEnd.Close())
	capturedOutput, readError := io.ReadAll(readEnd)
	require.NoError(t, readError)
	require.Empty(t, string(capturedOutput))
}
