package execshell

// CommandEventObserver receives lifecycle notifications for each git
// invocation. The executor calls observers synchronously around the command
// run, so implementations should not block.
type CommandEventObserver interface {
	// ObserveCommandStarted fires immediately before the command runs.
	ObserveCommandStarted(command ShellCommand)
	// ObserveCommandCompleted fires once the runner returns a result,
	// regardless of the exit code it carries.
	ObserveCommandCompleted(command ShellCommand, result ExecutionResult)
	// ObserveCommandFailure fires when the runner fails before producing a result.
	ObserveCommandFailure(command ShellCommand, failure error)
}

// silentCommandEventObserver ignores every notification.
type silentCommandEventObserver struct{}

func (silentCommandEventObserver) ObserveCommandStarted(ShellCommand)                    {}
func (silentCommandEventObserver) ObserveCommandCompleted(ShellCommand, ExecutionResult) {}
func (silentCommandEventObserver) ObserveCommandFailure(ShellCommand, error)             {}
