package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Every trial factored
	ExitTrialsFailed = 1 // One or more trials failed
	ExitError        = 2 // Configuration or runtime error
)

// TrialFailureError indicates that the benchmark ran to completion but one
// or more trials did not produce verified factors.
type TrialFailureError struct {
	Message string
}

func (e *TrialFailureError) Error() string {
	return e.Message
}

func main() {
	os.Exit(exitCode(execute()))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, err)

	var trialErr *TrialFailureError
	if errors.As(err, &trialErr) {
		return ExitTrialsFailed
	}
	return ExitError
}
