package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced on wrapped command failures so CLI and log
// consumers can branch without string-matching messages.
const (
	TextCodeValidationFailed = "CORPUS_COMMAND_VALIDATION_FAILED"
	TextCodeContextCanceled  = "CORPUS_COMMAND_CANCELED"
	TextCodeContextTimeout   = "CORPUS_COMMAND_TIMEOUT"
	TextCodeContextError     = "CORPUS_COMMAND_CONTEXT_ERROR"
	TextCodeExecutionFailed  = "CORPUS_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	code := TextCodeContextError
	msg := "command context error"
	switch {
	case errors.Is(err, context.Canceled):
		code = TextCodeContextCanceled
		msg = "command execution cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		code = TextCodeContextTimeout
		msg = "command execution deadline exceeded"
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(TextCodeExecutionFailed)
}
