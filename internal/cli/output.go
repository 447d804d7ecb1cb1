// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Check failure, the input is not aggregated
	ExitCommandError = 2 // Command error (bad input, bad flags, I/O)
)

// Error codes in the error envelope.
const (
	ErrCodeGeneric       = "E001"
	ErrCodeInvalidInput  = "E002"
	ErrCodeIO            = "E003"
	ErrCodeNotAggregated = "E004"
)

// ExitError represents an error with a specific exit code.
// The error has already been reported through the OutputFormatter.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError if the error is not an ExitError,
// e.g. for flag and argument errors reported by cobra.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter writes results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // text errors go here, structured errors to Writer
}

// CLIResponse is the envelope for JSON and YAML output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`   // payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// textWriter is implemented by results with a line oriented text form.
type textWriter interface {
	writeText(w io.Writer) error
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.write(CLIResponse{Status: "ok", Data: data})
}

// Failure outputs a result that failed a check, the data is kept.
func (f *OutputFormatter) Failure(data any, code, message string) error {
	return f.write(CLIResponse{
		Status: "error",
		Data:   data,
		Error:  &CLIError{Code: code, Message: message},
	})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "text" {
		_, err := fmt.Fprintf(f.errWriter(), "Error [%s]: %s\n", code, message)
		return err
	}
	return f.write(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message},
	})
}

func (f *OutputFormatter) write(resp CLIResponse) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}

	if resp.Data == nil {
		return nil
	}
	if tw, ok := resp.Data.(textWriter); ok {
		return tw.writeText(f.Writer)
	}
	_, err := fmt.Fprintln(f.Writer, resp.Data)
	return err
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// fail reports err and returns it as ExitError with ExitCommandError.
func fail(f *OutputFormatter, code string, err error) error {
	_ = f.Error(code, err.Error())
	return WrapExitError(ExitCommandError, code, err)
}
